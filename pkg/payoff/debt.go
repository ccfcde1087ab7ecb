// Package payoff simulates paying down a portfolio of debts month by month
// under the snowball or avalanche strategy.
package payoff

import (
	"fmt"
	"strings"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

// Strategy names the order in which surplus money is applied to debts.
type Strategy string

const (
	// Snowball pays the smallest balance first.
	Snowball Strategy = constants.StrategySnowball
	// Avalanche pays the highest interest rate first.
	Avalanche Strategy = constants.StrategyAvalanche
)

// ParseStrategy normalizes a user supplied strategy name.
func ParseStrategy(value string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(value))); s {
	case Snowball, Avalanche:
		return s, nil
	default:
		return "", fmt.Errorf("unknown strategy %q, expected %s or %s", value, Snowball, Avalanche)
	}
}

// Debt is the caller-owned description of one debt obligation. The engine
// never modifies it.
type Debt struct {
	ID                 string  `json:"id" yaml:"id" mapstructure:"id"`
	Name               string  `json:"name" yaml:"name" mapstructure:"name"`
	Balance            float64 `json:"balance" yaml:"balance" mapstructure:"balance"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate" mapstructure:"annualInterestRate"`
	MinimumPayment     float64 `json:"minimumPayment" yaml:"minimumPayment" mapstructure:"minimumPayment"`
}

// workingDebt is the per-run mutable state derived from a Debt.
type workingDebt struct {
	Debt
	index             int
	currentBalance    float64
	totalInterestPaid float64
	payoffMonth       int
}

func newWorkingDebts(debts []Debt) []*workingDebt {
	working := make([]*workingDebt, len(debts))
	for i, d := range debts {
		working[i] = &workingDebt{
			Debt:           d,
			index:          i,
			currentBalance: d.Balance,
		}
	}
	return working
}

// CloneDebts returns a copy of debts that shares no memory with the input.
func CloneDebts(debts []Debt) []Debt {
	if debts == nil {
		return nil
	}
	out := make([]Debt, len(debts))
	copy(out, debts)
	return out
}

// TotalBalance sums the balances of debts.
func TotalBalance(debts []Debt) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.Balance
	}
	return total
}

// TotalMinimumPayment sums the minimum payments of debts.
func TotalMinimumPayment(debts []Debt) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.MinimumPayment
	}
	return total
}
