package payoff

import (
	"math"

	"github.com/shopspring/decimal"
)

// Tie is reported when neither strategy beats the other.
const Tie Strategy = "tie"

// Comparison holds a snowball and an avalanche run over the same inputs.
type Comparison struct {
	Snowball        PayoffResult `json:"snowball"`
	Avalanche       PayoffResult `json:"avalanche"`
	InterestSaved   float64      `json:"interestSaved"` // unrounded absolute difference
	MonthsSaved     int          `json:"monthsSaved"`
	CheaperStrategy Strategy     `json:"cheaperStrategy"`
	FasterStrategy  Strategy     `json:"fasterStrategy"`
}

// ComparePlans runs both strategies with the default options.
func ComparePlans(debts []Debt, extraPayment float64) (Comparison, error) {
	return NewSimulator(nil, Options{}).Compare(debts, extraPayment)
}

// Compare runs debts under both strategies, each on its own copy of the
// inputs, and reports which one costs less interest and which finishes first.
func (s *Simulator) Compare(debts []Debt, extraPayment float64) (Comparison, error) {
	snowball, err := s.Run(CloneDebts(debts), extraPayment, Snowball)
	if err != nil {
		return Comparison{}, err
	}
	avalanche, err := s.Run(CloneDebts(debts), extraPayment, Avalanche)
	if err != nil {
		return Comparison{}, err
	}
	return compareResults(snowball, avalanche), nil
}

func compareResults(snowball, avalanche PayoffResult) Comparison {
	c := Comparison{Snowball: snowball, Avalanche: avalanche}

	c.InterestSaved = math.Abs(snowball.TotalInterest - avalanche.TotalInterest)

	// The winner is picked at cent precision so float noise cannot decide it.
	snowballInterest := decimal.NewFromFloat(snowball.TotalInterest).Round(2)
	avalancheInterest := decimal.NewFromFloat(avalanche.TotalInterest).Round(2)
	switch snowballInterest.Cmp(avalancheInterest) {
	case 1:
		c.CheaperStrategy = Avalanche
	case -1:
		c.CheaperStrategy = Snowball
	default:
		c.CheaperStrategy = Tie
	}

	c.MonthsSaved = snowball.MonthsToPayoff - avalanche.MonthsToPayoff
	switch {
	case c.MonthsSaved > 0:
		c.FasterStrategy = Avalanche
	case c.MonthsSaved < 0:
		c.FasterStrategy = Snowball
		c.MonthsSaved = -c.MonthsSaved
	default:
		c.FasterStrategy = Tie
	}
	return c
}
