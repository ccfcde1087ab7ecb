package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/debt-payoff/pkg/format"
	"github.com/iwvelando/debt-payoff/pkg/mathutil"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
)

// PlanWarnings returns non-fatal observations about a plan that passes
// payoff.Validate but may behave unexpectedly.
func PlanWarnings(debts []payoff.Debt, extraPayment float64) []string {
	var warnings []string

	names := make(map[string]int)
	totalInterest := 0.0
	for i, d := range debts {
		label := debtLabel(i, d)
		interest := mathutil.MonthlyInterest(d.Balance, d.AnnualInterestRate)
		totalInterest += interest
		if d.Balance > 0 && d.MinimumPayment < interest {
			warnings = append(warnings, fmt.Sprintf(
				"Debt %s minimum payment %.2f does not cover its first month of interest (%.2f at %s)",
				label, d.MinimumPayment, interest, format.Percent(d.AnnualInterestRate)))
		}

		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		if first, dup := names[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Debts %d and %d share the name '%s'", first, i, name))
			continue
		}
		names[name] = i
	}

	budget := payoff.TotalMinimumPayment(debts) + extraPayment
	if budget <= totalInterest {
		warnings = append(warnings, fmt.Sprintf(
			"Monthly budget %.2f does not exceed first month interest %.2f - plan is unlikely to converge",
			budget, totalInterest))
	}

	return warnings
}

func debtLabel(i int, d payoff.Debt) string {
	switch {
	case d.Name != "":
		return fmt.Sprintf("'%s'", d.Name)
	case d.ID != "":
		return fmt.Sprintf("'%s'", d.ID)
	default:
		return fmt.Sprintf("#%d", i)
	}
}
