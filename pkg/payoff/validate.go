package payoff

import (
	"fmt"

	"github.com/iwvelando/debt-payoff/pkg/mathutil"
)

// Reason discriminates validation failures.
type Reason string

const (
	ReasonEmptyDebtList          Reason = "empty_debt_list"
	ReasonNegativeBalance        Reason = "negative_balance"
	ReasonNegativeInterestRate   Reason = "negative_interest_rate"
	ReasonNegativeMinimumPayment Reason = "negative_minimum_payment"
	ReasonNonPositiveMinimum     Reason = "non_positive_minimum_payment"
	ReasonNegativeExtraPayment   Reason = "negative_extra_payment"
	ReasonNonFiniteValue         Reason = "non_finite_value"
	ReasonDuplicateDebtID        Reason = "duplicate_debt_id"
	ReasonUnknownStrategy        Reason = "unknown_strategy"
	ReasonInvalidStartDate       Reason = "invalid_start_date"
	ReasonInvalidMaxMonths       Reason = "invalid_max_months"
)

// ValidationError reports why inputs were rejected before any simulation ran.
// DebtIndex is -1 when the failure is not tied to a single debt.
type ValidationError struct {
	Reason    Reason
	DebtIndex int
	DebtID    string
	Detail    string
}

func (e *ValidationError) Error() string {
	msg := string(e.Reason)
	if e.DebtIndex >= 0 {
		msg = fmt.Sprintf("%s: debt %d", msg, e.DebtIndex)
		if e.DebtID != "" {
			msg = fmt.Sprintf("%s (%s)", msg, e.DebtID)
		}
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func portfolioError(reason Reason, detail string) *ValidationError {
	return &ValidationError{Reason: reason, DebtIndex: -1, Detail: detail}
}

func debtError(reason Reason, i int, d Debt, detail string) *ValidationError {
	return &ValidationError{Reason: reason, DebtIndex: i, DebtID: d.ID, Detail: detail}
}

// Validate checks debts and extraPayment. It returns the first violation
// found as a *ValidationError, or nil.
func Validate(debts []Debt, extraPayment float64) error {
	if len(debts) == 0 {
		return portfolioError(ReasonEmptyDebtList, "at least one debt is required")
	}
	if !mathutil.IsFinite(extraPayment) {
		return portfolioError(ReasonNonFiniteValue, "extra payment must be a finite number")
	}
	if extraPayment < 0 {
		return portfolioError(ReasonNegativeExtraPayment, fmt.Sprintf("extra payment %.2f is negative", extraPayment))
	}

	seen := make(map[string]int, len(debts))
	for i, d := range debts {
		if !mathutil.IsFinite(d.Balance) || !mathutil.IsFinite(d.AnnualInterestRate) || !mathutil.IsFinite(d.MinimumPayment) {
			return debtError(ReasonNonFiniteValue, i, d, "balance, rate and minimum payment must be finite numbers")
		}
		if d.Balance < 0 {
			return debtError(ReasonNegativeBalance, i, d, fmt.Sprintf("balance %.2f is negative", d.Balance))
		}
		if d.AnnualInterestRate < 0 {
			return debtError(ReasonNegativeInterestRate, i, d, fmt.Sprintf("interest rate %.2f%% is negative", d.AnnualInterestRate))
		}
		if d.MinimumPayment < 0 {
			return debtError(ReasonNegativeMinimumPayment, i, d, fmt.Sprintf("minimum payment %.2f is negative", d.MinimumPayment))
		}
		if d.Balance > 0 && d.MinimumPayment <= 0 {
			return debtError(ReasonNonPositiveMinimum, i, d, "a debt with a balance needs a positive minimum payment")
		}
		if d.ID != "" {
			if first, dup := seen[d.ID]; dup {
				return debtError(ReasonDuplicateDebtID, i, d, fmt.Sprintf("id already used by debt %d", first))
			}
			seen[d.ID] = i
		}
	}
	return nil
}
