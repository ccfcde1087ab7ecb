package payoff

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Debt{ID: "ok", Balance: 500, AnnualInterestRate: 12, MinimumPayment: 25}

	tests := []struct {
		name      string
		debts     []Debt
		extra     float64
		reason    Reason
		debtIndex int
	}{
		{
			name:      "Empty debt list",
			debts:     nil,
			reason:    ReasonEmptyDebtList,
			debtIndex: -1,
		},
		{
			name:      "Negative balance",
			debts:     []Debt{valid, {ID: "neg", Balance: -1, MinimumPayment: 10}},
			reason:    ReasonNegativeBalance,
			debtIndex: 1,
		},
		{
			name:      "Negative interest rate",
			debts:     []Debt{{ID: "r", Balance: 100, AnnualInterestRate: -3, MinimumPayment: 10}},
			reason:    ReasonNegativeInterestRate,
			debtIndex: 0,
		},
		{
			name:      "Negative minimum payment",
			debts:     []Debt{{ID: "m", Balance: 0, MinimumPayment: -5}},
			reason:    ReasonNegativeMinimumPayment,
			debtIndex: 0,
		},
		{
			name:      "Zero minimum with balance",
			debts:     []Debt{valid, {ID: "z", Balance: 100, MinimumPayment: 0}},
			reason:    ReasonNonPositiveMinimum,
			debtIndex: 1,
		},
		{
			name:      "Negative extra payment",
			debts:     []Debt{valid},
			extra:     -10,
			reason:    ReasonNegativeExtraPayment,
			debtIndex: -1,
		},
		{
			name:      "NaN extra payment",
			debts:     []Debt{valid},
			extra:     math.NaN(),
			reason:    ReasonNonFiniteValue,
			debtIndex: -1,
		},
		{
			name:      "Infinite balance",
			debts:     []Debt{{ID: "inf", Balance: math.Inf(1), MinimumPayment: 10}},
			reason:    ReasonNonFiniteValue,
			debtIndex: 0,
		},
		{
			name:      "Duplicate ID",
			debts:     []Debt{valid, valid},
			reason:    ReasonDuplicateDebtID,
			debtIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.debts, tt.extra)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, expected *ValidationError", err)
			}
			if vErr.Reason != tt.reason {
				t.Errorf("Validate() reason = %s, expected %s", vErr.Reason, tt.reason)
			}
			if vErr.DebtIndex != tt.debtIndex {
				t.Errorf("Validate() debt index = %d, expected %d", vErr.DebtIndex, tt.debtIndex)
			}
			if !strings.HasPrefix(vErr.Error(), string(tt.reason)) {
				t.Errorf("Error() = %q, expected prefix %q", vErr.Error(), tt.reason)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name  string
		debts []Debt
	}{
		{"Single debt", []Debt{{ID: "a", Balance: 1200, MinimumPayment: 100}}},
		{"Paid debt with no minimum", []Debt{{ID: "a", Balance: 0, MinimumPayment: 0}}},
		{"Empty IDs are not duplicates", []Debt{{Balance: 10, MinimumPayment: 5}, {Balance: 20, MinimumPayment: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.debts, 0); err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
