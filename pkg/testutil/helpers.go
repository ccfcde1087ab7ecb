// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/debt-payoff/pkg/payoff"
)

// FindOutcome finds a debt outcome by debt ID in a payoff result.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(result payoff.PayoffResult, debtID string) *payoff.Outcome {
	for i := range result.DebtOutcomes {
		if result.DebtOutcomes[i].DebtID == debtID {
			return &result.DebtOutcomes[i]
		}
	}
	return nil
}

// FindPayment returns the payment made toward debtID in the given 1-based
// month, or nil when the debt was not active that month.
func FindPayment(result payoff.PayoffResult, month int, debtID string) *payoff.DebtPayment {
	if month < 1 || month > len(result.MonthlyLedger) {
		return nil
	}
	entry := result.MonthlyLedger[month-1]
	for i := range entry.Payments {
		if entry.Payments[i].DebtID == debtID {
			return &entry.Payments[i]
		}
	}
	return nil
}

// MixedDebts returns three debts whose snowball and avalanche orders differ:
// small (100 at 20%), medium (500 at 5%) and large (1000 at 10%).
func MixedDebts() []payoff.Debt {
	return []payoff.Debt{
		{ID: "small", Name: "Store card", Balance: 100, AnnualInterestRate: 20, MinimumPayment: 10},
		{ID: "medium", Name: "Car loan", Balance: 500, AnnualInterestRate: 5, MinimumPayment: 10},
		{ID: "large", Name: "Visa", Balance: 1000, AnnualInterestRate: 10, MinimumPayment: 10},
	}
}
