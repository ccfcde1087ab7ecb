package testutil

import (
	"testing"

	"github.com/iwvelando/debt-payoff/pkg/payoff"
)

func TestFindOutcome(t *testing.T) {
	result := payoff.PayoffResult{
		DebtOutcomes: []payoff.Outcome{
			{DebtID: "a", PayoffMonth: 3},
			{DebtID: "b", PayoffMonth: 7},
		},
	}

	found := FindOutcome(result, "b")
	if found == nil {
		t.Fatal("expected to find outcome b")
	}
	if found.PayoffMonth != 7 {
		t.Errorf("expected payoff month 7, got %d", found.PayoffMonth)
	}
	if FindOutcome(result, "missing") != nil {
		t.Error("expected nil for unknown debt")
	}
}

func TestFindPayment(t *testing.T) {
	result := payoff.PayoffResult{
		MonthlyLedger: []payoff.LedgerEntry{
			{Month: 1, Payments: []payoff.DebtPayment{{DebtID: "a", Principal: 40}}},
			{Month: 2, Payments: []payoff.DebtPayment{{DebtID: "a", Principal: 60}}},
		},
	}

	if p := FindPayment(result, 2, "a"); p == nil || p.Principal != 60 {
		t.Fatalf("expected month 2 payment of 60, got %+v", p)
	}
	if FindPayment(result, 0, "a") != nil || FindPayment(result, 3, "a") != nil {
		t.Error("expected nil for months outside the ledger")
	}
	if FindPayment(result, 1, "b") != nil {
		t.Error("expected nil for unknown debt")
	}
}

func TestMixedDebtsAreValid(t *testing.T) {
	if err := payoff.Validate(MixedDebts(), 0); err != nil {
		t.Fatalf("MixedDebts() failed validation: %v", err)
	}
}
