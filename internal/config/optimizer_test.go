package config

import (
	"math"
	"testing"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

func TestTargetNormalize(t *testing.T) {
	target := &Target{Months: 12}
	target.Normalize()
	if target.Tolerance != constants.DefaultOptimizerTolerance {
		t.Errorf("Tolerance = %v, want default", target.Tolerance)
	}
	if target.MaxIterations != constants.DefaultOptimizerMaxIterations {
		t.Errorf("MaxIterations = %v, want default", target.MaxIterations)
	}

	var nilTarget *Target
	nilTarget.Normalize()
}

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  *Target
		wantErr bool
	}{
		{name: "valid", target: &Target{Months: 24, MaxExtraPayment: 500}},
		{name: "unbounded", target: &Target{Months: 24}},
		{name: "nil", target: nil, wantErr: true},
		{name: "zero months", target: &Target{Months: 0}, wantErr: true},
		{name: "negative max", target: &Target{Months: 12, MaxExtraPayment: -1}, wantErr: true},
		{name: "infinite max", target: &Target{Months: 12, MaxExtraPayment: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTargetResolve(t *testing.T) {
	tests := []struct {
		name       string
		target     *Target
		start      string
		wantMonths int
		wantErr    bool
	}{
		{name: "date same month", target: &Target{Date: "2026-11"}, start: "2026-11", wantMonths: 1},
		{name: "date three years out", target: &Target{Date: "2029-10"}, start: "2026-11", wantMonths: 36},
		{name: "months wins", target: &Target{Months: 12, Date: "2029-10"}, start: "2026-11", wantMonths: 12},
		{name: "no date", target: &Target{Months: 6}, start: "", wantMonths: 6},
		{name: "missing start", target: &Target{Date: "2029-10"}, start: "", wantErr: true},
		{name: "bad date", target: &Target{Date: "10/2029"}, start: "2026-11", wantErr: true},
		{name: "date before start", target: &Target{Date: "2026-01"}, start: "2026-11", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Resolve(tt.start)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.target.Months != tt.wantMonths {
				t.Errorf("Months = %d, want %d", tt.target.Months, tt.wantMonths)
			}
		})
	}
}
