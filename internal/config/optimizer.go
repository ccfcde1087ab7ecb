package config

import (
	"fmt"

	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/mathutil"
)

// Target asks for the smallest extra payment that clears every debt within
// Months. Date, a YYYY-MM month, may be given instead of Months. A
// MaxExtraPayment of zero bounds the search by the total balance.
type Target struct {
	Months          int     `yaml:"months" json:"months"`
	Date            string  `yaml:"date,omitempty" json:"date,omitempty"`
	MaxExtraPayment float64 `yaml:"maxExtraPayment,omitempty" json:"maxExtraPayment,omitempty"`
	Tolerance       float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations   int     `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// Normalize ensures defaults are applied before validation.
func (t *Target) Normalize() {
	if t == nil {
		return
	}
	if t.Tolerance <= 0 {
		t.Tolerance = constants.DefaultOptimizerTolerance
	}
	if t.MaxIterations <= 0 {
		t.MaxIterations = constants.DefaultOptimizerMaxIterations
	}
}

// Resolve converts Date into Months counted from startDate, where startDate
// itself is month 1. Months set explicitly wins over Date.
func (t *Target) Resolve(startDate string) error {
	if t == nil || t.Months != 0 || t.Date == "" {
		return nil
	}
	if startDate == "" {
		return fmt.Errorf("target date %s requires a plan start date", t.Date)
	}
	months, err := datetime.MonthsBetween(startDate, t.Date)
	if err != nil {
		return fmt.Errorf("target date %q is invalid: %w", t.Date, err)
	}
	if months < 0 {
		return fmt.Errorf("target date %s is before start date %s", t.Date, startDate)
	}
	t.Months = months + 1
	return nil
}

// Validate returns an error when the target cannot be searched for.
func (t *Target) Validate() error {
	if t == nil {
		return fmt.Errorf("target configuration cannot be nil")
	}

	t.Normalize()

	if t.Months < 1 {
		return fmt.Errorf("target months %d must be at least 1", t.Months)
	}
	if !mathutil.IsFinite(t.MaxExtraPayment) || t.MaxExtraPayment < 0 {
		return fmt.Errorf("target maxExtraPayment %v must be a non-negative number", t.MaxExtraPayment)
	}
	if !mathutil.IsFinite(t.Tolerance) {
		return fmt.Errorf("target tolerance %v must be finite", t.Tolerance)
	}
	return nil
}
