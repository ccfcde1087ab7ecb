// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within the balance epsilon)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.BalanceEpsilon
}

// IsPositive checks if a value is positive (greater than the balance epsilon)
func IsPositive(val float64) bool {
	return val > constants.BalanceEpsilon
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MonthlyInterest returns one month of interest on balance at an annual
// percentage rate, compounded monthly.
func MonthlyInterest(balance, annualRatePercent float64) float64 {
	return balance * (annualRatePercent / constants.PercentageMultiplier) / constants.MonthsPerYear
}
