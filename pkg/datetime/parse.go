// Package datetime provides calendar month utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// ValidateMonth checks that date is a YYYY-MM month.
func ValidateMonth(date string) error {
	if _, err := time.Parse(DateTimeLayout, date); err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM: %w", date, err)
	}
	return nil
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthsBetween returns the number of whole months from start to end. The
// result is negative when end precedes start.
func MonthsBetween(start, end string) (int, error) {
	startT, err := time.Parse(DateTimeLayout, start)
	if err != nil {
		return 0, err
	}
	endT, err := time.Parse(DateTimeLayout, end)
	if err != nil {
		return 0, err
	}
	return (endT.Year()-startT.Year())*constants.MonthsPerYear + int(endT.Month()) - int(startT.Month()), nil
}

// CurrentMonth returns the month containing now in DateTimeLayout.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}
