// Package format renders currency amounts and durations for display.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent returns an annual rate such as "19.99%".
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

// Months renders a month count as years and months, e.g. "2 years, 3 months".
func Months(months int) string {
	if months <= 0 {
		return "0 months"
	}
	years, rest := months/12, months%12
	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if rest > 0 {
		parts = append(parts, plural(rest, "month"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
