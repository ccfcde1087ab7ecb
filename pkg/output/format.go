// Package output provides utilities for formatting and displaying payoff results.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/debt-payoff/pkg/format"
	"github.com/iwvelando/debt-payoff/pkg/optimization"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func strategyTitle(s payoff.Strategy) string {
	name := string(s)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// PrettyFormat writes a human-readable rather than machine-readable schedule.
func PrettyFormat(w io.Writer, result payoff.PayoffResult) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- %s payoff schedule ---\n", strategyTitle(result.Method))
	_, _ = fmt.Fprintf(w, "Month | Date    | Balance       | Interest   | Principal  | Paid       | Paid off\n")
	_, _ = fmt.Fprintf(w, "_____ | ____    | _______       | ________   | _________  | ____       | ________\n")
	for _, entry := range result.MonthlyLedger {
		date := entry.Date
		if date == "" {
			date = "-"
		}
		_, _ = p.Fprintf(w, "%5d | %-7s | $%.2f | $%.2f | $%.2f | $%.2f | %s\n",
			entry.Month, date, entry.TotalBalance, entry.InterestPaid, entry.PrincipalPaid,
			entry.TotalPaid, strings.Join(paidOffNames(entry), ","))
	}

	_, _ = fmt.Fprintf(w, "\nDebt outcomes:\n")
	for _, outcome := range result.DebtOutcomes {
		when := fmt.Sprintf("month %d", outcome.PayoffMonth)
		if outcome.PayoffDate != "" {
			when = fmt.Sprintf("%s (%s)", when, outcome.PayoffDate)
		}
		if !outcome.PaidOff {
			when = "not paid off by " + when
		}
		_, _ = fmt.Fprintf(w, "  - %s: %s, interest %s\n",
			outcomeLabel(outcome), when, format.Currency(outcome.TotalInterestPaid))
	}

	_, _ = fmt.Fprintf(w, "\nTotal interest: %s\n", format.Currency(result.TotalInterest))
	_, _ = fmt.Fprintf(w, "Total paid: %s\n", format.Currency(result.TotalPaid))
	if result.Converged {
		_, _ = fmt.Fprintf(w, "Debt free in %s\n", format.Months(result.MonthsToPayoff))
	} else {
		_, _ = fmt.Fprintf(w, "Plan does not pay off within %s; payments do not outpace interest\n",
			format.Months(result.MaxMonths))
	}
}

// CsvFormat writes the schedule in comma-separated value format.
func CsvFormat(w io.Writer, result payoff.PayoffResult) {
	_, _ = fmt.Fprintf(w, `"month","date","balance","interest","principal","paid","paid off"`)
	_, _ = fmt.Fprintf(w, "\n")
	for _, entry := range result.MonthlyLedger {
		_, _ = fmt.Fprintf(w, `"%d","%s","%.2f","%.2f","%.2f","%.2f","%s"`,
			entry.Month, entry.Date, entry.TotalBalance, entry.InterestPaid,
			entry.PrincipalPaid, entry.TotalPaid, strings.Join(paidOffNames(entry), ","))
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// CsvString returns the CsvFormat output as a string.
func CsvString(result payoff.PayoffResult) string {
	var buf bytes.Buffer
	CsvFormat(&buf, result)
	return buf.String()
}

// Summary describes how the two strategies differ in one sentence.
func Summary(c payoff.Comparison) string {
	var parts []string
	switch c.CheaperStrategy {
	case payoff.Tie:
		parts = append(parts, "Both strategies cost the same interest")
	default:
		parts = append(parts, fmt.Sprintf("%s saves %s in interest",
			strategyTitle(c.CheaperStrategy), format.Currency(c.InterestSaved)))
	}
	switch c.FasterStrategy {
	case payoff.Tie:
		parts = append(parts, "both finish at the same time")
	default:
		parts = append(parts, fmt.Sprintf("%s finishes %s sooner",
			strategyTitle(c.FasterStrategy), format.Months(c.MonthsSaved)))
	}
	return strings.Join(parts, "; ") + "."
}

// PrettyComparison writes both schedules followed by their comparison.
func PrettyComparison(w io.Writer, c payoff.Comparison) {
	PrettyFormat(w, c.Snowball)
	_, _ = fmt.Fprintf(w, "\n")
	PrettyFormat(w, c.Avalanche)
	_, _ = fmt.Fprintf(w, "\n--- Comparison ---\n")
	_, _ = fmt.Fprintf(w, "Snowball:  %s interest over %s\n",
		format.Currency(c.Snowball.TotalInterest), format.Months(c.Snowball.MonthsToPayoff))
	_, _ = fmt.Fprintf(w, "Avalanche: %s interest over %s\n",
		format.Currency(c.Avalanche.TotalInterest), format.Months(c.Avalanche.MonthsToPayoff))
	_, _ = fmt.Fprintf(w, "%s\n", Summary(c))
}

// CsvComparison writes both schedules side by side, one row per month.
func CsvComparison(w io.Writer, c payoff.Comparison) {
	_, _ = fmt.Fprintf(w, `"month","balance (snowball)","paid (snowball)","balance (avalanche)","paid (avalanche)"`)
	_, _ = fmt.Fprintf(w, "\n")
	months := len(c.Snowball.MonthlyLedger)
	if n := len(c.Avalanche.MonthlyLedger); n > months {
		months = n
	}
	for i := 0; i < months; i++ {
		_, _ = fmt.Fprintf(w, `"%d"`, i+1)
		for _, result := range []payoff.PayoffResult{c.Snowball, c.Avalanche} {
			if i < len(result.MonthlyLedger) {
				entry := result.MonthlyLedger[i]
				_, _ = fmt.Fprintf(w, `,"%.2f","%.2f"`, entry.TotalBalance, entry.TotalPaid)
			} else {
				_, _ = fmt.Fprintf(w, `,"0.00","0.00"`)
			}
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// PrettyTarget writes the result of a target payoff search.
func PrettyTarget(w io.Writer, summary optimization.Summary) {
	_, _ = fmt.Fprintf(w, "--- Target payoff (%s) ---\n", summary.Strategy)
	_, _ = fmt.Fprintf(w, "Target: debt free within %s\n", format.Months(summary.TargetMonths))
	if summary.Converged {
		_, _ = fmt.Fprintf(w, "Minimum extra payment: %s per month (debt free in %s, %s interest)\n",
			format.Currency(summary.ExtraPayment), format.Months(summary.MonthsToPayoff),
			format.Currency(summary.TotalInterest))
	} else {
		_, _ = fmt.Fprintf(w, "No extra payment up to %s reaches the target\n", format.Currency(summary.MaxExtraPayment))
	}
	for _, note := range summary.Notes {
		_, _ = fmt.Fprintf(w, "  note: %s\n", note)
	}
	_, _ = fmt.Fprintf(w, "Search iterations: %d\n", summary.Iterations)
}

func paidOffNames(entry payoff.LedgerEntry) []string {
	var names []string
	for _, p := range entry.Payments {
		if p.PaidOff {
			if p.Name != "" {
				names = append(names, p.Name)
			} else {
				names = append(names, p.DebtID)
			}
		}
	}
	return names
}

func outcomeLabel(o payoff.Outcome) string {
	if o.Name != "" {
		return o.Name
	}
	return o.DebtID
}
