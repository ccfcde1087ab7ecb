// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a target payoff search: the smallest extra
// monthly payment that clears every debt within TargetMonths.
type Summary struct {
	Strategy        string   `json:"strategy"`
	TargetMonths    int      `json:"targetMonths"`
	OriginalExtra   float64  `json:"originalExtra"`
	ExtraPayment    float64  `json:"extraPayment"`
	MaxExtraPayment float64  `json:"maxExtraPayment"`
	MonthsToPayoff  int      `json:"monthsToPayoff"`
	TotalInterest   float64  `json:"totalInterest"`
	InterestSaved   float64  `json:"interestSaved"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// Met reports whether the found plan reaches the target month count.
func (s Summary) Met() bool {
	return s.Converged && s.MonthsToPayoff > 0 && s.MonthsToPayoff <= s.TargetMonths
}
