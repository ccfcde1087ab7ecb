package payoff

import (
	"fmt"

	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/mathutil"
	"go.uber.org/zap"
)

// Outcome summarizes how one debt fared over a run.
type Outcome struct {
	DebtID            string  `json:"debtId"`
	Name              string  `json:"name"`
	PayoffMonth       int     `json:"payoffMonth"`
	PayoffDate        string  `json:"payoffDate,omitempty"`
	TotalInterestPaid float64 `json:"totalInterestPaid"`
	PaidOff           bool    `json:"paidOff"`
}

// PayoffResult is the full output of one strategy run.
type PayoffResult struct {
	Method         Strategy      `json:"method"`
	TotalInterest  float64       `json:"totalInterest"`
	TotalPaid      float64       `json:"totalPaid"`
	MonthsToPayoff int           `json:"monthsToPayoff"`
	MonthlyLedger  []LedgerEntry `json:"monthlyLedger"`
	DebtOutcomes   []Outcome     `json:"debtOutcomes"`
	TotalDebt      float64       `json:"totalDebt"`
	Converged      bool          `json:"converged"`
	MaxMonths      int           `json:"maxMonths"`
}

// PayoffOrder returns debt IDs in the order they were paid off. Debts that
// never reached a zero balance are omitted.
func (r PayoffResult) PayoffOrder() []string {
	order := make([]string, 0, len(r.DebtOutcomes))
	for _, entry := range r.MonthlyLedger {
		for _, p := range entry.Payments {
			if p.PaidOff {
				order = append(order, p.DebtID)
			}
		}
	}
	return order
}

// Options tunes a Simulator. Zero values select the defaults.
type Options struct {
	// MaxMonths caps the simulation; defaults to constants.DefaultMaxMonths.
	MaxMonths int
	// StartDate, when set, is the YYYY-MM month labelled as month 1.
	StartDate string
}

// Simulator runs payoff plans. It holds no per-run state and is safe for
// concurrent use.
type Simulator struct {
	logger    *zap.Logger
	maxMonths int
	startDate string
}

// NewSimulator creates a Simulator. A nil logger is replaced by a no-op logger.
func NewSimulator(logger *zap.Logger, opts Options) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		logger:    logger,
		maxMonths: opts.MaxMonths,
		startDate: opts.StartDate,
	}
}

// RunPayoffPlan simulates debts under strategy with the default options.
func RunPayoffPlan(debts []Debt, extraPayment float64, strategy Strategy) (PayoffResult, error) {
	return NewSimulator(nil, Options{}).Run(debts, extraPayment, strategy)
}

func (s *Simulator) checkOptions() (int, error) {
	maxMonths := s.maxMonths
	if maxMonths == 0 {
		maxMonths = constants.DefaultMaxMonths
	}
	if maxMonths < 0 {
		return 0, portfolioError(ReasonInvalidMaxMonths, fmt.Sprintf("max months %d is negative", maxMonths))
	}
	if s.startDate != "" {
		if err := datetime.ValidateMonth(s.startDate); err != nil {
			return 0, portfolioError(ReasonInvalidStartDate, err.Error())
		}
	}
	return maxMonths, nil
}

// Run validates the inputs and simulates paying off debts month by month
// until every balance is cleared or the month cap is reached. A plan that
// hits the cap is returned with Converged set to false, not as an error.
func (s *Simulator) Run(debts []Debt, extraPayment float64, strategy Strategy) (PayoffResult, error) {
	if err := Validate(debts, extraPayment); err != nil {
		return PayoffResult{}, err
	}
	if strategy != Snowball && strategy != Avalanche {
		return PayoffResult{}, portfolioError(ReasonUnknownStrategy, fmt.Sprintf("strategy %q is not %s or %s", strategy, Snowball, Avalanche))
	}
	maxMonths, err := s.checkOptions()
	if err != nil {
		return PayoffResult{}, err
	}

	s.logger.Debug("starting payoff simulation",
		zap.String("op", "payoff.Run"),
		zap.String("strategy", string(strategy)),
		zap.Int("debts", len(debts)),
		zap.Float64("extraPayment", extraPayment),
	)

	p := newPortfolio(CloneDebts(debts), extraPayment, strategy)
	result := PayoffResult{
		Method:        strategy,
		TotalDebt:     TotalBalance(debts),
		MaxMonths:     maxMonths,
		MonthlyLedger: []LedgerEntry{},
	}

	month := 0
	for len(p.active) > 0 && month < maxMonths {
		month++
		entry := p.step(month)
		if s.startDate != "" {
			entry.Date = s.monthLabel(month)
		}
		result.TotalInterest += entry.InterestPaid
		result.TotalPaid += entry.TotalPaid
		result.MonthlyLedger = append(result.MonthlyLedger, entry)
	}
	result.MonthsToPayoff = month
	result.Converged = len(p.active) == 0

	if !result.Converged {
		s.logger.Warn(fmt.Sprintf("payoff plan did not converge within %d months", maxMonths),
			zap.String("op", "payoff.Run"),
			zap.String("strategy", string(strategy)),
			zap.Int("unpaidDebts", len(p.active)),
		)
		// Unresolved debts report the cutoff so callers never see an unset month.
		for _, d := range p.active {
			d.payoffMonth = month
		}
	}

	result.DebtOutcomes = make([]Outcome, len(p.debts))
	for i, d := range p.debts {
		outcome := Outcome{
			DebtID:            d.ID,
			Name:              d.Name,
			PayoffMonth:       d.payoffMonth,
			TotalInterestPaid: d.totalInterestPaid,
			PaidOff:           mathutil.IsZero(d.currentBalance),
		}
		if s.startDate != "" && d.payoffMonth > 0 {
			outcome.PayoffDate = s.monthLabel(d.payoffMonth)
		}
		result.DebtOutcomes[i] = outcome
	}

	s.logger.Debug("finished payoff simulation",
		zap.String("op", "payoff.Run"),
		zap.String("strategy", string(strategy)),
		zap.Int("months", result.MonthsToPayoff),
		zap.Float64("totalInterest", result.TotalInterest),
		zap.Bool("converged", result.Converged),
	)
	return result, nil
}

// monthLabel maps a 1-based month index onto the calendar. startDate has
// already been validated.
func (s *Simulator) monthLabel(month int) string {
	label, _ := datetime.OffsetDate(s.startDate, datetime.DateTimeLayout, month-1)
	return label
}
