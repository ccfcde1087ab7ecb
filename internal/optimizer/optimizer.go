// Package optimizer searches for the smallest extra monthly payment that
// clears a portfolio within a target number of months.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/format"
	"github.com/iwvelando/debt-payoff/pkg/mathutil"
	"github.com/iwvelando/debt-payoff/pkg/optimization"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"go.uber.org/zap"
)

// Runner evaluates candidate extra payments with a payoff simulator.
type Runner struct {
	logger    *zap.Logger
	simulator *payoff.Simulator
}

type evaluation struct {
	value        float64
	result       payoff.PayoffResult
	targetMonths int
}

func (e evaluation) feasible() bool {
	return e.result.Converged && e.result.MonthsToPayoff <= e.targetMonths
}

// NewRunner constructs a Runner. A nil simulator uses the default options.
func NewRunner(logger *zap.Logger, simulator *payoff.Simulator) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if simulator == nil {
		simulator = payoff.NewSimulator(logger, payoff.Options{})
	}
	return &Runner{logger: logger, simulator: simulator}
}

// Run bisects the extra payment in [0, target.MaxExtraPayment] for the
// smallest value whose plan under strategy finishes within target.Months.
// The compare mode searches with the avalanche strategy. originalExtra is
// the configured extra payment and is only used for reporting.
func (r *Runner) Run(debts []payoff.Debt, originalExtra float64, strategy string, target config.Target) (optimization.Summary, error) {
	if err := target.Validate(); err != nil {
		return optimization.Summary{}, err
	}
	if err := payoff.Validate(debts, originalExtra); err != nil {
		return optimization.Summary{}, err
	}
	if strategy == "" || strategy == constants.ModeCompare {
		strategy = constants.StrategyAvalanche
	}
	method, err := payoff.ParseStrategy(strategy)
	if err != nil {
		return optimization.Summary{}, err
	}

	upperBound := target.MaxExtraPayment
	if upperBound == 0 {
		// Paying the whole balance as extra clears everything in month one.
		upperBound = math.Ceil(payoff.TotalBalance(debts))
	}

	summary := optimization.Summary{
		Strategy:        string(method),
		TargetMonths:    target.Months,
		OriginalExtra:   originalExtra,
		MaxExtraPayment: upperBound,
		OriginalDisplay: format.Currency(originalExtra),
	}

	baseline, err := r.simulator.Run(debts, originalExtra, method)
	if err != nil {
		return optimization.Summary{}, err
	}

	lowerEval, err := r.evaluate(debts, method, 0, target.Months)
	if err != nil {
		return optimization.Summary{}, err
	}
	if lowerEval.feasible() {
		summary.Notes = append(summary.Notes, "minimum payments alone reach the target")
		return r.finish(summary, lowerEval, baseline, 0, true), nil
	}

	upperEval, err := r.evaluate(debts, method, upperBound, target.Months)
	if err != nil {
		return optimization.Summary{}, err
	}
	if !upperEval.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"unable to pay off within %s using up to %s extra per month",
			format.Months(target.Months), format.Currency(upperBound)))
		return r.finish(summary, upperEval, baseline, 0, false), nil
	}

	iterations := 0
	lower, upper := 0.0, upperBound
	best := upperEval
	for iterations < target.MaxIterations && !mathutil.WithinTolerance(upper, lower, target.Tolerance) {
		mid := lower + (upper-lower)/2
		evalMid, err := r.evaluate(debts, method, mid, target.Months)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if evalMid.feasible() {
			best = evalMid
			upper = mid
		} else {
			lower = mid
		}
	}
	if !mathutil.WithinTolerance(upper, lower, target.Tolerance) {
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"search stopped after %d iterations with a window of %s", iterations, format.Currency(upper-lower)))
	}

	// Round up to the cent; a larger payment never finishes later.
	rounded := math.Ceil(best.value*constants.DecimalPrecision) / constants.DecimalPrecision
	if rounded != best.value {
		roundedEval, err := r.evaluate(debts, method, rounded, target.Months)
		if err != nil {
			return optimization.Summary{}, err
		}
		if roundedEval.feasible() {
			best = roundedEval
		}
	}

	return r.finish(summary, best, baseline, iterations, true), nil
}

func (r *Runner) evaluate(debts []payoff.Debt, method payoff.Strategy, extra float64, targetMonths int) (evaluation, error) {
	result, err := r.simulator.Run(debts, extra, method)
	if err != nil {
		return evaluation{}, fmt.Errorf("optimizer evaluation at extra payment %.2f failed: %w", extra, err)
	}
	return evaluation{value: extra, result: result, targetMonths: targetMonths}, nil
}

func (r *Runner) finish(summary optimization.Summary, eval evaluation, baseline payoff.PayoffResult, iterations int, converged bool) optimization.Summary {
	summary.ExtraPayment = eval.value
	summary.ValueDisplay = format.Currency(eval.value)
	summary.MonthsToPayoff = eval.result.MonthsToPayoff
	summary.TotalInterest = eval.result.TotalInterest
	summary.InterestSaved = mathutil.Round(baseline.TotalInterest - eval.result.TotalInterest)
	summary.Iterations = iterations
	summary.Converged = converged

	r.logger.Info("optimizer searched extra payment",
		zap.String("op", "optimizer.Run"),
		zap.String("strategy", summary.Strategy),
		zap.Int("targetMonths", summary.TargetMonths),
		zap.Float64("originalExtra", summary.OriginalExtra),
		zap.Float64("extraPayment", summary.ExtraPayment),
		zap.Int("monthsToPayoff", summary.MonthsToPayoff),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary
}
