package payoff

import (
	"github.com/iwvelando/debt-payoff/pkg/mathutil"
)

// LedgerEntry records one simulated month.
type LedgerEntry struct {
	Month         int           `json:"month"`
	Date          string        `json:"date,omitempty"`
	TotalBalance  float64       `json:"totalBalance"`
	InterestPaid  float64       `json:"interestPaid"`
	PrincipalPaid float64       `json:"principalPaid"`
	TotalPaid     float64       `json:"totalPaid"`
	Payments      []DebtPayment `json:"payments"`
}

// DebtPayment is one debt's share of a LedgerEntry, listed in the order the
// strategy ranked the debt that month.
type DebtPayment struct {
	DebtID    string  `json:"debtId"`
	Name      string  `json:"name,omitempty"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Paid      float64 `json:"paid"`
	Balance   float64 `json:"balance"`
	PaidOff   bool    `json:"paidOff,omitempty"`
}

// portfolio is the mutable state of one simulation run.
type portfolio struct {
	debts        []*workingDebt
	active       []*workingDebt
	strategy     Strategy
	extraPayment float64
	totalMinimum float64
}

func newPortfolio(debts []Debt, extraPayment float64, strategy Strategy) *portfolio {
	p := &portfolio{
		debts:        newWorkingDebts(debts),
		strategy:     strategy,
		extraPayment: extraPayment,
		totalMinimum: TotalMinimumPayment(debts),
	}
	for _, d := range p.debts {
		if mathutil.IsPositive(d.currentBalance) {
			p.active = append(p.active, d)
		} else {
			d.currentBalance = 0
		}
	}
	return p
}

// step advances every active debt by one billing cycle and returns the
// month's ledger entry.
func (p *portfolio) step(month int) LedgerEntry {
	ordered := orderDebts(p.active, p.strategy)
	entry := LedgerEntry{
		Month:    month,
		Payments: make([]DebtPayment, len(ordered)),
	}

	// Accrue interest and apply minimums. The payment is capped at what is
	// owed so a final payment never drives a balance negative.
	for i, d := range ordered {
		interest := mathutil.MonthlyInterest(d.currentBalance, d.AnnualInterestRate)
		d.totalInterestPaid += interest
		payment := mathutil.Min(d.MinimumPayment, d.currentBalance+interest)
		principal := mathutil.Max(0, payment-interest)
		d.currentBalance -= principal

		entry.InterestPaid += interest
		entry.Payments[i] = DebtPayment{
			DebtID:    d.ID,
			Name:      d.Name,
			Interest:  interest,
			Principal: principal,
		}
	}

	// Every minimum whose debt cleared, including one cleared by this
	// month's minimum pass, rolls into the extra pool in full.
	activeMinimum := 0.0
	for _, d := range ordered {
		if mathutil.IsPositive(d.currentBalance) {
			activeMinimum += d.MinimumPayment
		}
	}
	pool := p.extraPayment + p.totalMinimum - activeMinimum
	for i, d := range ordered {
		if pool <= 0 {
			break
		}
		if !mathutil.IsPositive(d.currentBalance) {
			continue
		}
		extra := mathutil.Min(pool, d.currentBalance)
		d.currentBalance -= extra
		pool -= extra
		entry.Payments[i].Principal += extra
	}

	for i, d := range ordered {
		if d.currentBalance < 0 {
			d.currentBalance = 0
		}
		if mathutil.IsZero(d.currentBalance) && d.payoffMonth == 0 {
			d.payoffMonth = month
			d.currentBalance = 0
			entry.Payments[i].PaidOff = true
		}
		pay := &entry.Payments[i]
		pay.Balance = d.currentBalance
		pay.Paid = pay.Interest + pay.Principal
		entry.PrincipalPaid += pay.Principal
	}
	stillActive := make([]*workingDebt, 0, len(p.active))
	for _, d := range p.active {
		if d.payoffMonth == 0 {
			stillActive = append(stillActive, d)
		}
	}
	p.active = stillActive

	for _, d := range p.debts {
		entry.TotalBalance += d.currentBalance
	}
	entry.TotalPaid = entry.InterestPaid + entry.PrincipalPaid
	return entry
}
