package payoff

import "sort"

// orderDebts returns a new slice holding active ranked by strategy. The input
// slice is not reordered. Debts that tie on both keys keep their input order.
func orderDebts(active []*workingDebt, strategy Strategy) []*workingDebt {
	ordered := make([]*workingDebt, len(active))
	copy(ordered, active)

	switch strategy {
	case Snowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.currentBalance != b.currentBalance {
				return a.currentBalance < b.currentBalance
			}
			return a.AnnualInterestRate > b.AnnualInterestRate
		})
	case Avalanche:
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if a.AnnualInterestRate != b.AnnualInterestRate {
				return a.AnnualInterestRate > b.AnnualInterestRate
			}
			return a.currentBalance < b.currentBalance
		})
	}
	return ordered
}
