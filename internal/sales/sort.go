package sales

import (
	"cmp"
	"slices"
	"strings"
)

// Sort returns a copy of rows ordered by key and dir. Ties keep their
// input order.
func Sort(rows []Sale, key SortKey, dir SortDir) []Sale {
	sorted := slices.Clone(rows)
	compare := comparator(key)
	m := dir.multiplier()
	slices.SortStableFunc(sorted, func(a, b Sale) int {
		return m * compare(&a, &b)
	})
	return sorted
}

func comparator(key SortKey) func(a, b *Sale) int {
	switch key {
	case SortByQuantity:
		return func(a, b *Sale) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByCustomerName:
		return func(a, b *Sale) int {
			return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
		}
	default:
		return compareDate
	}
}

// compareDate orders a missing date before every present one.
func compareDate(a, b *Sale) int {
	switch {
	case a.Date == nil && b.Date == nil:
		return 0
	case a.Date == nil:
		return -1
	case b.Date == nil:
		return 1
	default:
		return a.Date.Compare(*b.Date)
	}
}
