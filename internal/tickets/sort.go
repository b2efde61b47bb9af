package tickets

import "slices"

// Sort returns a sorted copy of rows: final date first, due date as the
// tie-break. Rows missing a date sort after rows that have one.
func Sort(rows []Row) []Row {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, compareRows)
	return sorted
}

func compareRows(a, b Row) int {
	if c := compareDates(a.FinalDate, b.FinalDate); c != 0 {
		return c
	}
	return compareDates(a.Date, b.Date)
}

func compareDates(a, b string) int {
	at, aok := parseDate(a)
	bt, bok := parseDate(b)

	switch {
	case aok && bok:
		return at.Compare(bt)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}

