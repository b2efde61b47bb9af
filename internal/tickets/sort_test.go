package tickets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(rows []Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.TicketId
	}
	return out
}

func TestSort(t *testing.T) {
	rows := []Row{
		{TicketId: 1, Date: "2024-01-05T00:00:00Z", FinalDate: "2024-01-20T15:00:00Z"},
		{TicketId: 2, Date: "2024-01-03T00:00:00Z", FinalDate: ""},
		{TicketId: 3, Date: "2024-01-04T00:00:00Z", FinalDate: "2024-01-10T15:00:00Z"},
		{TicketId: 4, Date: "2024-01-02T00:00:00Z", FinalDate: "2024-01-10T15:00:00Z"},
		{TicketId: 5, Date: "2024-01-01T00:00:00Z", FinalDate: ""},
		{TicketId: 6, Date: "", FinalDate: ""},
	}

	got := ids(Sort(rows))
	want := []int64{4, 3, 1, 5, 2, 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	if rows[0].TicketId != 1 {
		t.Errorf("Sort modified its input")
	}
}

func TestSortStableOnEqualKeys(t *testing.T) {
	rows := []Row{
		{TicketId: 9, Date: "2024-01-01", FinalDate: "2024-01-10T15:00:00Z"},
		{TicketId: 8, Date: "2024-01-01", FinalDate: "2024-01-10T15:00:00Z"},
		{TicketId: 7, Date: "2024-01-01", FinalDate: "2024-01-10T15:00:00Z"},
	}

	if diff := cmp.Diff([]int64{9, 8, 7}, ids(Sort(rows))); diff != "" {
		t.Errorf("equal rows reordered (-want +got):\n%s", diff)
	}
}

func TestCompareRowsOrdering(t *testing.T) {
	a := Row{Date: "2024-01-01", FinalDate: "2024-01-10T15:00:00Z"}
	b := Row{Date: "2023-12-01", FinalDate: "2024-01-11T15:00:00Z"}

	if compareRows(a, b) >= 0 {
		t.Errorf("earlier final date must precede regardless of due date")
	}

	if compareRows(b, a) <= 0 {
		t.Errorf("compareRows is not antisymmetric")
	}
}
