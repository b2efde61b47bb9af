package tickets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCells(t *testing.T) {
	tests := []struct {
		row  Row
		want []string
	}{
		{
			Row{TicketId: 7, Date: "2024-01-09T00:00:00Z", FinalDate: "2024-01-10T15:00:00Z", Hours: "5", Store: "S", Subject: "X"},
			[]string{"09/01/2024 → 10/01/2024", "7", "5", "S", "X"},
		},
		{
			Row{TicketId: 8, Date: "2024-01-09", Store: "S"},
			[]string{"09/01/2024", "8", "", "S", ""},
		},
		{
			Row{TicketId: 9, Date: "soon"},
			[]string{"soon", "9", "", "", ""},
		},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Cells(tt.row)); diff != "" {
			t.Errorf("Cells(%d) mismatch (-want +got):\n%s", tt.row.TicketId, diff)
		}
	}
}

func TestEmptyText(t *testing.T) {
	if text, ok := (Snapshot{}).EmptyText(); !ok || text != NoCollaboratorText {
		t.Errorf("no collaborator: %q %v", text, ok)
	}

	if text, ok := (Snapshot{CollaboratorId: "1"}).EmptyText(); !ok || text != NoTicketsText {
		t.Errorf("no rows: %q %v", text, ok)
	}

	if _, ok := (Snapshot{CollaboratorId: "1", Rows: []Row{{TicketId: 1}}}).EmptyText(); ok {
		t.Errorf("rows present should not be empty")
	}
}
