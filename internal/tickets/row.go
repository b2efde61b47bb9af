package tickets

import (
	"strconv"
	"time"
)

// finalDateSuffix is appended to every present final date.
const finalDateSuffix = "T15:00:00Z"

// Row is the display form of a ticket. Rows are rebuilt on every refresh.
type Row struct {
	Date      string `json:"date"`
	TicketId  int64  `json:"ticketId"`
	Hours     string `json:"hours"`
	Store     string `json:"store"`
	Subject   string `json:"subject"`
	FinalDate string `json:"finalDateFormatted,omitempty"`
}

func (r Row) TicketIdString() string {
	return strconv.FormatInt(r.TicketId, 10)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate returns false for empty or unparseable values.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
