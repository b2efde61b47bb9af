package tickets

import "strings"

// Filter keeps rows where the case-folded query appears in the case-folded
// due date, ticket id, store or subject. An empty query keeps every row.
func Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}

	q := strings.ToLower(query)
	var out []Row
	for _, r := range rows {
		if r.Matches(q) {
			out = append(out, r)
		}
	}

	return out
}

// Matches expects q already lower-cased.
func (r Row) Matches(q string) bool {
	return strings.Contains(strings.ToLower(r.Date), q) ||
		strings.Contains(r.TicketIdString(), q) ||
		strings.Contains(strings.ToLower(r.Store), q) ||
		strings.Contains(strings.ToLower(r.Subject), q)
}
