package tickets

const (
	SearchPlaceholder  = "Digite sua pesquisa aqui"
	NoTicketsText      = "Não há tickets pendentes."
	NoCollaboratorText = "Nenhum colaborador foi selecionado."
)

var Headers = []string{"Data", "Ticket", "Horas", "Loja", "Assunto"}

// Cells returns the display values of a row in Headers order.
func Cells(r Row) []string {
	date := formatDay(r.Date)
	if r.FinalDate != "" {
		date += " → " + formatDay(r.FinalDate)
	}

	return []string{date, r.TicketIdString(), r.Hours, r.Store, r.Subject}
}

func formatDay(s string) string {
	if t, ok := parseDate(s); ok {
		return t.UTC().Format("02/01/2006")
	}
	return s
}

// EmptyText is the message shown in place of the rows, if any. A search that
// filters every row away shows neither message.
func (s Snapshot) EmptyText() (string, bool) {
	if !s.Selected() {
		return NoCollaboratorText, true
	}

	if len(s.Rows) == 0 {
		return NoTicketsText, true
	}

	return "", false
}
