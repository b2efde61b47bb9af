package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dsrosen/zendesk-ticket-board/internal/tickets"
)

type Collaborator struct {
	Name string
	Id   string
}

type keyMap struct {
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Refresh  key.Binding
	Copy     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c")),
		Next:     key.NewBinding(key.WithKeys("tab")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab")),
		Refresh:  key.NewBinding(key.WithKeys("ctrl+r")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

type refreshDoneMsg struct {
	err error
}

type copiedMsg struct {
	rows int
	err  error
}

type Model struct {
	ctx   context.Context
	board *tickets.Board

	collaborators []Collaborator
	selected      int
	snapshot      tickets.Snapshot
	status        string

	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	keys     keyMap

	width    int
	height   int
	ready    bool
	quitting bool

	// clipboard is swapped out in tests.
	clipboard func(string) error
}

func NewModel(ctx context.Context, board *tickets.Board, collaborators []Collaborator) *Model {
	ti := textinput.New()
	ti.Placeholder = tickets.SearchPlaceholder
	ti.Prompt = "🔍 "
	ti.Focus()

	spnr := spinner.New()
	spnr.Spinner = spinner.Ellipsis
	spnr.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "248"})

	snap := board.Snapshot()
	collaborators = slices.Clone(collaborators)
	selected := -1
	if snap.Selected() {
		selected = slices.IndexFunc(collaborators, func(c Collaborator) bool { return c.Id == snap.CollaboratorId })
		if selected < 0 {
			collaborators = append(collaborators, Collaborator{Name: snap.CollaboratorId, Id: snap.CollaboratorId})
			selected = len(collaborators) - 1
		}
	}

	return &Model{
		ctx:           ctx,
		board:         board,
		collaborators: collaborators,
		selected:      selected,
		snapshot:      snap,
		search:        ti,
		spinner:       spnr,
		keys:          defaultKeyMap(),
		clipboard:     clipboard.WriteAll,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.snapshot.Selected() {
		cmds = append(cmds, m.refresh())
	}
	return tea.Batch(cmds...)
}

func (m *Model) refresh() tea.Cmd {
	ctx, board := m.ctx, m.board
	return func() tea.Msg {
		return refreshDoneMsg{err: board.Refresh(ctx)}
	}
}

func (m *Model) selectCollaborator(i int) tea.Cmd {
	m.selected = i
	id := ""
	if i >= 0 && i < len(m.collaborators) {
		id = m.collaborators[i].Id
	}
	slog.Debug("switching collaborator", "collaboratorId", id)

	ctx, board := m.ctx, m.board
	return func() tea.Msg {
		return refreshDoneMsg{err: board.Select(ctx, id)}
	}
}

func (m *Model) cycle(step int) tea.Cmd {
	n := len(m.collaborators)
	if n == 0 {
		return nil
	}

	next := m.selected + step
	if m.selected < 0 && step < 0 {
		next = n - 1
	}
	next = ((next % n) + n) % n
	if next == m.selected {
		return nil
	}

	return m.selectCollaborator(next)
}

func (m *Model) copyRows(rows []tickets.Row) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		if err := write(plainText(rows)); err != nil {
			slog.Error("copying rows to clipboard", "error", err)
			return copiedMsg{err: err}
		}
		slog.Debug("copied rows to clipboard", "rows", len(rows))
		return copiedMsg{rows: len(rows)}
	}
}

func (m *Model) visibleRows() []tickets.Row {
	return tickets.Filter(m.snapshot.Rows, m.search.Value())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(msg.Width-4, 10)
		m.resizeViewport()

	case tea.FocusMsg:
		// Coming back to the terminal is treated like a browser tab becoming visible.
		if m.board.Snapshot().Selected() {
			slog.Debug("focus regained, refreshing")
			cmds = append(cmds, m.refresh())
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			cmds = append(cmds, m.cycle(1))
		case key.Matches(msg, m.keys.Prev):
			cmds = append(cmds, m.cycle(-1))
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			cmds = append(cmds, m.refresh())
		case key.Matches(msg, m.keys.Copy):
			cmds = append(cmds, m.copyRows(m.visibleRows()))
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.ViewDown()
		default:
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			m.viewport.GotoTop()
		}

	case refreshDoneMsg:
		switch {
		case msg.err == nil:
			m.status = ""
		case errors.Is(msg.err, tickets.ErrSuperseded):
		default:
			m.status = textRed("ERROR") + " " + msg.err.Error()
		}

	case copiedMsg:
		if msg.err != nil {
			m.status = textRed("ERROR") + " couldn't copy rows to clipboard"
		} else {
			m.status = textGreen("COPIED") + fmt.Sprintf(" %d tickets", msg.rows)
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.snapshot = m.board.Snapshot()
	if m.ready {
		m.viewport.SetContent(m.listView())
	}

	return m, tea.Batch(cmds...)
}

const chromeHeight = 9

func (m *Model) resizeViewport() {
	h := max(m.height-chromeHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = h
	}
	m.viewport.SetContent(m.listView())
}

func (m *Model) listView() string {
	if text, ok := m.snapshot.EmptyText(); ok {
		return emptyStyle.Render(text)
	}

	return renderRows(m.visibleRows(), m.width)
}

func (m *Model) statusLine() string {
	switch {
	case m.snapshot.State == tickets.Fetching:
		return " Atualizando" + m.spinner.View()
	case m.status != "":
		return " " + m.status
	case !m.snapshot.UpdatedAt.IsZero():
		return faintStyle.Render(fmt.Sprintf(" %d tickets • atualizado às %s",
			len(m.snapshot.Rows), m.snapshot.UpdatedAt.Format("15:04:05")))
	default:
		return ""
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return m.spinner.View()
	}

	views := []string{
		titleBar("Tickets", m.width),
		menuBar(m.collaborators, m.selected, m.width),
		" " + m.search.View(),
		renderHeader(m.width),
		m.viewport.View(),
		m.statusLine(),
		appFooter(m.width),
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...)
}
