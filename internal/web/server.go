package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dsrosen/zendesk-ticket-board/internal/tickets"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

type Collaborator struct {
	Name string `json:"name"`
	Id   string `json:"id"`
}

// Server is a browser front end. Each collaborator has its own Board, so a
// request only ever reads and refreshes the collaborator it asked for.
type Server struct {
	source              tickets.Source
	defaultCollaborator string
	collaborators       []Collaborator

	mu     sync.Mutex
	boards map[string]*tickets.Board
}

func NewServer(source tickets.Source, defaultCollaborator string, collaborators []Collaborator) *Server {
	return &Server{
		source:              source,
		defaultCollaborator: defaultCollaborator,
		collaborators:       collaborators,
		boards:              make(map[string]*tickets.Board),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(httprate.LimitByIP(120, time.Minute))

	r.Get("/healthz", s.health())
	r.Get("/", s.page())
	r.Post("/refresh", s.refresh())
	r.Get("/api/tickets", s.listTickets())

	return r
}

// collaboratorId is the request's collaborator param, or the default one
// when the param is absent.
func (s *Server) collaboratorId(r *http.Request) string {
	if id, ok := r.URL.Query()["collaborator"]; ok {
		return strings.TrimSpace(id[0])
	}
	return s.defaultCollaborator
}

// board returns the Board for a collaborator, creating it on first use.
func (s *Server) board(collaboratorId string) *tickets.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[collaboratorId]
	if !ok {
		slog.Debug("creating board", "collaboratorId", collaboratorId)
		b = tickets.NewBoard(s.source, collaboratorId)
		s.boards[collaboratorId] = b
	}

	return b
}

type ticketsResp struct {
	CollaboratorId string        `json:"collaboratorId"`
	State          tickets.State `json:"state"`
	Tickets        []tickets.Row `json:"tickets"`
	Cells          [][]string    `json:"cells"`
	EmptyText      string        `json:"emptyText,omitempty"`
	Error          string        `json:"error,omitempty"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing json response", "error", err)
	}
}

func (s *Server) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// page renders the board. A plain page load is a mount and refreshes; a
// search (any q param) filters the rows already loaded and only fetches when
// the board has never loaded.
func (s *Server) page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := s.board(s.collaboratorId(r))
		search := r.URL.Query().Get("q")

		if !r.URL.Query().Has("q") || !b.Snapshot().Loaded() {
			if err := b.Refresh(r.Context()); err != nil && !errors.Is(err, tickets.ErrSuperseded) {
				slog.Warn("refreshing board for page", "error", err)
			}
		}

		snap := b.Snapshot()
		data := pageData{
			Collaborators:  s.collaborators,
			CollaboratorId: snap.CollaboratorId,
			Search:         search,
			Placeholder:    tickets.SearchPlaceholder,
			Headers:        tickets.Headers,
		}

		if text, ok := snap.EmptyText(); ok {
			data.EmptyText = text
		} else {
			data.Rows = cells(tickets.Filter(snap.Rows, search))
		}

		if snap.Err != nil {
			data.Err = snap.Err.Error()
		}

		if !snap.UpdatedAt.IsZero() {
			data.UpdatedAt = snap.UpdatedAt.Format("15:04:05")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, data); err != nil {
			slog.Error("rendering board page", "error", err)
		}
	}
}

func (s *Server) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := s.board(s.collaboratorId(r))
		search := r.URL.Query().Get("q")

		if err := b.Refresh(r.Context()); err != nil && !errors.Is(err, tickets.ErrSuperseded) {
			writeJSON(w, http.StatusBadGateway, ticketsRespFor(b.Snapshot(), search))
			return
		}

		writeJSON(w, http.StatusOK, ticketsRespFor(b.Snapshot(), search))
	}
}

func (s *Server) listTickets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := s.board(s.collaboratorId(r))
		writeJSON(w, http.StatusOK, ticketsRespFor(b.Snapshot(), r.URL.Query().Get("q")))
	}
}

func cells(rows []tickets.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, tickets.Cells(row))
	}
	return out
}

func ticketsRespFor(snap tickets.Snapshot, search string) ticketsResp {
	rows := tickets.Filter(snap.Rows, search)
	resp := ticketsResp{
		CollaboratorId: snap.CollaboratorId,
		State:          snap.State,
		Tickets:        rows,
		Cells:          cells(rows),
	}

	if resp.Tickets == nil {
		resp.Tickets = []tickets.Row{}
	}

	if text, ok := snap.EmptyText(); ok {
		resp.EmptyText = text
	}

	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}

	if !snap.UpdatedAt.IsZero() {
		resp.UpdatedAt = &snap.UpdatedAt
	}

	return resp
}
