package tickets

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

type State string

const (
	Idle     State = "idle"
	Fetching State = "fetching"
)

// Snapshot is a read-only view of the board at one point in time.
type Snapshot struct {
	CollaboratorId string
	Rows           []Row
	State          State
	Err            error
	UpdatedAt      time.Time
}

// Selected reports whether a collaborator is selected.
func (s Snapshot) Selected() bool {
	return s.CollaboratorId != ""
}

// Loaded reports whether a refresh has finished, successfully or not, since
// the collaborator was selected.
func (s Snapshot) Loaded() bool {
	return !s.UpdatedAt.IsZero() || s.Err != nil
}

// Board owns the row collection for the selected collaborator. Rows are only
// ever replaced wholesale by the most recent refresh.
type Board struct {
	mu             sync.Mutex
	source         Source
	collaboratorId string
	rows           []Row
	err            error
	updatedAt      time.Time

	// token is bumped by every refresh and selection; a refresh may only
	// commit if the token it started with is still current.
	token    uint64
	inFlight int

	now func() time.Time
}

func NewBoard(source Source, collaboratorId string) *Board {
	return &Board{
		source:         source,
		collaboratorId: collaboratorId,
		now:            time.Now,
	}
}

// Select changes the collaborator and refreshes. Selecting the current
// collaborator again is a no-op; selecting "" clears the board.
func (b *Board) Select(ctx context.Context, collaboratorId string) error {
	b.mu.Lock()
	if collaboratorId == b.collaboratorId {
		b.mu.Unlock()
		return nil
	}

	slog.Debug("collaborator selected", "from", b.collaboratorId, "to", collaboratorId)
	b.collaboratorId = collaboratorId
	b.rows = nil
	b.err = nil
	b.updatedAt = time.Time{}
	b.token++
	b.mu.Unlock()

	return b.Refresh(ctx)
}

// Refresh reloads rows for the selected collaborator. It does nothing when no
// collaborator is selected. On failure the previous rows are kept.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if b.collaboratorId == "" {
		b.mu.Unlock()
		return nil
	}

	b.token++
	token := b.token
	collaboratorId := b.collaboratorId
	b.inFlight++
	b.mu.Unlock()

	slog.Debug("refreshing tickets", "collaboratorId", collaboratorId, "token", token)
	rows, err := b.source.Load(ctx, collaboratorId)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight--

	if token != b.token {
		slog.Debug("discarding stale refresh", "collaboratorId", collaboratorId, "token", token, "current", b.token)
		return ErrSuperseded
	}

	if err != nil {
		slog.Warn("refresh failed, keeping previous rows", "collaboratorId", collaboratorId, "error", err)
		b.err = err
		return err
	}

	b.rows = Sort(rows)
	b.err = nil
	b.updatedAt = b.now()
	slog.Info("tickets refreshed", "collaboratorId", collaboratorId, "total", len(b.rows))
	return nil
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := Idle
	if b.inFlight > 0 {
		state = Fetching
	}

	return Snapshot{
		CollaboratorId: b.collaboratorId,
		Rows:           slices.Clone(b.rows),
		State:          state,
		Err:            b.err,
		UpdatedAt:      b.updatedAt,
	}
}
