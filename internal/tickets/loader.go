package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dsrosen/zendesk-ticket-board/internal/zendesk"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize      = zendesk.ViewPageSize
	defaultMaxConcurrent = 10
	defaultLookupTimeout = 20 * time.Second
	storeSeparator       = " - "
)

// Source produces a complete, unsorted set of rows for a collaborator.
// Presenters and the Board only ever see rows through this interface.
type Source interface {
	Load(ctx context.Context, collaboratorId string) ([]Row, error)
}

// ViewClient is the slice of the Zendesk API the Loader needs.
type ViewClient interface {
	ExecuteView(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error)
	GetTicketInfo(ctx context.Context, ticketId int64) (*zendesk.Ticket, error)
}

type FieldIds struct {
	HoursUpgrade int64 `mapstructure:"hours_upgrade" json:"hours_upgrade"`
	HoursFix     int64 `mapstructure:"hours_fix" json:"hours_fix"`
	HoursDesign  int64 `mapstructure:"hours_design" json:"hours_design"`
	FinalDate    int64 `mapstructure:"final_date" json:"final_date"`
}

func DefaultFieldIds() FieldIds {
	return FieldIds{
		HoursUpgrade: 360023257414,
		HoursFix:     1500004574582,
		HoursDesign:  4800738993303,
		FinalDate:    360023273873,
	}
}

type LoaderOpts struct {
	Fields        FieldIds
	PageSize      int
	MaxConcurrent int
	LookupTimeout time.Duration
}

// Loader turns a Zendesk view into rows, looking up each ticket's final date.
type Loader struct {
	client ViewClient
	opts   LoaderOpts
}

func NewLoader(client ViewClient, opts LoaderOpts) *Loader {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}

	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}

	return &Loader{client: client, opts: opts}
}

// Load fails as a whole if any ticket lookup fails; partial batches are never returned.
func (l *Loader) Load(ctx context.Context, collaboratorId string) ([]Row, error) {
	view, err := l.client.ExecuteView(ctx, collaboratorId)
	if err != nil {
		return nil, fmt.Errorf("getting tickets: %w", err)
	}

	viewRows := view.Rows
	if len(viewRows) > l.opts.PageSize {
		viewRows = viewRows[:l.opts.PageSize]
	}

	users := make(map[int64]zendesk.User, len(view.Users))
	for _, u := range view.Users {
		users[u.Id] = u
	}

	rows := make([]Row, len(viewRows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.MaxConcurrent)

	for i, vr := range viewRows {
		g.Go(func() error {
			row, err := l.buildRow(gctx, vr, users)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("loading ticket rows", "collaboratorId", collaboratorId, "error", err)
		return nil, err
	}

	slog.Debug("loaded ticket rows", "collaboratorId", collaboratorId, "total", len(rows))
	return rows, nil
}

func (l *Loader) buildRow(ctx context.Context, vr zendesk.ViewRow, users map[int64]zendesk.User) (Row, error) {
	requester, ok := users[vr.RequesterId]
	if !ok {
		return Row{}, NoRequesterErr{TicketId: vr.TicketId, RequesterId: vr.RequesterId}
	}

	ctx, cancel := context.WithTimeout(ctx, l.opts.LookupTimeout)
	defer cancel()

	info, err := l.client.GetTicketInfo(ctx, vr.TicketId)
	if err != nil {
		return Row{}, fmt.Errorf("getting info for ticket %d: %w", vr.TicketId, err)
	}

	finalDate, _ := info.Field(l.opts.Fields.FinalDate)

	return Row{
		Date:      vr.DueDate,
		TicketId:  vr.TicketId,
		Hours:     selectHours(vr, l.opts.Fields),
		Store:     storeName(requester.Name),
		Subject:   vr.Subject,
		FinalDate: formatFinalDate(finalDate),
	}, nil
}

// selectHours prefers upgrade hours, then fix hours, then design hours. A
// "0" string counts as unset for the first two.
func selectHours(vr zendesk.ViewRow, ids FieldIds) string {
	for _, id := range []int64{ids.HoursUpgrade, ids.HoursFix} {
		v := vr.Field(id)
		if v.Truthy() && v.String() != "0" {
			return v.String()
		}
	}

	return vr.Field(ids.HoursDesign).String()
}

func storeName(userName string) string {
	store, _, _ := strings.Cut(userName, storeSeparator)
	return store
}

func formatFinalDate(v zendesk.FieldValue) string {
	if !v.Truthy() {
		return ""
	}
	return v.String() + finalDateSuffix
}
