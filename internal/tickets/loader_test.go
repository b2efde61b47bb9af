package tickets

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dsrosen/zendesk-ticket-board/internal/zendesk"
	"github.com/google/go-cmp/cmp"
)

type fakeViewClient struct {
	executeFn func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error)
	ticketFn  func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error)
}

func (f fakeViewClient) ExecuteView(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
	return f.executeFn(ctx, viewId)
}

func (f fakeViewClient) GetTicketInfo(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
	return f.ticketFn(ctx, ticketId)
}

func fields(kv map[int64]string) map[int64]zendesk.FieldValue {
	out := make(map[int64]zendesk.FieldValue, len(kv))
	for k, v := range kv {
		out[k] = zendesk.NewFieldValue(v)
	}
	return out
}

func ticketWithFinalDate(id int64, raw string) *zendesk.Ticket {
	return &zendesk.Ticket{
		Id: id,
		Fields: []zendesk.TicketCustomField{
			{Id: 123, Value: zendesk.NewFieldValue(`"unrelated"`)},
			{Id: DefaultFieldIds().FinalDate, Value: zendesk.NewFieldValue(raw)},
		},
	}
}

func TestLoaderLoad(t *testing.T) {
	ids := DefaultFieldIds()
	client := fakeViewClient{
		executeFn: func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
			if viewId != "900" {
				t.Errorf("unexpected view %s", viewId)
			}
			return &zendesk.ViewExecuteResp{
				Rows: []zendesk.ViewRow{
					{TicketId: 1, DueDate: "2024-01-09T00:00:00Z", RequesterId: 10, Subject: "Checkout down",
						Fields: fields(map[int64]string{ids.HoursUpgrade: `"0"`, ids.HoursFix: `"5"`, ids.HoursDesign: `"8"`})},
					{TicketId: 2, DueDate: "2024-01-08T00:00:00Z", RequesterId: 11, Subject: "New banner",
						Fields: fields(map[int64]string{ids.HoursDesign: `"3"`})},
				},
				Users: []zendesk.User{
					{Id: 10, Name: "Loja Centro - Maria"},
					{Id: 11, Name: "Loja Norte"},
				},
			}, nil
		},
		ticketFn: func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
			if ticketId == 1 {
				return ticketWithFinalDate(1, `"2024-01-10"`), nil
			}
			return ticketWithFinalDate(2, `null`), nil
		},
	}

	rows, err := NewLoader(client, LoaderOpts{Fields: ids}).Load(context.Background(), "900")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []Row{
		{Date: "2024-01-09T00:00:00Z", TicketId: 1, Hours: "5", Store: "Loja Centro", Subject: "Checkout down", FinalDate: "2024-01-10T15:00:00Z"},
		{Date: "2024-01-08T00:00:00Z", TicketId: 2, Hours: "3", Store: "Loja Norte", Subject: "New banner", FinalDate: ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderMissingRequester(t *testing.T) {
	client := fakeViewClient{
		executeFn: func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
			return &zendesk.ViewExecuteResp{
				Rows: []zendesk.ViewRow{{TicketId: 5, RequesterId: 99}},
			}, nil
		},
		ticketFn: func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
			return ticketWithFinalDate(ticketId, `null`), nil
		},
	}

	_, err := NewLoader(client, LoaderOpts{Fields: DefaultFieldIds()}).Load(context.Background(), "1")
	var noReq NoRequesterErr
	if !errors.As(err, &noReq) {
		t.Fatalf("expected NoRequesterErr, got %v", err)
	}

	if noReq.TicketId != 5 || noReq.RequesterId != 99 {
		t.Errorf("unexpected error details %+v", noReq)
	}
}

func TestLoaderDetailFailureFailsBatch(t *testing.T) {
	client := fakeViewClient{
		executeFn: func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
			return &zendesk.ViewExecuteResp{
				Rows: []zendesk.ViewRow{
					{TicketId: 1, RequesterId: 1},
					{TicketId: 2, RequesterId: 1},
				},
				Users: []zendesk.User{{Id: 1, Name: "Store"}},
			}, nil
		},
		ticketFn: func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
			if ticketId == 2 {
				return nil, &zendesk.APIError{StatusCode: 500}
			}
			return ticketWithFinalDate(ticketId, `"2024-02-01"`), nil
		},
	}

	rows, err := NewLoader(client, LoaderOpts{Fields: DefaultFieldIds()}).Load(context.Background(), "1")
	if err == nil {
		t.Fatal("expected error")
	}

	if rows != nil {
		t.Errorf("expected no rows, got %d", len(rows))
	}

	var apiErr *zendesk.APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("expected wrapped APIError, got %v", err)
	}
}

func TestLoaderCapsAndBoundsLookups(t *testing.T) {
	var viewRows []zendesk.ViewRow
	for i := 1; i <= 35; i++ {
		viewRows = append(viewRows, zendesk.ViewRow{TicketId: int64(i), RequesterId: 1, Subject: fmt.Sprintf("t%d", i)})
	}

	var active, peak, calls atomic.Int32
	client := fakeViewClient{
		executeFn: func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
			return &zendesk.ViewExecuteResp{Rows: viewRows, Users: []zendesk.User{{Id: 1, Name: "Store"}}}, nil
		},
		ticketFn: func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
			calls.Add(1)
			n := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			return ticketWithFinalDate(ticketId, `null`), nil
		},
	}

	rows, err := NewLoader(client, LoaderOpts{Fields: DefaultFieldIds(), MaxConcurrent: 3}).Load(context.Background(), "1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(rows) != 30 || calls.Load() != 30 {
		t.Errorf("got %d rows from %d lookups, want 30", len(rows), calls.Load())
	}

	if peak.Load() > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak.Load())
	}
}

func TestLoaderLookupTimeout(t *testing.T) {
	client := fakeViewClient{
		executeFn: func(ctx context.Context, viewId string) (*zendesk.ViewExecuteResp, error) {
			return &zendesk.ViewExecuteResp{
				Rows:  []zendesk.ViewRow{{TicketId: 1, RequesterId: 1}},
				Users: []zendesk.User{{Id: 1, Name: "Store"}},
			}, nil
		},
		ticketFn: func(ctx context.Context, ticketId int64) (*zendesk.Ticket, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	_, err := NewLoader(client, LoaderOpts{LookupTimeout: 10 * time.Millisecond}).Load(context.Background(), "1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSelectHours(t *testing.T) {
	ids := DefaultFieldIds()
	tests := []struct {
		name   string
		fields map[int64]string
		want   string
	}{
		{"upgrade wins", map[int64]string{ids.HoursUpgrade: `"2"`, ids.HoursFix: `"5"`, ids.HoursDesign: `"8"`}, "2"},
		{"zero upgrade falls to fix", map[int64]string{ids.HoursUpgrade: `"0"`, ids.HoursFix: `"5"`}, "5"},
		{"empty upgrade falls to fix", map[int64]string{ids.HoursUpgrade: `""`, ids.HoursFix: `"5"`}, "5"},
		{"numeric zero falls through", map[int64]string{ids.HoursUpgrade: `0`, ids.HoursFix: `0`, ids.HoursDesign: `4`}, "4"},
		{"zero fix falls to design", map[int64]string{ids.HoursFix: `"0"`, ids.HoursDesign: `"8"`}, "8"},
		{"design zero is kept", map[int64]string{ids.HoursDesign: `"0"`}, "0"},
		{"nothing set", map[int64]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectHours(zendesk.ViewRow{Fields: fields(tt.fields)}, ids)
			if got != tt.want {
				t.Errorf("selectHours() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreName(t *testing.T) {
	tests := map[string]string{
		"Loja Centro - Maria":      "Loja Centro",
		"Loja Sul - Caixa - Turno": "Loja Sul",
		"Matriz":                   "Matriz",
		"":                         "",
		"Dash-Without-Spaces":      "Dash-Without-Spaces",
	}

	for in, want := range tests {
		if got := storeName(in); got != want {
			t.Errorf("storeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatFinalDate(t *testing.T) {
	if got := formatFinalDate(zendesk.NewFieldValue(`"2024-01-10"`)); got != "2024-01-10T15:00:00Z" {
		t.Errorf("present value = %q", got)
	}

	for _, raw := range []string{``, `null`, `""`} {
		if got := formatFinalDate(zendesk.NewFieldValue(raw)); got != "" {
			t.Errorf("absent value %q = %q", raw, got)
		}
	}
}
