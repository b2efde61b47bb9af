package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh/spinner"
	"github.com/dsrosen/zendesk-ticket-board/internal/tickets"
	"github.com/dsrosen/zendesk-ticket-board/internal/tui"
	"github.com/dsrosen/zendesk-ticket-board/internal/web"
	"github.com/dsrosen/zendesk-ticket-board/internal/zendesk"
)

type App struct {
	Cfg           *Config
	ZendeskClient *zendesk.Client
	Loader        *tickets.Loader

	logFile io.Closer
}

type StartOpts struct {
	Debug bool
	// Interactive lets startup prompt for missing credentials instead of failing.
	Interactive bool
}

// LoadConfig sets up logging and reads the config without validating it.
func LoadConfig(debug bool) (*Config, io.Closer, error) {
	dir, err := makeBoardDir()
	if err != nil {
		return nil, nil, fmt.Errorf("creating board directory: %w", err)
	}

	logFile := newLogWriter(filepath.Join(dir, "board.log"))
	setLogger(logFile, debug)

	cfg, err := InitConfig(dir)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, fmt.Errorf("initializing config: %w", err)
	}

	return cfg, logFile, nil
}

func Startup(opts StartOpts) (*App, error) {
	cfg, logFile, err := LoadConfig(opts.Debug)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		if !opts.Interactive {
			_ = logFile.Close()
			return nil, fmt.Errorf("validating config: %w", err)
		}

		if err := cfg.RunCredsForm(); err != nil {
			_ = logFile.Close()
			return nil, fmt.Errorf("prompting credentials: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			_ = logFile.Close()
			return nil, fmt.Errorf("validating config: %w", err)
		}
	}

	slog.Info("config validated")
	a := New(cfg, &http.Client{Timeout: 60 * time.Second})
	a.logFile = logFile
	return a, nil
}

func New(cfg *Config, httpClient *http.Client) *App {
	zc := zendesk.NewClient(cfg.Zendesk.Creds, httpClient)
	return &App{
		Cfg:           cfg,
		ZendeskClient: zc,
		Loader:        tickets.NewLoader(zc, cfg.LoaderOpts()),
	}
}

func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

func (a *App) TestConnection(ctx context.Context) error {
	if err := a.ZendeskClient.ConnectionTest(ctx); err != nil {
		slog.Error("zendesk api connection test", "error", err)
		return fmt.Errorf("zendesk connection test: %w", err)
	}

	slog.Info("connection test successful")
	return nil
}

// initialCollaborator picks the flag value first, then the configured default.
func (a *App) initialCollaborator(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.Cfg.DefaultCollaborator
}

func (a *App) tuiCollaborators() []tui.Collaborator {
	var out []tui.Collaborator
	for _, c := range a.Cfg.Collaborators {
		out = append(out, tui.Collaborator{Name: c.Name, Id: c.ViewId})
	}
	return out
}

func (a *App) RunTUI(ctx context.Context, collaborator string) error {
	board := tickets.NewBoard(a.Loader, a.initialCollaborator(collaborator))
	model := tui.NewModel(ctx, board, a.tuiCollaborators())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("running terminal interface", "error", err)
		return fmt.Errorf("launching terminal interface: %w", err)
	}

	return nil
}

func (a *App) Serve(ctx context.Context, addr, collaborator string) error {
	if addr == "" {
		addr = a.Cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collaborators []web.Collaborator
	for _, c := range a.Cfg.Collaborators {
		collaborators = append(collaborators, web.Collaborator{Name: c.Name, Id: c.ViewId})
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(a.Loader, a.initialCollaborator(collaborator), collaborators).Router(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("board listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			return fmt.Errorf("serving board: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down board server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}

// List loads the collaborator's tickets once and writes them as a table.
func (a *App) List(ctx context.Context, w io.Writer, collaborator, search string, quiet bool) error {
	collaborator = a.initialCollaborator(collaborator)
	if collaborator == "" {
		_, err := fmt.Fprintln(w, tickets.NoCollaboratorText)
		return err
	}

	board := tickets.NewBoard(a.Loader, collaborator)

	var refreshErr error
	refresh := func() { refreshErr = board.Refresh(ctx) }
	if quiet {
		refresh()
	} else {
		name := a.Cfg.CollaboratorByViewId(collaborator).Name
		if err := spinner.New().Title(fmt.Sprintf("Getting tickets for %s", name)).Action(refresh).Run(); err != nil {
			return fmt.Errorf("running spinner: %w", err)
		}
	}

	if refreshErr != nil {
		return fmt.Errorf("getting tickets: %w", refreshErr)
	}

	_, err := fmt.Fprintln(w, tui.RenderTable(board.Snapshot(), search))
	return err
}
