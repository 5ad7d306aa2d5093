package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/timeline/internal/config"
	"github.com/roach88/timeline/internal/store"
	"github.com/roach88/timeline/internal/tasks"
)

// session is everything a store command needs: resolved settings, the open
// database and the loaded task store.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	db     *store.SQLite
	tasks  *tasks.Store
	out    *OutputFormatter
	logger *slog.Logger
	today  time.Time
}

// newFormatter builds the output formatter for cmd from the global flags.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   opts.traceID(),
	}
}

// newLogger returns a text handler logger on w. Verbose forces debug level.
func newLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openSession loads configuration, opens the database and the task store.
// Failures are reported through the formatter and returned as ExitErrors.
// The caller must Close the session.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	out := newFormatter(cmd, opts)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail(ErrCodeConfig, err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, out.Fail(ErrCodeConfig, err)
	}
	logger := newLogger(cmd.ErrOrStderr(), level, opts.Verbose)

	window, err := cfg.Window()
	if err != nil {
		return nil, out.Fail(ErrCodeConfig, err)
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, out.Fail(ErrCodeDatabase, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	taskOpts := []tasks.Option{tasks.WithWindow(window), tasks.WithLogger(logger)}
	if opts.IDs != nil {
		taskOpts = append(taskOpts, tasks.WithIDSource(opts.IDs))
	}
	ts, err := tasks.Open(ctx, db, taskOpts...)
	if err != nil {
		db.Close()
		return nil, out.Fail(ErrCodeDatabase, err)
	}

	out.VerboseLog("database: %s (%d tasks)", cfg.Database, ts.Len())

	return &session{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		tasks:  ts,
		out:    out,
		logger: logger,
		today:  cfg.Reference(opts.now()),
	}, nil
}

// Close releases the database.
func (s *session) Close() error {
	return s.db.Close()
}

// withSession opens a session, runs fn and closes the session.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(s *session) error) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
