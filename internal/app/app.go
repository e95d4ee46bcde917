// Package app wires configuration into the running components.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phravins/genstudio/internal/config"
	"github.com/phravins/genstudio/internal/history"
	"github.com/phravins/genstudio/internal/identity"
	"github.com/phravins/genstudio/internal/kv"
	"github.com/phravins/genstudio/internal/logging"
	"github.com/phravins/genstudio/internal/notify"
	"github.com/phravins/genstudio/internal/project"
	"github.com/phravins/genstudio/internal/session"
	"github.com/phravins/genstudio/internal/templates"
)

// AccountsFile holds accounts registered against the mock directory.
const AccountsFile = "accounts.json"

type Options struct {
	Notifier notify.Notifier
	Verbose  io.Writer // mirrors the log when set
	HashCost int       // bcrypt cost for the mock directory, 0 keeps the default

	// DeferInit leaves session restore to the caller, e.g. the TUI runs it
	// behind a loading screen.
	DeferInit bool
}

// App is one fully wired process.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Session  *session.Manager
	Catalog  *templates.Catalog
	Projects *project.Service
	Workdir  *project.Manager
	History  *history.Log

	closers []func() error
}

// New builds every component from cfg and, unless deferred, restores the stored session.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	logFile, err := logging.OpenFile(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	a.closers = append(a.closers, logFile.Close)
	var w io.Writer = logFile
	if opts.Verbose != nil {
		w = zerolog.MultiLevelWriter(logFile, opts.Verbose)
	}
	a.Logger = logging.New(cfg.LogLevel, cfg.LogFormat, w)

	backend, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := a.openDirectory(ctx, opts.HashCost)
	if err != nil {
		return nil, err
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewConsole(os.Stdout)
	}
	a.Session = session.NewManager(
		session.NewStore(backend, a.Logger.With().Str("component", "session_store").Logger()),
		identity.NewDelayed(dir, cfg.Identity.Latency),
		session.WithNotifier(notifier),
		session.WithLogger(a.Logger.With().Str("component", "session").Logger()),
	)

	a.Catalog = templates.Default()
	if cfg.TemplatesFile != "" {
		custom, err := templates.LoadCustom(cfg.TemplatesFile)
		if err != nil {
			return nil, err
		}
		a.Catalog.Merge(custom...)
		a.Logger.Debug().Int("count", len(custom)).Str("file", cfg.TemplatesFile).Msg("custom templates loaded")
	}

	a.History = history.New(cfg.DataDir)
	a.Workdir = project.NewManager(cfg.Workspace)
	a.Projects = project.NewService(a.Session, a.Catalog, a.Workdir, a.History, a.Logger.With().Str("component", "project").Logger())

	if !opts.DeferInit {
		a.Session.Init(ctx)
	}
	ok = true
	return a, nil
}

func (a *App) openStore(ctx context.Context) (kv.Store, error) {
	switch a.Config.Session.Backend {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "redis":
		rs, err := kv.NewRedisStore(ctx, a.Config.Session.RedisAddr, a.Config.Session.RedisDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs.Close)
		a.Logger.Debug().Str("addr", a.Config.Session.RedisAddr).Msg("using redis session store")
		return rs, nil
	default:
		return kv.NewFileStore(a.Config.DataDir)
	}
}

func (a *App) openDirectory(ctx context.Context, hashCost int) (identity.Directory, error) {
	if a.Config.Identity.Backend == "postgres" {
		pool, err := identity.NewPool(ctx, a.Config.Identity.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })

		pg := identity.NewPostgresDirectory(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		if err := pg.Seed(ctx, identity.DefaultSeeds); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		return pg, nil
	}

	opts := []identity.MockOption{identity.WithAccountsFile(filepath.Join(a.Config.DataDir, AccountsFile))}
	if hashCost > 0 {
		opts = append(opts, identity.WithHashCost(hashCost))
	}
	return identity.NewMockDirectory(identity.DefaultSeeds, opts...)
}

// Close releases connections and the log file, newest first.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
