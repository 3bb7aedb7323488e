package cmd

import (
	"context"
	"fmt"

	"storelisting/core/config"
	"storelisting/core/database"
	"storelisting/core/logger"
	"storelisting/core/reconcile"
	"storelisting/core/storage"
	"storelisting/core/transport"
	"storelisting/feature/appstore"
	"storelisting/feature/journal"
	"storelisting/feature/play"

	"go.uber.org/zap"
)

// runtime holds what every command needs once configuration is loaded.
// journal and archive are nil when disabled.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	journal *journal.Repository
	archive *storage.Archive
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: l}

	if cfg.Journal.Enabled {
		if rt.journal, err = openJournal(ctx, cfg.Journal, l); err != nil {
			return nil, err
		}
	}

	if cfg.Storage.Enabled {
		if rt.archive, err = openArchive(ctx, cfg.Storage); err != nil {
			return nil, err
		}
	}

	return rt, nil
}

func openJournal(ctx context.Context, cfg journal.Config, l *zap.Logger) (*journal.Repository, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	repo := journal.NewRepository(db, l)
	if cfg.AutoMigrate {
		err = repo.Migrate(ctx)
	} else {
		err = repo.Check(ctx)
	}
	if err != nil {
		return nil, err
	}
	l.Debug("Journal ready", zap.String("driver", cfg.Database.Driver))
	return repo, nil
}

func openArchive(ctx context.Context, cfg storage.Config) (*storage.Archive, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	archive := storage.NewArchive(client, cfg.Bucket)
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

// recorder returns the journal as a RunRecorder, or a nil interface when the
// journal is disabled.
func (rt *runtime) recorder() reconcile.RunRecorder {
	if rt.journal == nil {
		return nil
	}
	return rt.journal
}

func (rt *runtime) requireArchive() (*storage.Archive, error) {
	if rt.archive == nil {
		return nil, fmt.Errorf("snapshot archive is disabled (set STORAGE_ENABLED=true)")
	}
	return rt.archive, nil
}

// appStoreService returns nil without error when no credentials are configured.
func (rt *runtime) appStoreService() (*appstore.Service, error) {
	cfg := rt.cfg.AppStore
	if !cfg.IsConfigured() {
		return nil, nil
	}
	ts, err := appstore.NewTokenSource(cfg)
	if err != nil {
		return nil, err
	}
	client := appstore.NewClient(cfg.BaseURL, &transport.TokenAuth{Source: ts},
		transport.WithConfig(cfg.Transport),
		transport.WithLogger(rt.log),
	)
	return appstore.NewService(appstore.NewAPI(client, cfg.Platform), rt.cfg.Limits.AppStore, rt.recorder(), rt.log), nil
}

// playService returns nil without error when no credentials are configured.
func (rt *runtime) playService(ctx context.Context) (*play.Service, error) {
	cfg := rt.cfg.Play
	if !cfg.IsConfigured() {
		return nil, nil
	}
	ts, err := play.NewTokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := play.NewClient(cfg.BaseURL, &transport.TokenAuth{Source: ts},
		transport.WithConfig(cfg.Transport),
		transport.WithLogger(rt.log),
	)
	return play.NewService(play.NewAPI(client), rt.cfg.Limits.Play, rt.recorder(), rt.log), nil
}
