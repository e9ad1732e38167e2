package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/batchprocessor"
	"github.com/aleister1102/commitsentry/internal/config"
	"github.com/aleister1102/commitsentry/internal/datastore"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/aleister1102/commitsentry/internal/monitor"
	"github.com/aleister1102/commitsentry/internal/notifier"
	"github.com/aleister1102/commitsentry/internal/vcs"
	"github.com/rs/zerolog"
)

// storage groups what every command opening the database needs.
type storage struct {
	db            *datastore.DB
	kv            *datastore.KVStore
	configuration *datastore.ConfigurationStore
	history       *datastore.CycleHistory
}

func openStorage(cfg *config.GlobalConfig, logger zerolog.Logger) (*storage, error) {
	db, err := datastore.NewDB(cfg.StorageConfig.SQLiteDBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	kv := datastore.NewKVStore(db)
	return &storage{
		db:            db,
		kv:            kv,
		configuration: datastore.NewConfigurationStore(kv),
		history:       datastore.NewCycleHistory(db),
	}, nil
}

func (s *storage) Close() error {
	return s.db.Close()
}

// app is the fully wired engine with its storage and notification backend.
type app struct {
	*storage
	ledger        *datastore.NotifiedLedger
	backend       notifier.Backend
	dispatcher    *notifier.Dispatcher
	engine        *monitor.Engine
	configuration models.MonitorConfiguration
}

type appOptions struct {
	out        io.Writer
	newCycleID func() string
}

func buildApp(ctx context.Context, cfg *config.GlobalConfig, logger zerolog.Logger, opts appOptions) (*app, error) {
	st, err := openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	a, err := wireApp(ctx, st, cfg, logger, opts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

func wireApp(ctx context.Context, st *storage, cfg *config.GlobalConfig, logger zerolog.Logger, opts appOptions) (*app, error) {
	ledger, err := datastore.LoadNotifiedLedger(ctx, st.kv, datastore.DefaultLedgerCapacity, logger)
	if err != nil {
		return nil, fmt.Errorf("loading notified ledger: %w", err)
	}

	monitorCfg, err := st.configuration.LoadOrSeed(ctx, cfg.MonitorConfig.ToModel())
	if err != nil {
		return nil, fmt.Errorf("loading monitor configuration: %w", err)
	}

	backend, err := notifier.NewBackend(cfg.NotificationConfig, opts.out, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing notification backend: %w", err)
	}

	dispatcher := notifier.NewDispatcher(notifier.DispatcherOptions{
		Sender:        backend.Sender,
		Player:        backend.Player,
		Permission:    backend.Permission,
		SoundThrottle: cfg.NotificationConfig.SoundThrottle(),
		SoundEnabled:  monitorCfg.SoundEnabled,
		SelectedSound: monitorCfg.SelectedSound,
		Logger:        logger,
	})

	repo := cfg.RepositoryConfig
	source := vcs.NewGitCommitSource(vcs.GitCommitSourceOptions{
		Store:       st.kv,
		FetchRemote: repo.FetchRemote,
		Lookback:    time.Duration(repo.LookbackHours) * time.Hour,
		Logger:      logger,
	})

	engineCfg := cfg.EngineConfig
	engine := monitor.NewEngine(monitor.EngineOptions{
		Source:        source,
		Notifier:      dispatcher,
		Ledger:        ledger,
		ConfigStore:   st.configuration,
		History:       st.history,
		Configuration: &monitorCfg,
		Repository: monitor.RepositoryTarget{
			RepoPath:       repo.RepoPath,
			Remote:         repo.Remote,
			Branch:         repo.Branch,
			FolderBasePath: repo.FolderBasePath,
		},
		FetchTimeout:       engineCfg.FetchTimeout(),
		MaxCommitsPerCycle: engineCfg.MaxCommitsPerCycle,
		Batch: batchprocessor.BatchProcessorConfig{
			BatchSize:  engineCfg.BatchSize,
			BatchDelay: engineCfg.BatchDelay(),
		},
		MatchMode:  monitor.MatchMode(engineCfg.FolderMatchMode),
		NewCycleID: opts.newCycleID,
		Logger:     logger,
	})

	logger.Info().
		Str("backend", backend.Name).
		Str("repo", repo.RepoPath).
		Str("ref", repo.Remote+"/"+repo.Branch).
		Int("ledger_size", ledger.Size()).
		Msg("Engine wired")

	return &app{
		storage:       st,
		ledger:        ledger,
		backend:       backend,
		dispatcher:    dispatcher,
		engine:        engine,
		configuration: monitorCfg,
	}, nil
}

func (a *app) Close() error {
	a.engine.Close()
	return a.storage.Close()
}
