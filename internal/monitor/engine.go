package monitor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/batchprocessor"
	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrCycleSkipped is returned by RunCycle when the spacing guard rejected the trigger.
var ErrCycleSkipped = errors.New("check skipped: previous cycle started too recently")

// ErrEngineStopping is returned by RunCycle while Stop waits for running cycles.
var ErrEngineStopping = errors.New("engine is stopping")

// RepositoryTarget identifies what the engine watches.
type RepositoryTarget struct {
	RepoPath       string
	Remote         string
	Branch         string
	FolderBasePath string
}

// EngineOptions wires an Engine. Source, Notifier and Ledger are required.
type EngineOptions struct {
	Source      models.CommitSource
	Notifier    Notifier
	Ledger      Ledger
	ConfigStore ConfigurationSaver // optional
	History     CycleRecorder      // optional

	// Configuration is what UpdateConfiguration applies to before Start is
	// called; the default configuration when nil.
	Configuration *models.MonitorConfiguration

	Repository         RepositoryTarget
	FetchTimeout       time.Duration
	MaxCommitsPerCycle int
	Batch              batchprocessor.BatchProcessorConfig
	MatchMode          MatchMode

	Now        func() time.Time
	NewCycleID func() string
	Logger     zerolog.Logger
}

// Engine owns the schedule, the active cycle and the status shown to the UI.
type Engine struct {
	repo         RepositoryTarget
	notifier     Notifier
	configStore  ConfigurationSaver
	history      CycleRecorder
	fetcher      *Fetcher
	orchestrator *BatchOrchestrator
	now          func() time.Time
	newCycleID   func() string
	logger       zerolog.Logger

	rootCtx    context.Context
	rootCancel context.CancelFunc
	cycles     sync.WaitGroup

	// lifecycleMu serialises Start, Stop and UpdateConfiguration; it is never
	// held while mu is wanted by a running cycle.
	lifecycleMu sync.Mutex
	scheduler   *Scheduler
	started     bool

	mu             sync.Mutex
	cfg            models.MonitorConfiguration
	status         models.EngineStatus
	active         *CheckCycle
	lastCycleStart time.Time
	hasRun         bool
	stopping       bool
}

func NewEngine(opts EngineOptions) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewCycleID == nil {
		opts.NewCycleID = func() string { return uuid.New().String() }
	}
	if opts.Batch.BatchSize == 0 && opts.Batch.BatchDelay == 0 {
		opts.Batch = batchprocessor.DefaultBatchProcessorConfig()
	}

	logger := opts.Logger.With().Str("component", "Engine").Logger()
	resolver := NewRelevanceResolver(opts.Source, opts.Repository.RepoPath, opts.Repository.FolderBasePath, opts.MatchMode, opts.Logger)
	rootCtx, rootCancel := context.WithCancel(context.Background())
	cfg := models.DefaultMonitorConfiguration()
	if opts.Configuration != nil {
		cfg, _ = opts.Configuration.Normalize()
	}

	return &Engine{
		repo:         opts.Repository,
		notifier:     opts.Notifier,
		configStore:  opts.ConfigStore,
		history:      opts.History,
		fetcher:      NewFetcher(opts.Source, opts.Ledger, opts.FetchTimeout, opts.MaxCommitsPerCycle, opts.Logger),
		orchestrator: NewBatchOrchestrator(resolver, opts.Notifier, opts.Ledger, opts.Batch, opts.Logger),
		now:          opts.Now,
		newCycleID:   opts.NewCycleID,
		logger:       logger,
		rootCtx:      rootCtx,
		rootCancel:   rootCancel,
		cfg:          cfg,
		status:       models.EngineStatus{State: models.EngineStateInitializing},
	}
}

// Start applies cfg and, when monitoring is enabled, begins ticking with the
// first tick fired immediately.
func (e *Engine) Start(cfg models.MonitorConfiguration) {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	cfg = e.normalize(cfg)
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
	e.notifier.ApplySoundSettings(cfg.SoundEnabled, cfg.SelectedSound)

	e.started = true
	e.rescheduleLocked(cfg)
	e.logger.Info().
		Bool("enabled", cfg.Enabled).
		Int("interval_minutes", cfg.CheckIntervalMinutes).
		Strs("folders", cfg.MonitoredFolders).
		Bool("all_folders", cfg.NotifyForAllFolders).
		Msg("Engine started")
}

// Stop clears the schedule, cancels the active cycle and waits for cycle
// goroutines to return.
func (e *Engine) Stop() {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	if e.scheduler != nil {
		e.scheduler.Stop()
		e.scheduler = nil
	}
	e.started = false

	e.mu.Lock()
	e.stopping = true
	if e.active != nil {
		e.active.Cancel()
	}
	e.mu.Unlock()

	e.cycles.Wait()

	e.mu.Lock()
	e.stopping = false
	e.mu.Unlock()
	e.logger.Info().Msg("Engine stopped")
}

// Close stops the engine for good; later triggers are cancelled immediately.
func (e *Engine) Close() {
	e.Stop()
	e.rootCancel()
}

// TriggerCheckNow requests a cycle outside the schedule. It goes through the
// same spacing guard as scheduled ticks.
func (e *Engine) TriggerCheckNow() {
	_, _ = e.startCycle()
}

// RunCycle triggers a cycle and waits for it, returning its report. A trigger
// rejected by the spacing guard yields ErrCycleSkipped.
func (e *Engine) RunCycle(ctx context.Context) (models.CycleReport, error) {
	cycle, err := e.startCycle()
	if err != nil {
		return models.CycleReport{}, err
	}

	select {
	case <-cycle.Done():
	case <-ctx.Done():
		cycle.Cancel()
		<-cycle.Done()
	}
	_, report, err := cycle.Result()
	return report, err
}

// GetStatus returns the coarse engine status.
func (e *Engine) GetStatus() models.EngineStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Configuration returns a copy of the active configuration.
func (e *Engine) Configuration() models.MonitorConfiguration {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.cfg
	cfg.MonitoredFolders = slices.Clone(e.cfg.MonitoredFolders)
	return cfg
}

// UpdateConfiguration merges partial into the active configuration, persists it
// and reschedules when the enabled flag or the interval changed.
func (e *Engine) UpdateConfiguration(ctx context.Context, partial models.PartialMonitorConfiguration) (models.MonitorConfiguration, error) {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	prev := e.Configuration()
	next := e.normalize(prev.Apply(partial))
	if !models.IsKnownSound(next.SelectedSound) {
		return prev, errorwrapper.NewValidationError("selected_sound", next.SelectedSound, "unknown sound")
	}

	if e.configStore != nil {
		if err := e.configStore.Save(ctx, next); err != nil {
			return prev, errorwrapper.WrapError(err, "failed to persist monitor configuration")
		}
	}

	e.mu.Lock()
	e.cfg = next
	e.mu.Unlock()
	e.notifier.ApplySoundSettings(next.SoundEnabled, next.SelectedSound)

	if e.started && (prev.Enabled != next.Enabled || prev.CheckIntervalMinutes != next.CheckIntervalMinutes) {
		e.rescheduleLocked(next)
	}

	e.logger.Info().
		Bool("enabled", next.Enabled).
		Int("interval_minutes", next.CheckIntervalMinutes).
		Strs("folders", next.MonitoredFolders).
		Msg("Configuration updated")
	return next, nil
}

func (e *Engine) normalize(cfg models.MonitorConfiguration) models.MonitorConfiguration {
	cfg, clamped := cfg.Normalize()
	if clamped {
		e.logger.Warn().
			Int("interval_minutes", cfg.CheckIntervalMinutes).
			Msg("Interval must be at least 1 minute, clamped")
	}
	return cfg
}

// rescheduleLocked replaces the scheduler; lifecycleMu must be held.
func (e *Engine) rescheduleLocked(cfg models.MonitorConfiguration) {
	if e.scheduler != nil {
		e.scheduler.Stop()
		e.scheduler = nil
	}

	if !cfg.Enabled {
		e.mu.Lock()
		if e.active != nil {
			e.active.Cancel()
		}
		e.mu.Unlock()
		return
	}

	interval := time.Duration(cfg.CheckIntervalMinutes) * time.Minute
	e.scheduler = NewScheduler(interval, e.TriggerCheckNow, e.logger)
	e.scheduler.Start()
}

// startCycle applies the spacing guard, supersedes the active cycle and
// launches a new one. A dropped trigger yields ErrCycleSkipped, or
// ErrEngineStopping while Stop waits for cycles to return.
func (e *Engine) startCycle() (*CheckCycle, error) {
	e.mu.Lock()
	if e.stopping {
		e.mu.Unlock()
		e.logger.Debug().Msg("Engine stopping, trigger dropped")
		return nil, ErrEngineStopping
	}
	now := e.now()
	minGap := time.Duration(e.cfg.CheckIntervalMinutes) * time.Minute / 2
	if sinceLast := now.Sub(e.lastCycleStart); e.hasRun && sinceLast < minGap {
		e.mu.Unlock()
		e.logger.Debug().
			Dur("since_last", sinceLast).
			Dur("min_gap", minGap).
			Msg("Trigger too close to previous cycle, skipped")
		return nil, ErrCycleSkipped
	}

	if e.active != nil {
		e.active.Cancel()
		e.logger.Debug().Str("cycle_id", e.active.ID).Msg("Superseding active cycle")
	}

	cycle := newCheckCycle(e.rootCtx, e.newCycleID(), now)
	e.active = cycle
	e.lastCycleStart = now
	e.hasRun = true
	cfg := e.cfg
	cfg.MonitoredFolders = slices.Clone(e.cfg.MonitoredFolders)
	e.cycles.Add(1)
	e.mu.Unlock()

	go e.runCycle(cycle, cfg)
	return cycle, nil
}

func (e *Engine) runCycle(cycle *CheckCycle, cfg models.MonitorConfiguration) {
	defer e.cycles.Done()

	logger := e.logger.With().Str("cycle_id", cycle.ID).Logger()
	cycle.setStatus(models.CycleStatusRunning)
	e.recordStart(cycle, logger)

	report, err := e.execute(cycle.ctx, cfg, logger)
	status := e.conclude(cycle, err, logger)

	e.recordCompletion(cycle, status, report, err, logger)
	cycle.finish(status, report, err)
}

// execute is the fetch, filter and batch pipeline of one cycle.
func (e *Engine) execute(ctx context.Context, cfg models.MonitorConfiguration, logger zerolog.Logger) (models.CycleReport, error) {
	var report models.CycleReport

	if !cfg.HasTargets() {
		logger.Debug().Msg("No monitored folders, nothing to check")
		return report, nil
	}

	if err := e.notifier.EnsurePermission(ctx); err != nil {
		return report, err
	}

	fetched, err := e.fetcher.FetchNewCommits(ctx, e.repo.RepoPath, e.repo.Remote, e.repo.Branch)
	if err != nil {
		return report, err
	}
	report.Fetched = fetched.Fetched
	report.Candidates = len(fetched.Commits)
	report.Deferred = fetched.Deferred

	if len(fetched.Commits) == 0 {
		logger.Debug().Int("fetched", fetched.Fetched).Msg("No new commits")
		return report, nil
	}

	notified, err := e.orchestrator.Process(ctx, fetched.Commits, cfg.MonitoredFolders, cfg.NotifyForAllFolders)
	report.Notified = notified
	return report, err
}

// conclude maps the pipeline outcome to a cycle status and updates the engine
// status. Cancellation leaves the engine status alone; permission refusal is silent.
func (e *Engine) conclude(cycle *CheckCycle, err error, logger zerolog.Logger) models.CycleStatus {
	var status models.CycleStatus
	var engineStatus *models.EngineStatus

	switch {
	case err == nil:
		status = models.CycleStatusIdle
		engineStatus = &models.EngineStatus{State: models.EngineStateIdle}
		logger.Info().Msg("Cycle completed")

	case errors.Is(err, context.Canceled):
		status = models.CycleStatusCancelled
		logger.Info().Msg("Cycle cancelled")

	case errors.Is(err, errorwrapper.ErrPermissionDenied):
		status = models.CycleStatusSkipped
		engineStatus = &models.EngineStatus{State: models.EngineStateIdle}
		logger.Info().Msg("Notification permission not granted, cycle skipped")

	default:
		status = models.CycleStatusFailed
		engineStatus = &models.EngineStatus{State: models.EngineStateFailed, Message: err.Error()}
		logger.Error().Err(err).Msg("Cycle failed")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// a superseded cycle must not overwrite what its successor reports
	if e.active == cycle {
		if engineStatus != nil {
			e.status = *engineStatus
		}
		e.active = nil
	}
	return status
}

func (e *Engine) recordStart(cycle *CheckCycle, logger zerolog.Logger) {
	if e.history == nil {
		return
	}
	if err := e.history.RecordCycleStart(context.WithoutCancel(cycle.ctx), cycle.ID, cycle.StartedAt); err != nil {
		logger.Warn().Err(err).Msg("Failed to record cycle start")
	}
}

func (e *Engine) recordCompletion(cycle *CheckCycle, status models.CycleStatus, report models.CycleReport, cycleErr error, logger zerolog.Logger) {
	if e.history == nil {
		return
	}
	msg := ""
	if cycleErr != nil && status != models.CycleStatusCancelled {
		msg = cycleErr.Error()
	}
	if err := e.history.UpdateCycleCompletion(context.WithoutCancel(cycle.ctx), cycle.ID, e.now(), status, report, msg); err != nil {
		logger.Warn().Err(err).Msg("Failed to record cycle completion")
	}
}

// StatusString renders the status for logs and the CLI.
func StatusString(s models.EngineStatus) string {
	if s.State == models.EngineStateFailed && s.Message != "" {
		return fmt.Sprintf("%s: %s", s.State, s.Message)
	}
	return string(s.State)
}
