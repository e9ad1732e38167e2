package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
)

var errBoom = errors.New("boom")

// fakeSource serves a fixed commit list and per-commit changes keyed by commit id.
type fakeSource struct {
	mu       sync.Mutex
	commits  []models.Commit
	changes  map[string][]models.ChangeEntry
	listErr  error
	lookErr  map[string]error // keyed by folder path
	lookups  []string
	block    chan struct{} // when set, ListNewCommits waits on it or ctx
	listHook func(ctx context.Context)
	// lookupHook runs before each folder lookup, outside the lock.
	lookupHook func(ctx context.Context, commitID string)

	listCalls atomic.Int32
}

func (f *fakeSource) ListNewCommits(ctx context.Context, _, _, _ string) ([]models.Commit, error) {
	f.listCalls.Add(1)
	if f.listHook != nil {
		f.listHook(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Commit(nil), f.commits...), nil
}

func (f *fakeSource) GetCommitFolderChanges(ctx context.Context, folderPath, commitID string) ([]models.ChangeEntry, error) {
	if f.lookupHook != nil {
		f.lookupHook(ctx, commitID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, folderPath)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.lookErr[folderPath]; err != nil {
		return nil, err
	}
	return f.changes[commitID], nil
}

func (f *fakeSource) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

type sentCommit struct {
	folder   string
	commitID string
}

type fakeNotifier struct {
	mu            sync.Mutex
	sent          []sentCommit
	permissionErr error
	notifyErr     error
	permissionAsk int
	soundEnabled  bool
	soundID       string
	onNotify      func()
}

func (f *fakeNotifier) EnsurePermission(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissionAsk++
	return f.permissionErr
}

func (f *fakeNotifier) Notify(_ context.Context, folder string, commit models.Commit) error {
	f.mu.Lock()
	if f.notifyErr != nil {
		f.mu.Unlock()
		return f.notifyErr
	}
	f.sent = append(f.sent, sentCommit{folder: folder, commitID: commit.ID})
	hook := f.onNotify
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeNotifier) ApplySoundSettings(enabled bool, soundID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.soundEnabled = enabled
	f.soundID = soundID
}

func (f *fakeNotifier) notifications() []sentCommit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentCommit(nil), f.sent...)
}

type memLedger struct {
	mu  sync.Mutex
	ids map[string]bool
	err error
}

func newMemLedger(ids ...string) *memLedger {
	l := &memLedger{ids: make(map[string]bool)}
	for _, id := range ids {
		l.ids[id] = true
	}
	return l
}

func (l *memLedger) IsNotified(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ids[id]
}

func (l *memLedger) Add(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.ids[id] = true
	return nil
}

type savedConfigs struct {
	mu    sync.Mutex
	saved []models.MonitorConfiguration
	err   error
}

func (s *savedConfigs) Save(_ context.Context, cfg models.MonitorConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, cfg)
	return nil
}

type recordedCycle struct {
	id     string
	status models.CycleStatus
	report models.CycleReport
	errMsg string
}

type fakeRecorder struct {
	mu       sync.Mutex
	started  []string
	finished []recordedCycle
}

func (r *fakeRecorder) RecordCycleStart(_ context.Context, id string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, id)
	return nil
}

func (r *fakeRecorder) UpdateCycleCompletion(_ context.Context, id string, _ time.Time, status models.CycleStatus, report models.CycleReport, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, recordedCycle{id: id, status: status, report: report, errMsg: errMsg})
	return nil
}

func (r *fakeRecorder) completions() []recordedCycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedCycle(nil), r.finished...)
}

// manualClock only moves when told to.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func commit(id, author, msg string) models.Commit {
	return models.Commit{ID: id, Author: author, Message: msg, Date: 1714554000}
}

func modified(files ...string) []models.ChangeEntry {
	out := make([]models.ChangeEntry, 0, len(files))
	for _, f := range files {
		out = append(out, models.ChangeEntry{File: f, Status: models.ChangeStatusModified})
	}
	return out
}
