package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
)

type sentNotification struct {
	title string
	body  string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (f *fakeSender) SendNotification(_ context.Context, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNotification{title: title, body: body})
	return nil
}

// fakeCommitSender also receives the commit behind each notification.
type fakeCommitSender struct {
	fakeSender
	commits []models.Commit
}

func (f *fakeCommitSender) SendCommitNotification(ctx context.Context, title, body string, commit models.Commit) error {
	f.mu.Lock()
	f.commits = append(f.commits, commit)
	f.mu.Unlock()
	return f.SendNotification(ctx, title, body)
}

type fakePlayer struct {
	mu     sync.Mutex
	played []string
	err    error
}

func (f *fakePlayer) PlaySound(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, id)
	return f.err
}

type fakePermission struct {
	granted    bool
	grantOnAsk bool
	askErr     error
	asked      int
}

func (f *fakePermission) IsPermissionGranted(context.Context) bool { return f.granted }

func (f *fakePermission) RequestPermission(context.Context) (bool, error) {
	f.asked++
	if f.askErr != nil {
		return false, f.askErr
	}
	f.granted = f.grantOnAsk
	return f.grantOnAsk, nil
}

// manualClock is advanced explicitly by tests.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
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

var errBoom = errors.New("boom")
