package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
)

// CheckCycle is one run of fetch, filter, batch and notify. Exactly one cycle
// is active at a time; starting a new one cancels the previous.
type CheckCycle struct {
	ID        string
	StartedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status models.CycleStatus
	report models.CycleReport
	err    error
}

func newCheckCycle(parent context.Context, id string, startedAt time.Time) *CheckCycle {
	ctx, cancel := context.WithCancel(parent)
	return &CheckCycle{
		ID:        id,
		StartedAt: startedAt,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		status:    models.CycleStatusInitializing,
	}
}

// Cancel signals the cycle to stop at its next suspension point.
func (c *CheckCycle) Cancel() {
	c.cancel()
}

// Done is closed once the cycle reached a terminal status.
func (c *CheckCycle) Done() <-chan struct{} {
	return c.done
}

// Result returns the current status, report and error of the cycle.
func (c *CheckCycle) Result() (models.CycleStatus, models.CycleReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.report, c.err
}

func (c *CheckCycle) setStatus(status models.CycleStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *CheckCycle) finish(status models.CycleStatus, report models.CycleReport, err error) {
	c.mu.Lock()
	c.status = status
	c.report = report
	c.err = err
	c.mu.Unlock()

	c.cancel()
	close(c.done)
}
