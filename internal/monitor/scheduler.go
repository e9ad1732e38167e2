package monitor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler calls tick immediately and then once per interval until stopped.
// tick must not block for long; the engine hands the work to a cycle goroutine.
type Scheduler struct {
	interval time.Duration
	tick     func()
	logger   zerolog.Logger

	mu     sync.Mutex
	active bool
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewScheduler(interval time.Duration, tick func(), logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		logger:   logger.With().Str("component", "Scheduler").Logger(),
	}
}

// Start begins ticking. Calling Start on an active scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	if s.interval <= 0 {
		s.logger.Warn().Dur("interval", s.interval).Msg("Non-positive interval, scheduler not started")
		return
	}

	s.active = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.loop(s.stopCh, s.doneCh)

	s.logger.Info().Dur("interval", s.interval).Msg("Scheduler started")
}

// Stop halts ticking and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info().Msg("Scheduler stopped")
}

// IsActive reports whether the scheduler is ticking.
func (s *Scheduler) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Scheduler) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}
