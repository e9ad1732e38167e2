package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultFetchTimeout       = 8 * time.Second
	DefaultMaxCommitsPerCycle = 60
)

// FetchResult holds the commits a cycle will process.
type FetchResult struct {
	Commits  []models.Commit // not yet notified, oldest first, capped
	Fetched  int             // as returned by the source
	Deferred int             // dropped by the cap, left for later cycles
}

// Fetcher asks the commit source for new commits, bounded by a timeout.
type Fetcher struct {
	source     models.CommitSource
	ledger     Ledger
	timeout    time.Duration
	maxCommits int
	logger     zerolog.Logger
}

func NewFetcher(source models.CommitSource, ledger Ledger, timeout time.Duration, maxCommits int, logger zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxCommits <= 0 {
		maxCommits = DefaultMaxCommitsPerCycle
	}
	return &Fetcher{
		source:     source,
		ledger:     ledger,
		timeout:    timeout,
		maxCommits: maxCommits,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
	}
}

type listResult struct {
	commits []models.Commit
	err     error
}

// FetchNewCommits races one source request against the timeout. A timeout yields
// ErrFetchTimeout, a source failure ErrFetch, cancellation the context error.
// Nothing from a failed request is used.
func (f *Fetcher) FetchNewCommits(ctx context.Context, repoPath, remote, branch string) (FetchResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// buffered so the goroutine never leaks when nobody is listening any more
	resultCh := make(chan listResult, 1)
	go func() {
		commits, err := f.source.ListNewCommits(callCtx, repoPath, remote, branch)
		resultCh <- listResult{commits: commits, err: err}
	}()

	var res listResult
	select {
	case <-ctx.Done():
		return FetchResult{}, ctx.Err()
	case <-callCtx.Done():
		if err := ctx.Err(); err != nil {
			return FetchResult{}, err
		}
		return FetchResult{}, fmt.Errorf("%w after %s", errorwrapper.ErrFetchTimeout, f.timeout)
	case res = <-resultCh:
	}

	if res.err != nil {
		if err := ctx.Err(); err != nil {
			return FetchResult{}, err
		}
		if callCtx.Err() != nil {
			return FetchResult{}, fmt.Errorf("%w after %s", errorwrapper.ErrFetchTimeout, f.timeout)
		}
		return FetchResult{}, fmt.Errorf("%w: %v", errorwrapper.ErrFetch, res.err)
	}

	return f.filter(res.commits), nil
}

// filter drops already notified commits and applies the per-cycle cap.
func (f *Fetcher) filter(commits []models.Commit) FetchResult {
	result := FetchResult{Fetched: len(commits)}

	fresh := make([]models.Commit, 0, len(commits))
	for _, c := range commits {
		if f.ledger.IsNotified(c.ID) {
			continue
		}
		fresh = append(fresh, c)
	}

	if len(fresh) > f.maxCommits {
		result.Deferred = len(fresh) - f.maxCommits
		fresh = fresh[:f.maxCommits]
		f.logger.Info().
			Int("deferred", result.Deferred).
			Int("max_commits", f.maxCommits).
			Msg("Commit cap reached, remaining commits deferred to later cycles")
	}

	result.Commits = fresh
	return result
}
