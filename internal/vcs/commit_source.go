package vcs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

// maxLoggedCommits bounds a single git log invocation.
const maxLoggedCommits = 500

// GitCommitSourceOptions configures a GitCommitSource.
type GitCommitSourceOptions struct {
	Runner      GitRunner // ExecGitRunner when nil
	Store       models.KeyValueStore
	FetchRemote bool
	Lookback    time.Duration
	Now         func() time.Time
	Logger      zerolog.Logger
}

// GitCommitSource implements models.CommitSource on top of the git CLI.
//
// A commit is "new" when its committer date is not older than the moment the
// ref was first watched (remembered in the store) and falls within the lookback
// window. Commits are returned oldest first.
type GitCommitSource struct {
	runner      GitRunner
	store       models.KeyValueStore
	fetchRemote bool
	lookback    time.Duration
	now         func() time.Time
	logger      zerolog.Logger

	mu         sync.Mutex
	remoteURLs map[string]string
}

func NewGitCommitSource(opts GitCommitSourceOptions) *GitCommitSource {
	if opts.Runner == nil {
		opts.Runner = ExecGitRunner
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lookback <= 0 {
		opts.Lookback = 24 * time.Hour
	}
	return &GitCommitSource{
		runner:      opts.Runner,
		store:       opts.Store,
		fetchRemote: opts.FetchRemote,
		lookback:    opts.Lookback,
		now:         opts.Now,
		logger:      opts.Logger.With().Str("component", "GitCommitSource").Logger(),
		remoteURLs:  make(map[string]string),
	}
}

// ListNewCommits implements models.CommitSource.
func (s *GitCommitSource) ListNewCommits(ctx context.Context, repoPath, remote, branch string) ([]models.Commit, error) {
	if s.fetchRemote && remote != "" {
		if _, err := s.runner(ctx, repoPath, "fetch", "--quiet", remote, branch); err != nil {
			return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to fetch %s/%s", remote, branch))
		}
	}

	ref := branch
	if remote != "" {
		ref = "refs/remotes/" + remote + "/" + branch
	}
	if _, err := s.runner(ctx, repoPath, "rev-parse", "--verify", "--quiet", ref); err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("unknown ref %s", ref))
	}

	since, err := s.windowStart(ctx, repoPath, ref)
	if err != nil {
		return nil, err
	}

	out, err := s.runner(ctx, repoPath, "log", "--reverse", "--no-color",
		"--max-count="+strconv.Itoa(maxLoggedCommits),
		"--since="+since.UTC().Format(time.RFC3339),
		logFormat, ref)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to list commits")
	}

	commits, err := parseLog(out, s.remoteURL(ctx, repoPath, remote))
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("ref", ref).
		Time("since", since).
		Int("commits", len(commits)).
		Msg("Listed commits")
	return commits, nil
}

// GetCommitFolderChanges implements models.CommitSource. The lookup runs inside
// folderPath and is restricted to it, so a missing folder is an error.
func (s *GitCommitSource) GetCommitFolderChanges(ctx context.Context, folderPath, commitID string) ([]models.ChangeEntry, error) {
	out, err := s.runner(ctx, folderPath, "show", "--name-status", "--format=", "--no-color",
		"--diff-merges=first-parent", commitID, "--", ".")
	if err != nil {
		return nil, err
	}
	return parseNameStatus(out), nil
}

// windowStart returns max(first time the ref was watched, now - lookback),
// recording the first-watched time when absent.
func (s *GitCommitSource) windowStart(ctx context.Context, repoPath, ref string) (time.Time, error) {
	now := s.now()
	floor := now.Add(-s.lookback)
	if s.store == nil {
		return floor, nil
	}

	key := baselineKey(repoPath, ref)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		if err := s.store.Set(ctx, key, strconv.FormatInt(now.Unix(), 10)); err != nil {
			return time.Time{}, err
		}
		s.logger.Info().Str("ref", ref).Msg("Started watching ref")
		return now, nil
	}

	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("key", key).Str("value", raw).Msg("Ignoring unreadable baseline")
		return floor, nil
	}
	if baseline := time.Unix(secs, 0); baseline.After(floor) {
		return baseline, nil
	}
	return floor, nil
}

func (s *GitCommitSource) remoteURL(ctx context.Context, repoPath, remote string) string {
	if remote == "" {
		return ""
	}
	cacheKey := repoPath + "\x00" + remote

	s.mu.Lock()
	url, ok := s.remoteURLs[cacheKey]
	s.mu.Unlock()
	if ok {
		return url
	}

	out, err := s.runner(ctx, repoPath, "remote", "get-url", remote)
	if err != nil {
		s.logger.Debug().Err(err).Str("remote", remote).Msg("Remote URL unavailable")
		return ""
	}
	url = strings.TrimSpace(out)

	s.mu.Lock()
	s.remoteURLs[cacheKey] = url
	s.mu.Unlock()
	return url
}

func baselineKey(repoPath, ref string) string {
	return "git-baseline:" + repoPath + ":" + ref
}
