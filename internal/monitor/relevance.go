package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

// MatchMode selects how a changed file is matched against a folder.
type MatchMode string

const (
	// MatchSubstring treats a file as inside folder when its path contains the
	// folder string anywhere.
	MatchSubstring MatchMode = "substring"
	// MatchSegment requires the folder to appear as whole path segments.
	MatchSegment MatchMode = "segment"
)

// RelevanceResolver decides whether a commit touches a monitored folder.
type RelevanceResolver struct {
	source   models.CommitSource
	repoPath string
	basePath string
	mode     MatchMode
	logger   zerolog.Logger
}

func NewRelevanceResolver(source models.CommitSource, repoPath, basePath string, mode MatchMode, logger zerolog.Logger) *RelevanceResolver {
	if mode == "" {
		mode = MatchSubstring
	}
	return &RelevanceResolver{
		source:   source,
		repoPath: repoPath,
		basePath: basePath,
		mode:     mode,
		logger:   logger.With().Str("component", "RelevanceResolver").Logger(),
	}
}

// FolderPath is where the change lookup for folder runs.
func (r *RelevanceResolver) FolderPath(folder string) string {
	return filepath.Join(r.repoPath, r.basePath, folder)
}

// IsRelevant reports whether commit touches folder. In all-folders mode every
// commit is relevant and no lookup happens. A failed lookup is logged and
// reported as not relevant together with an ErrFolderLookup error; a cancelled
// context is returned as is.
func (r *RelevanceResolver) IsRelevant(ctx context.Context, commit models.Commit, folder string, allFolders bool) (bool, error) {
	if allFolders {
		return true, nil
	}

	changes, err := r.source.GetCommitFolderChanges(ctx, r.FolderPath(folder), commit.ID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		r.logger.Warn().
			Err(err).
			Str("commit", commit.ShortID()).
			Str("folder", folder).
			Msg("Folder lookup failed, treating commit as not relevant")
		return false, fmt.Errorf("%w: %s: %v", errorwrapper.ErrFolderLookup, folder, err)
	}

	for _, change := range changes {
		if matchesFolder(change.File, folder, r.mode) {
			return true, nil
		}
	}
	return false, nil
}

func matchesFolder(file, folder string, mode MatchMode) bool {
	file = filepath.ToSlash(file)
	folder = filepath.ToSlash(folder)

	if mode != MatchSegment {
		return strings.Contains(file, folder)
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		return false
	}
	return strings.Contains("/"+strings.Trim(file, "/")+"/", "/"+folder+"/")
}
