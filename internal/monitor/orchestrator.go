package monitor

import (
	"context"

	"github.com/aleister1102/commitsentry/internal/common/batchprocessor"
	"github.com/aleister1102/commitsentry/internal/common/contextutils"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

// AllFoldersLabel names the target in all-folders mode when no folder is monitored.
const AllFoldersLabel = "all folders"

// BatchOrchestrator walks the fetched commits in small sequential batches and
// notifies each commit at most once, for the first relevant folder.
type BatchOrchestrator struct {
	resolver  *RelevanceResolver
	notifier  Notifier
	ledger    Ledger
	processor *batchprocessor.BatchProcessor[models.Commit]
	logger    zerolog.Logger
}

func NewBatchOrchestrator(resolver *RelevanceResolver, notifier Notifier, ledger Ledger, batchCfg batchprocessor.BatchProcessorConfig, logger zerolog.Logger) *BatchOrchestrator {
	return &BatchOrchestrator{
		resolver:  resolver,
		notifier:  notifier,
		ledger:    ledger,
		processor: batchprocessor.NewBatchProcessor[models.Commit](batchCfg, logger),
		logger:    logger.With().Str("component", "BatchOrchestrator").Logger(),
	}
}

// Process notifies relevant commits and returns how many were notified. On
// cancellation it stops at the next check and returns the context error;
// notifications already sent stay recorded.
func (o *BatchOrchestrator) Process(ctx context.Context, commits []models.Commit, folders []string, allFolders bool) (int, error) {
	targets := folders
	if allFolders && len(targets) == 0 {
		targets = []string{AllFoldersLabel}
	}
	if len(commits) == 0 || len(targets) == 0 {
		return 0, nil
	}

	notified := 0
	_, err := o.processor.ProcessBatches(ctx, commits, func(ctx context.Context, batch []models.Commit, _ int) error {
		for _, commit := range batch {
			if res := contextutils.CheckCancellationWithLog(ctx, o.logger, "commit"); res.Cancelled {
				return res.Error
			}
			ok, err := o.processCommit(ctx, commit, targets, allFolders)
			if err != nil {
				return err
			}
			if ok {
				notified++
			}
		}
		return nil
	})
	return notified, err
}

// processCommit returns true when commit was notified. Only cancellation is
// returned as an error.
func (o *BatchOrchestrator) processCommit(ctx context.Context, commit models.Commit, folders []string, allFolders bool) (bool, error) {
	for _, folder := range folders {
		if res := contextutils.CheckCancellationWithLog(ctx, o.logger, "folder"); res.Cancelled {
			return false, res.Error
		}

		relevant, _ := o.resolver.IsRelevant(ctx, commit, folder, allFolders)
		// the lookup may have been the suspension point a newer cycle cancelled
		if res := contextutils.CheckCancellationWithLog(ctx, o.logger, "relevance_lookup"); res.Cancelled {
			return false, res.Error
		}
		if !relevant {
			continue
		}

		if err := o.notifier.Notify(ctx, folder, commit); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			o.logger.Warn().Err(err).Str("commit", commit.ShortID()).Msg("Notification failed, commit will be retried")
			return false, nil
		}

		// the notification is out; record it even if the cycle is cancelled meanwhile
		if err := o.ledger.Add(context.WithoutCancel(ctx), commit.ID); err != nil {
			o.logger.Error().Err(err).Str("commit", commit.ShortID()).Msg("Failed to record notified commit")
		}
		return true, nil
	}
	return false, nil
}
