package batchprocessor

import (
	"context"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/contextutils"
	"github.com/rs/zerolog"
)

// BatchProcessorConfig holds configuration for batch processing
type BatchProcessorConfig struct {
	BatchSize  int           // Max items per batch (default: 3)
	BatchDelay time.Duration // Pause between consecutive batches (default: 300ms)
}

// DefaultBatchProcessorConfig returns default configuration
func DefaultBatchProcessorConfig() BatchProcessorConfig {
	return BatchProcessorConfig{
		BatchSize:  3,
		BatchDelay: 300 * time.Millisecond,
	}
}

// BatchResult holds the result of a batch processing
type BatchResult struct {
	BatchIndex int
	Processed  int
	Duration   time.Duration
}

// ProcessFunc handles one batch. A non-nil error stops the remaining batches.
type ProcessFunc[T any] func(ctx context.Context, batch []T, batchIndex int) error

// BatchProcessor splits input into fixed-size batches and runs them strictly one
// after another with a delay in between.
type BatchProcessor[T any] struct {
	config BatchProcessorConfig
	logger zerolog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor[T any](config BatchProcessorConfig, logger zerolog.Logger) *BatchProcessor[T] {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchProcessorConfig().BatchSize
	}
	if config.BatchDelay < 0 {
		config.BatchDelay = 0
	}
	return &BatchProcessor[T]{
		config: config,
		logger: logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// SplitIntoBatches splits input into consecutive batches, preserving order.
func (bp *BatchProcessor[T]) SplitIntoBatches(input []T) [][]T {
	if len(input) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(input)+bp.config.BatchSize-1)/bp.config.BatchSize)
	for i := 0; i < len(input); i += bp.config.BatchSize {
		end := min(i+bp.config.BatchSize, len(input))
		batches = append(batches, input[i:end])
	}
	return batches
}

// ProcessBatches runs processFunc for every batch in order. The context is checked
// before each batch and during the inter-batch delay; no delay follows the last batch.
func (bp *BatchProcessor[T]) ProcessBatches(ctx context.Context, input []T, processFunc ProcessFunc[T]) ([]BatchResult, error) {
	batches := bp.SplitIntoBatches(input)
	results := make([]BatchResult, 0, len(batches))

	for i, batch := range batches {
		if result := contextutils.CheckCancellation(ctx); result.Cancelled {
			bp.logger.Debug().
				Int("completed_batches", i).
				Int("total_batches", len(batches)).
				Msg("Batch processing interrupted by context cancellation")
			return results, result.Error
		}

		start := time.Now()
		err := processFunc(ctx, batch, i)
		results = append(results, BatchResult{
			BatchIndex: i,
			Processed:  len(batch),
			Duration:   time.Since(start),
		})
		if err != nil {
			return results, err
		}

		bp.logger.Debug().
			Int("batch_index", i).
			Int("batch_size", len(batch)).
			Int("total", len(batches)).
			Msg("Batch processed")

		if i < len(batches)-1 {
			if err := contextutils.SleepWithContext(ctx, bp.config.BatchDelay); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}
