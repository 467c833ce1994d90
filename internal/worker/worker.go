package worker

import (
	"context"
	"fmt"
	"log/slog"
	"veriweb/internal/analyzer"
	"veriweb/internal/config"
	"veriweb/pkg/logger"
	"veriweb/pkg/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configure the background job runtime.
type Options struct {
	// MaxWorkers caps how many jobs may run concurrently in the default queue.
	MaxWorkers int
	// MaxAttempts is the number of processing attempts before pending analyses
	// are marked failed.
	MaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers:  cfg.Analyzer.MaxWorkers,
		MaxAttempts: cfg.Analyzer.MaxAttempts,
	}
}

// Start registers the URL analyzer worker and starts the River client on the
// given pgx pool. The returned client should be stopped by the caller during
// shutdown.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	st storage.Storage,
	options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewURLAnalyzerWorker(st, options.MaxAttempts))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: options.MaxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

// compile-time check that the worker handles analyzer job args
var _ river.Worker[analyzer.JobArgs] = (*URLAnalyzerWorker)(nil)
