package worker

import (
	"context"
	"fmt"
	"veriweb/internal/analyzer"
	"veriweb/internal/engine"
	"veriweb/pkg/domain"
	"veriweb/pkg/logger"
	"veriweb/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// URLAnalyzerWorker is a River worker that classifies URLs with the local risk
// engine and persists the resulting report to every pending analysis for the
// URL. Because jobs are unique per URL, a single job may complete analyses
// created by multiple users.
//
// Before doing any work, the worker verifies that at least one pending
// analysis still references the job's URL. Analyses may be deleted while the
// job sits in the queue, in which case the job completes without side effects.
type URLAnalyzerWorker struct {
	river.WorkerDefaults[analyzer.JobArgs]

	// storage is used to check for pending analyses and to persist reports.
	storage storage.Storage
	// maxAttempts is forwarded to the storage layer so analyses only flip to
	// failed once the attempt budget is exhausted.
	maxAttempts int
}

// NewURLAnalyzerWorker constructs a URLAnalyzerWorker backed by the given storage.
func NewURLAnalyzerWorker(st storage.Storage, maxAttempts int) *URLAnalyzerWorker {
	return &URLAnalyzerWorker{
		storage:     st,
		maxAttempts: maxAttempts,
	}
}

// Work executes a single analysis job: it runs the risk engine on the job's
// URL and marks all pending analyses for that URL completed with the report.
// Storage errors are recorded against the pending analyses before the job is
// handed back to River for retry.
func (u *URLAnalyzerWorker) Work(ctx context.Context, job *river.Job[analyzer.JobArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("URL", job.Args.URL))

	count, err := u.storage.PendingAnalysisCountByURL(ctx, job.Args.URL)
	if err != nil {
		logger.Error(ctx, "error counting pending analyses", zap.Error(err))

		return fmt.Errorf("could not count pending analyses: %w", err)
	}

	// all analyses for this URL were deleted while the job was queued
	if count == 0 {
		logger.Info(ctx, "no pending analyses for URL, skipping")

		return nil
	}

	report := engine.Analyze(ctx, job.Args.URL)

	empty := ""
	if err := u.storage.UpdatePendingAnalysesByURL(ctx, job.Args.URL, storage.AnalysisUpdates{
		Status:    domain.AnalysisStatusCompleted,
		Report:    &report,
		LastError: &empty, // clear any error from previous attempts
	}); err != nil {
		logger.Error(ctx, "error storing analysis report", zap.Error(err))
		u.markFailed(ctx, job.Args.URL, err)

		return fmt.Errorf("could not store analysis report: %w", err)
	}

	logger.Info(ctx, "URL analyzed successfully",
		zap.Int("score", report.Score),
		zap.String("verdict", string(report.Verdict)))

	return nil
}

// markFailed records the failure on all pending analyses for the URL. The
// storage layer only flips the status to failed once attempts reach
// maxAttempts; before that the analyses stay pending so River retries can
// still complete them. Errors here are logged and swallowed: the job error
// that triggered this call is what gets returned to River.
func (u *URLAnalyzerWorker) markFailed(ctx context.Context, URL string, cause error) {
	msg := cause.Error()
	if err := u.storage.UpdatePendingAnalysesByURL(ctx, URL, storage.AnalysisUpdates{
		Status:      domain.AnalysisStatusFailed,
		LastError:   &msg,
		MaxAttempts: u.maxAttempts,
	}); err != nil {
		logger.Error(ctx, "could not record analysis failure", zap.Error(err))
	}
}
