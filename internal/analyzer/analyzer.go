package analyzer

import (
	"context"
	"fmt"
	"time"
	"veriweb/internal/config"
	"veriweb/pkg/domain"
	"veriweb/pkg/serrors"
	"veriweb/pkg/storage"
)

// Options configure how analysis jobs are enqueued and how results are cached.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when processing an analysis job before marking it failed.
	MaxAttempts int
	// ResultCacheTTL is the duration during which a completed report makes new
	// analysis requests for the same URL reuse that report instead of enqueueing
	// a duplicate job.
	ResultCacheTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts:    cfg.Analyzer.MaxAttempts,
		ResultCacheTTL: cfg.Analyzer.ResultCacheTTL,
	}
}

// analyzer is the concrete implementation of the Analyzer interface.
// It coordinates persistence with the storage layer and job enqueueing.
type analyzer struct {
	// options holds runtime configuration that affects enqueueing and caching.
	options Options
	// storage is the persistence layer used to store analyses and manage jobs.
	storage storage.Storage
}

// Enqueue stores a new analysis request for the given URL and user, and
// attempts to enqueue a background job to process it. If a recent completed
// report exists for the same URL (within ResultCacheTTL), the new analysis is
// immediately marked as completed with that report.
func (a analyzer) Enqueue(ctx context.Context, userID domain.UserID, URL string) (*domain.Analysis, error) {
	var analysis *domain.Analysis
	URL, err := NormalizeURL(URL)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL")
	}

	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreAnalyses(ctx, domain.Analysis{
			UserID: userID,
			URL:    URL,
			Status: domain.AnalysisStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store analysis: %w", err)
		}
		analysis = &res[0]

		jobAdded, err := tx.AddJob(ctx, JobArgs{
			URL:             URL,
			maxAttempts:     a.options.MaxAttempts,
			uniqueJobPeriod: a.options.ResultCacheTTL,
		}, nil)
		if err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		// if a job was not added, it means that another job already exists for this URL.
		// river unique jobs prevent having duplicate jobs for the same URL.
		if !jobAdded {
			// if the existing job is already completed, we should get its report from db
			// and update the new analysis
			lastResult, err := tx.LastCompletedAnalysisByURL(ctx, URL)
			if err != nil {
				return fmt.Errorf("could not get last completed analysis: %w", err)
			}

			if lastResult != nil {
				updated, err := tx.UpdateAnalysisByID(ctx, analysis.ID, storage.AnalysisUpdates{
					Status: domain.AnalysisStatusCompleted,
					Report: &lastResult.Report,
				})
				if err != nil {
					return fmt.Errorf("could not update analysis: %w", err)
				}
				analysis = updated
			} // else: the job is in the queue and will be processed soon.
			// Job will automatically update all pending analyses by URL upon completion.
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not enqueue URL: %w", err)
	}

	return analysis, nil
}

// UserAnalyses returns a page of analyses for the given user filtered by
// status. It supports cursor-based pagination using an RFC3339 timestamp
// string and returns the next cursor when more results are available.
func (a analyzer) UserAnalyses(ctx context.Context,
	userID domain.UserID,
	status domain.AnalysisStatus,
	cursor string,
	limit uint) ([]domain.Analysis, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := a.storage.UserAnalyses(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user analyses: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Analyses, next, nil
}

// Result fetches a single analysis by ID for the given user. It returns a
// not-found error when no matching analysis exists.
func (a analyzer) Result(ctx context.Context,
	userID domain.UserID,
	analysisID domain.AnalysisID) (*domain.Analysis, error) {
	res, err := a.storage.AnalysisByID(ctx, userID, analysisID)
	if err != nil {
		return nil, fmt.Errorf("could not get analysis result: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "analysis not found")
	}

	return res, nil
}

// Delete removes an analysis belonging to the given user. If the analysis does
// not exist, a not-found error is returned. Jobs are not cancelled here because
// other pending analyses may still depend on the same URL job.
func (a analyzer) Delete(ctx context.Context, userID domain.UserID, analysisID domain.AnalysisID) error {
	res, err := a.storage.DeleteAnalysis(ctx, userID, analysisID)
	if err != nil {
		return fmt.Errorf("could not delete analysis: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "analysis not found")
	}

	// we don't delete jobs from the queue here because there might be other analyses depending on the job.
	// job worker makes sure there are still pending analyses for the URL before processing.

	return nil
}

// New creates a new Analyzer instance backed by the provided storage and
// configured with the given options.
func New(storage storage.Storage, options Options) Analyzer {
	return &analyzer{
		options: options,
		storage: storage,
	}
}
