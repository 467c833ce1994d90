package storage

import (
	"context"
	"time"
	"veriweb/pkg/domain"
)

// AnalysisUpdates describes a set of optional fields that can be applied to an
// existing analysis during an update. Only provided fields are applied.
type AnalysisUpdates struct {
	// Status is the new lifecycle status to set for the analysis.
	Status domain.AnalysisStatus
	// Report, when provided, replaces the stored report payload.
	Report *domain.Report
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the attempts after increment reach this
	// threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// UserAnalyses groups a page of analyses returned for a user together with an
// optional NextCursor used for pagination.
type UserAnalyses struct {
	// Analyses contains the current page of analysis records.
	Analyses []domain.Analysis
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// AnalysisStorage defines CRUD and query operations related to analyses.
// Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type AnalysisStorage interface {
	// StoreAnalyses inserts one or more analyses and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreAnalyses(ctx context.Context, analyses ...domain.Analysis) ([]domain.Analysis, error)
	// UpdatePendingAnalysesByURL updates all pending analyses for the given URL
	// using the provided field set.
	// Notes:
	// - Attempts is incremented by 1 and updated_at is set automatically.
	// - If Status is Failed and MaxAttempts > 0, status is only set to Failed
	//   when the attempts after increment reach MaxAttempts; otherwise status
	//   remains unchanged (i.e., stays Pending).
	UpdatePendingAnalysesByURL(ctx context.Context, URL string, updates AnalysisUpdates) error
	// PendingAnalysisCountByURL returns the total number of pending analyses for
	// the given URL across all users. Soft-deleted records are excluded.
	PendingAnalysisCountByURL(ctx context.Context, URL string) (int64, error)
	// UpdateAnalysisByID updates a single analysis identified by its ID and returns the updated row.
	// The update ignores soft-deleted rows and sets updated_at automatically. Only provided fields are changed.
	UpdateAnalysisByID(ctx context.Context, ID domain.AnalysisID, updates AnalysisUpdates) (*domain.Analysis, error)
	// DeleteAnalysis performs a soft delete for the given analysis ID and user ID
	// and returns the deleted analysis, or nil if it was not found.
	DeleteAnalysis(ctx context.Context, userID domain.UserID, ID domain.AnalysisID) (*domain.Analysis, error)
	// UserAnalyses returns a page of analyses for a user created before the
	// optional cursor time, limited by the given limit. If status is non-empty,
	// results are filtered to records with the given status.
	UserAnalyses(ctx context.Context,
		userID domain.UserID,
		status domain.AnalysisStatus,
		cursor time.Time,
		limit uint) (UserAnalyses, error)
	// AnalysisByID fetches an analysis by its ID for the given user, excluding
	// soft-deleted records. Returns nil when not found.
	AnalysisByID(ctx context.Context, userID domain.UserID, ID domain.AnalysisID) (*domain.Analysis, error)
	// LastCompletedAnalysisByURL returns the most recent completed analysis for a
	// given URL across all users. Returns nil when none exists.
	LastCompletedAnalysisByURL(ctx context.Context, URL string) (*domain.Analysis, error)
}
