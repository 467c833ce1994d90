package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"veriweb/pkg/domain"
	"veriweb/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	analysesTable = "analyses"
)

func (p *PgSQL) StoreAnalyses(ctx context.Context, analyses ...domain.Analysis) ([]domain.Analysis, error) {
	if len(analyses) == 0 {
		return nil, nil
	}

	pgAnalyses, err := domainAnalysesToPg(analyses)
	if err != nil {
		return nil, err
	}

	var result []PgAnalysis
	if err := p.Builder.Insert(analysesTable).
		Rows(pgAnalyses).
		Returning(&PgAnalysis{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store analyses into pg: %w", err)
	}

	return pgAnalysesToDomain(result)
}

// UpdatePendingAnalysesByURL updates all pending analyses for the given URL with
// provided fields. Attempts is incremented by 1 and updated_at is set. When the
// target status is Failed and MaxAttempts > 0, the status only flips to Failed
// once the incremented attempts reach the threshold; otherwise it stays Pending
// so the job can be retried.
func (p *PgSQL) UpdatePendingAnalysesByURL(ctx context.Context, URL string, updates storage.AnalysisUpdates) error {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
	}
	if updates.Status == domain.AnalysisStatusFailed && updates.MaxAttempts > 0 {
		rec["status"] = goqu.L("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
			updates.MaxAttempts, string(domain.AnalysisStatusFailed))
	} else {
		rec["status"] = updates.Status
	}
	if updates.Report != nil {
		b, err := json.Marshal(updates.Report)
		if err != nil {
			return fmt.Errorf("could not marshal report: %w", err)
		}

		rec["report"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	_, err := p.Builder.Update(analysesTable).
		Set(rec).Where(
		goqu.I("url").Eq(URL),
		goqu.I("status").Eq(string(domain.AnalysisStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update pending analyses by url in pg: %w", err)
	}

	return nil
}

// PendingAnalysisCountByURL counts pending, non-deleted analyses for a URL
// across all users.
func (p *PgSQL) PendingAnalysisCountByURL(ctx context.Context, URL string) (int64, error) {
	var count int64
	if _, err := p.Builder.From(analysesTable).
		Select(goqu.COUNT("*")).
		Where(
			goqu.I("url").Eq(URL),
			goqu.I("status").Eq(string(domain.AnalysisStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanValContext(ctx, &count); err != nil {
		return 0, fmt.Errorf("could not count pending analyses in pg: %w", err)
	}

	return count, nil
}

// UpdateAnalysisByID updates a single analysis by ID, ignoring soft-deleted
// rows, and returns the updated record or nil when not found.
func (p *PgSQL) UpdateAnalysisByID(ctx context.Context,
	id domain.AnalysisID,
	updates storage.AnalysisUpdates) (*domain.Analysis, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Status != "" {
		rec["status"] = updates.Status
	}
	if updates.Report != nil {
		b, err := json.Marshal(updates.Report)
		if err != nil {
			return nil, fmt.Errorf("could not marshal report: %w", err)
		}

		rec["report"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgAnalysis
	found, err := p.Builder.Update(analysesTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgAnalysis{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update analysis by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteAnalysis performs a soft delete by setting deleted_at timestamp
// for a given analysis id and user, returning the deleted record.
func (p *PgSQL) DeleteAnalysis(ctx context.Context,
	userID domain.UserID,
	id domain.AnalysisID) (*domain.Analysis, error) {
	var row PgAnalysis
	found, err := p.Builder.Update(analysesTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgAnalysis{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete analysis in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserAnalyses returns a page of analyses for a user filtered by optional
// status and cursor, limited by limit. Results are ordered by created_at DESC,
// id DESC; the cursor for the next page is returned when more rows exist.
func (p *PgSQL) UserAnalyses(ctx context.Context,
	userID domain.UserID,
	status domain.AnalysisStatus,
	cursor time.Time,
	limit uint) (storage.UserAnalyses, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(analysesTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgAnalysis
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserAnalyses{}, fmt.Errorf("could not fetch user analyses from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgAnalysesToDomain(rows)
	if err != nil {
		return storage.UserAnalyses{}, err
	}

	return storage.UserAnalyses{
		Analyses:   domainRows,
		NextCursor: nextCursor,
	}, nil
}

// AnalysisByID returns an analysis by its ID, excluding soft-deleted rows.
func (p *PgSQL) AnalysisByID(ctx context.Context,
	userID domain.UserID,
	id domain.AnalysisID) (*domain.Analysis, error) {
	var row PgAnalysis
	found, err := p.Builder.From(analysesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch analysis by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// LastCompletedAnalysisByURL returns the most recent completed analysis for a
// URL across all users, or nil when none exists.
func (p *PgSQL) LastCompletedAnalysisByURL(ctx context.Context, URL string) (*domain.Analysis, error) {
	var row PgAnalysis
	found, err := p.Builder.From(analysesTable).
		Where(
			goqu.I("url").Eq(URL),
			goqu.I("status").Eq(string(domain.AnalysisStatusCompleted)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("updated_at").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch last completed analysis by url: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
