package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
	"veriweb/pkg/domain"

	"github.com/google/uuid"
)

// PgAnalysis is the database row shape of a domain.Analysis. The report is
// stored as a jsonb blob so report structure changes do not need migrations.
type PgAnalysis struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	URL    string          `db:"url"`
	Status string          `db:"status"`
	Report json.RawMessage `db:"report" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgAnalysis) ToDomain() (*domain.Analysis, error) {
	var report domain.Report
	if err := json.Unmarshal(p.Report, &report); err != nil {
		return nil, fmt.Errorf("could not unmarshal report: %w", err)
	}

	return &domain.Analysis{
		ID:        domain.AnalysisID(p.ID),
		UserID:    domain.UserID(p.UserID),
		URL:       p.URL,
		Status:    domain.AnalysisStatus(p.Status),
		Report:    report,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgAnalysis) FromDomain(analysis domain.Analysis) error {
	report, err := json.Marshal(analysis.Report)
	if err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}

	*p = PgAnalysis{
		ID:       uuid.UUID(analysis.ID),
		UserID:   uuid.UUID(analysis.UserID),
		URL:      analysis.URL,
		Status:   string(analysis.Status),
		Report:   report,
		Attempts: analysis.Attempts,
		LastError: sql.NullString{
			String: analysis.LastError,
			Valid:  analysis.LastError != "",
		},
		CreatedAt: analysis.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  analysis.UpdatedAt,
			Valid: !analysis.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  analysis.DeletedAt,
			Valid: !analysis.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainAnalysesToPg(analyses []domain.Analysis) ([]PgAnalysis, error) {
	out := make([]PgAnalysis, len(analyses))
	for i := range out {
		if err := out[i].FromDomain(analyses[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgAnalysesToDomain(analyses []PgAnalysis) ([]domain.Analysis, error) {
	out := make([]domain.Analysis, 0, len(analyses))
	for _, a := range analyses {
		d, err := a.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
