package v1handler

import (
	"net/http"
	"strconv"
	"time"
	"veriweb/internal/engine"
	"veriweb/pkg/domain"
	"veriweb/pkg/serrors"

	"github.com/google/uuid"
)

// Analysis is the wire representation of a domain.Analysis.
type Analysis struct {
	ID        uuid.UUID             `json:"id"`
	URL       string                `json:"url"`
	Status    domain.AnalysisStatus `json:"status"`
	Report    domain.Report         `json:"report"`
	Attempts  uint                  `json:"attempts"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

// AnalysisList is a page of analyses with an opaque cursor for the next page.
type AnalysisList struct {
	Items      []Analysis `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// AnalyzeRequest is the payload for both the synchronous and asynchronous
// analysis endpoints.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// DomainAnalysisToV1 converts a domain analysis to its wire representation.
func DomainAnalysisToV1(in *domain.Analysis) *Analysis {
	out := &Analysis{
		ID:        uuid.UUID(in.ID),
		URL:       in.URL,
		Status:    in.Status,
		Report:    in.Report,
		Attempts:  in.Attempts,
		CreatedAt: in.CreatedAt,
	}
	if !in.UpdatedAt.IsZero() {
		t := in.UpdatedAt
		out.UpdatedAt = &t
	}

	return out
}

// Analyze classifies a URL synchronously with the risk engine and returns the
// report without persisting anything.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	report := engine.Analyze(ctx, req.URL)
	writeJSON(ctx, w, http.StatusOK, report)
}

// CreateAnalysis schedules a new background analysis for the provided URL.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, err)

		return
	}
	if req.URL == "" {
		h.writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "url is required"))

		return
	}

	res, err := h.deps.Analyzer.Enqueue(ctx, GetUserIDFromContext(ctx), req.URL)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusAccepted, DomainAnalysisToV1(res))
}

// ListAnalyses returns a paginated list of the user's analyses.
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	status := domain.AnalysisStatus(q.Get("status"))
	switch status {
	case "", domain.AnalysisStatusPending, domain.AnalysisStatusCompleted, domain.AnalysisStatusFailed:
	default:
		h.writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid status %q", status))

		return
	}

	limit := uint(DefaultLimit)
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			h.writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit %q", raw))

			return
		}
		limit = uint(parsed)
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}

	analyses, nextCursor, err := h.deps.Analyzer.UserAnalyses(ctx,
		GetUserIDFromContext(ctx),
		status,
		q.Get("cursor"),
		limit)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	items := make([]Analysis, 0, len(analyses))
	for i := range analyses {
		items = append(items, *DomainAnalysisToV1(&analyses[i]))
	}

	writeJSON(ctx, w, http.StatusOK, AnalysisList{
		Items:      items,
		NextCursor: nextCursor,
	})
}

// GetAnalysis returns details of an analysis by ID.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid analysis id"))

		return
	}

	res, err := h.deps.Analyzer.Result(ctx, GetUserIDFromContext(ctx), domain.AnalysisID(id))
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, DomainAnalysisToV1(res))
}

// DeleteAnalysis deletes an analysis by ID.
func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid analysis id"))

		return
	}

	if err := h.deps.Analyzer.Delete(ctx, GetUserIDFromContext(ctx), domain.AnalysisID(id)); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
