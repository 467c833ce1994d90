package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veriweb/internal/api/handler/v1handler"
	mockanalyzer "veriweb/internal/analyzer/mock"
	"veriweb/pkg/domain"
	"veriweb/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (*mockanalyzer.MockAnalyzer, *v1handler.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	an := mockanalyzer.NewMockAnalyzer(ctrl)
	h := v1handler.New(v1handler.Deps{Analyzer: an})

	return an, h
}

// requestWithUser builds a request carrying an authenticated user ID, the way
// the security middleware would.
func requestWithUser(method, target, body string, userID domain.UserID) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	return req.WithContext(context.WithValue(req.Context(), v1handler.UserIDKey, userID))
}

func TestAnalyze_Sync(t *testing.T) {
	_, h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodPost, "/v1/analyze", `{"url":"http://192.168.1.5/login"}`, domain.UserID{})
	h.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 45, report.Score)
	require.Equal(t, domain.VerdictMalicious, report.Verdict)
	require.Len(t, report.Threats, 3)
	require.NotEmpty(t, report.Explanation)
}

func TestAnalyze_BadBody(t *testing.T) {
	_, h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodPost, "/v1/analyze", `{not json`, domain.UserID{})
	h.Analyze(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res v1handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Code)
}

func TestCreateAnalysis(t *testing.T) {
	an, h := newTestHandler(t)

	userID := domain.UserID(uuid.New())
	created := domain.Analysis{
		ID:        domain.AnalysisID(uuid.New()),
		UserID:    userID,
		URL:       "https://example.com/",
		Status:    domain.AnalysisStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	an.EXPECT().Enqueue(gomock.Any(), userID, "https://example.com").Return(&created, nil)

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodPost, "/v1/analyses", `{"url":"https://example.com"}`, userID)
	h.CreateAnalysis(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var res v1handler.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, uuid.UUID(created.ID), res.ID)
	require.Equal(t, domain.AnalysisStatusPending, res.Status)
	require.Nil(t, res.UpdatedAt)
}

func TestCreateAnalysis_MissingURL(t *testing.T) {
	_, h := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodPost, "/v1/analyses", `{}`, domain.UserID{})
	h.CreateAnalysis(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAnalysis_EnqueueError(t *testing.T) {
	an, h := newTestHandler(t)

	an.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "invalid URL"))

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodPost, "/v1/analyses", `{"url":"http://[::1"}`, domain.UserID{})
	h.CreateAnalysis(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res v1handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "invalid URL", res.Message)
}

func TestListAnalyses(t *testing.T) {
	an, h := newTestHandler(t)

	userID := domain.UserID(uuid.New())
	next := time.Now().UTC().Format(time.RFC3339)
	an.EXPECT().UserAnalyses(gomock.Any(), userID, domain.AnalysisStatusCompleted, "", uint(5)).
		Return([]domain.Analysis{{URL: "https://a", Status: domain.AnalysisStatusCompleted}}, next, nil)

	rec := httptest.NewRecorder()
	req := requestWithUser(http.MethodGet, "/v1/analyses?status=COMPLETED&limit=5", "", userID)
	h.ListAnalyses(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res v1handler.AnalysisList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Items, 1)
	require.Equal(t, "https://a", res.Items[0].URL)
	require.Equal(t, next, res.NextCursor)
}

func TestListAnalyses_DefaultsAndValidation(t *testing.T) {
	an, h := newTestHandler(t)

	// default limit applies when none is given
	an.EXPECT().UserAnalyses(gomock.Any(), gomock.Any(), domain.AnalysisStatus(""), "", uint(v1handler.DefaultLimit)).
		Return(nil, "", nil)
	rec := httptest.NewRecorder()
	h.ListAnalyses(rec, requestWithUser(http.MethodGet, "/v1/analyses", "", domain.UserID{}))
	require.Equal(t, http.StatusOK, rec.Code)

	// invalid status rejected
	rec = httptest.NewRecorder()
	h.ListAnalyses(rec, requestWithUser(http.MethodGet, "/v1/analyses?status=BOGUS", "", domain.UserID{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid limit rejected
	rec = httptest.NewRecorder()
	h.ListAnalyses(rec, requestWithUser(http.MethodGet, "/v1/analyses?limit=abc", "", domain.UserID{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// oversized limit capped
	an.EXPECT().UserAnalyses(gomock.Any(), gomock.Any(), domain.AnalysisStatus(""), "", uint(v1handler.MaxLimit)).
		Return(nil, "", nil)
	rec = httptest.NewRecorder()
	h.ListAnalyses(rec, requestWithUser(http.MethodGet, "/v1/analyses?limit=1000", "", domain.UserID{}))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAnalysis(t *testing.T) {
	an, h := newTestHandler(t)

	userID := domain.UserID(uuid.New())
	id := uuid.New()
	found := domain.Analysis{
		ID:     domain.AnalysisID(id),
		Status: domain.AnalysisStatusCompleted,
		Report: domain.Report{Score: 100, Verdict: domain.VerdictSafe},
	}
	an.EXPECT().Result(gomock.Any(), userID, domain.AnalysisID(id)).Return(&found, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/analyses/{id}", h.GetAnalysis)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, requestWithUser(http.MethodGet, "/v1/analyses/"+id.String(), "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var res v1handler.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, id, res.ID)
	require.Equal(t, domain.VerdictSafe, res.Report.Verdict)
}

func TestGetAnalysis_InvalidIDAndNotFound(t *testing.T) {
	an, h := newTestHandler(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/analyses/{id}", h.GetAnalysis)

	// invalid uuid
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, requestWithUser(http.MethodGet, "/v1/analyses/not-a-uuid", "", domain.UserID{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// not found
	id := uuid.New()
	an.EXPECT().Result(gomock.Any(), gomock.Any(), domain.AnalysisID(id)).
		Return(nil, serrors.With(serrors.ErrNotFound, "analysis not found"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, requestWithUser(http.MethodGet, "/v1/analyses/"+id.String(), "", domain.UserID{}))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAnalysis(t *testing.T) {
	an, h := newTestHandler(t)

	userID := domain.UserID(uuid.New())
	id := uuid.New()
	an.EXPECT().Delete(gomock.Any(), userID, domain.AnalysisID(id)).Return(nil)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/analyses/{id}", h.DeleteAnalysis)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, requestWithUser(http.MethodDelete, "/v1/analyses/"+id.String(), "", userID))

	require.Equal(t, http.StatusNoContent, rec.Code)
}
