// Package v1handler implements the HTTP handlers for version 1 of the API.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"veriweb/internal/analyzer"
	"veriweb/pkg/logger"
	"veriweb/pkg/serrors"

	"go.uber.org/zap"
)

// DefaultLimit is the page size used when the client does not provide one.
const DefaultLimit = 20

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Deps holds the services the v1 handlers depend on.
type Deps struct {
	Analyzer analyzer.Analyzer
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns an http.Handler serving all v1 endpoints behind bearer auth.
func (h *Handler) Routes(sec *SecHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/analyze", h.Analyze)
	mux.HandleFunc("POST /v1/analyses", h.CreateAnalysis)
	mux.HandleFunc("GET /v1/analyses", h.ListAnalyses)
	mux.HandleFunc("GET /v1/analyses/{id}", h.GetAnalysis)
	mux.HandleFunc("DELETE /v1/analyses/{id}", h.DeleteAnalysis)

	return sec.Wrap(mux)
}

// ErrorResponse is the JSON body returned for all error responses.
type ErrorResponse struct {
	// Code is the machine-readable error category.
	Code string `json:"code"`
	// Message is a human-readable description safe to show to clients.
	Message string `json:"message"`
}

// ErrorStatusCode pairs an HTTP status with its error response body.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

// kindStatus maps semantic error kinds to HTTP statuses and the default
// client-facing message used when the error carries none.
var kindStatus = []struct {
	kind    serrors.Kind
	status  int
	message string
}{
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
	{serrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{serrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
	{serrors.ErrConflict, http.StatusConflict, "conflict"},
	{serrors.ErrTimeout, http.StatusGatewayTimeout, "request timed out"},
	{serrors.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
}

// NewError converts any error into an ErrorStatusCode. Semantic errors are
// mapped to their HTTP status and expose their message; everything else
// becomes an opaque internal error so implementation details never leak to
// clients.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	for _, m := range kindStatus {
		if !errors.Is(err, m.kind) {
			continue
		}

		msg := m.message
		var serr *serrors.Error
		if errors.As(err, &serr) && serr.Message() != "" {
			msg = serr.Message()
		}

		logger.Debug(ctx, "request failed", zap.Error(err), zap.Int("status", m.status))

		return &ErrorStatusCode{
			StatusCode: m.status,
			Response: ErrorResponse{
				Code:    m.kind.Error(),
				Message: msg,
			},
		}
	}

	logger.Error(ctx, err.Error())

	return &ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response: ErrorResponse{
			Code:    serrors.ErrInternal.Error(),
			Message: "internal error",
		},
	}
}

// writeError renders an error as a JSON response.
func (h Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)
	writeJSON(ctx, w, res.StatusCode, res.Response)
}

// writeJSON renders v as a JSON response with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}

// decodeJSON parses the request body into v, mapping malformed input to a
// bad-request semantic error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
