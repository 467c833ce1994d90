package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisID uniquely identifies an analysis request.
// It wraps uuid.UUID to provide type safety at the domain layer.
type AnalysisID uuid.UUID

// AnalysisStatus represents the lifecycle state of an analysis request.
type AnalysisStatus string

const (
	// AnalysisStatusPending indicates the analysis has been enqueued but not processed yet.
	AnalysisStatusPending AnalysisStatus = "PENDING"
	// AnalysisStatusCompleted indicates the analysis finished and a report is available.
	AnalysisStatusCompleted AnalysisStatus = "COMPLETED"
	// AnalysisStatusFailed indicates the analysis ended with an error; see LastError and Attempts.
	AnalysisStatusFailed AnalysisStatus = "FAILED"
)

// Verdict is the classification band assigned to a URL by the risk engine.
// It is a pure, total function of the numeric score: no hidden state.
type Verdict string

const (
	// VerdictSafe is assigned to scores of 80 and above.
	VerdictSafe Verdict = "SAFE"
	// VerdictSuspicious is assigned to scores in [50, 80).
	VerdictSuspicious Verdict = "SUSPICIOUS"
	// VerdictMalicious is assigned to scores below 50.
	VerdictMalicious Verdict = "MALICIOUS"
)

// Report is the structured outcome of a URL risk analysis. It is assembled
// once per analysis and is immutable afterwards.
type Report struct {
	// Score is the safety score in [0, 100]; higher is safer.
	Score int `json:"score"`
	// Verdict is the classification band derived from Score.
	Verdict Verdict `json:"verdict"`
	// Threats lists the human-readable descriptions of every fired risk
	// indicator, in detection order. Empty (never nil once assembled) when
	// nothing fired.
	Threats []string `json:"threats"`
	// Recommendations are verdict-specific actions for the user.
	Recommendations []string `json:"recommendations"`
	// Explanation is a deterministic one-sentence summary of the findings.
	Explanation string `json:"explanation"`
}

// Analysis represents a single URL analysis request and its current state.
// It tracks the target URL, lifecycle status, report, error information and
// timestamps.
type Analysis struct {
	// ID is the unique identifier of the analysis.
	ID AnalysisID `json:"id"`
	// UserID is the identifier of the user who requested the analysis.
	UserID UserID `json:"userId"`

	// URL is the normalized target that is analyzed.
	URL string `json:"url"`
	// Status is the current lifecycle state of the analysis.
	Status AnalysisStatus `json:"status"`
	// Report contains the latest known outcome of the analysis.
	Report Report `json:"report"`

	// Attempts is the number of times the system has tried to process this analysis.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent error message, if any, encountered while processing.
	LastError string `json:"-"`

	// CreatedAt is the time when the analysis request was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the analysis was last updated (e.g., status or report changed).
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the analysis was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
