package analyzer

import (
	"context"
	"veriweb/pkg/domain"
)

//go:generate mockgen -package mockanalyzer -source=interface.go -destination=mock/mockanalyzer.go *
type Analyzer interface {
	Enqueue(ctx context.Context, userID domain.UserID, URL string) (*domain.Analysis, error)
	UserAnalyses(ctx context.Context,
		userID domain.UserID,
		status domain.AnalysisStatus,
		cursor string,
		limit uint) ([]domain.Analysis, string, error)
	Result(ctx context.Context, userID domain.UserID, analysisID domain.AnalysisID) (*domain.Analysis, error)
	Delete(ctx context.Context, userID domain.UserID, analysisID domain.AnalysisID) error
}
