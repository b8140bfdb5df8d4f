package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// ErrNotFound is returned when no stored analysis matches
var ErrNotFound = errors.New("analysis not found")

// AnalysisFilters narrows a listing of stored analyses
type AnalysisFilters struct {
	Source *entities.AnalysisSource
	Limit  int
	Offset int
}

// AnalysisRepository defines persistence operations for call analyses
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entities.CallAnalysis) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.CallAnalysis, error)
	FindByAudioHash(ctx context.Context, sha256 string) (*entities.CallAnalysis, error)
	List(ctx context.Context, filters AnalysisFilters) ([]*entities.CallAnalysis, int64, error)
}
