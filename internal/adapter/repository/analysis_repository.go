package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	"github.com/johnquangdev/call-analyzer/internal/domain/repositories"
)

const maxListLimit = 100

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create stores a new analysis
func (r *analysisRepository) Create(ctx context.Context, analysis *entities.CallAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// FindByID retrieves an analysis by its ID
func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.CallAnalysis, error) {
	var analysis entities.CallAnalysis
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&analysis).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &analysis, nil
}

// FindByAudioHash retrieves the latest analysis of the same audio content
func (r *analysisRepository) FindByAudioHash(ctx context.Context, sha256 string) (*entities.CallAnalysis, error) {
	var analysis entities.CallAnalysis
	err := r.db.WithContext(ctx).
		Where("audio_sha256 = ?", sha256).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &analysis, nil
}

// List retrieves analyses newest first, without their segments
func (r *analysisRepository) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.CallAnalysis, int64, error) {
	var analyses []*entities.CallAnalysis
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.CallAnalysis{})

	// Apply filters
	if filters.Source != nil {
		query = query.Where("source = ?", *filters.Source)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	limit := filters.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.
		Omit("segments").
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
