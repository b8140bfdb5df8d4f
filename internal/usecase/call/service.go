// Package call orchestrates a call analysis: audio or transcript in,
// stored metrics out.
package call

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// Service defines the interface for the call analysis use case
type Service interface {
	// AnalyzeAudio transcribes an uploaded recording and analyzes it
	AnalyzeAudio(ctx context.Context, input AudioInput) (*entities.CallAnalysis, error)

	// AnalyzeTranscript analyzes already segmented text
	AnalyzeTranscript(ctx context.Context, input TranscriptInput) (*entities.CallAnalysis, error)

	// GetAnalysis retrieves a stored analysis by ID
	GetAnalysis(ctx context.Context, id uuid.UUID) (*entities.CallAnalysis, error)

	// ListAnalyses retrieves stored analyses, newest first
	ListAnalyses(ctx context.Context, input ListInput) ([]*entities.CallAnalysis, int64, error)

	// AudioURL returns a temporary download link of the archived recording
	AudioURL(ctx context.Context, analysis *entities.CallAnalysis) (string, error)
}

// AudioInput represents an uploaded recording
type AudioInput struct {
	Filename string
	Reader   io.Reader
}

// TranscriptInput represents a transcript supplied by the caller.
// An empty Sentiment is computed with the classifier.
type TranscriptInput struct {
	Filename  string
	Segments  []entities.Segment
	Sentiment string
}

// ListInput represents a page of stored analyses
type ListInput struct {
	Page     int
	PageSize int
	Source   *entities.AnalysisSource
}

// Cache is a string key-value store with expiry
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// AudioStore archives recordings
type AudioStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
