// Package ai holds the clients of the speech and language services the
// analyzer depends on: speech-to-text and sentiment classification.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Failures that another attempt cannot fix
var (
	ErrNotConfigured = errors.New("client not configured")
	ErrBadResponse   = errors.New("malformed response")
)

// Segment is a timed piece of recognised speech, in seconds
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the provider-neutral result of speech-to-text
type Transcription struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration,omitempty"`
}

// Transcriber turns an audio file on disk into timed segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcription, error)
}

// Classifier labels a piece of text as POSITIVE, NEGATIVE or NEUTRAL
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// StatusError is a non-2xx answer from an upstream service
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
