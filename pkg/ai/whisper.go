package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/johnquangdev/call-analyzer/pkg/config"
)

// WhisperClient talks to a self-hosted Whisper server exposing POST /transcribe
type WhisperClient struct {
	baseURL string
	client  *http.Client
}

// NewWhisperClient creates a Whisper client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewWhisperClient(cfg *config.TranscriberConfig) *WhisperClient {
	var base string
	timeout := 5 * time.Minute
	if cfg != nil {
		base = cfg.WhisperURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if base == "" {
		base = os.Getenv("WHISPER_URL")
	}
	return &WhisperClient{
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type whisperResponse struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
}

// Transcribe uploads the audio file as multipart field "file"
func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if err = mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Service: "whisper", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("whisper: %w: %w", ErrBadResponse, err)
	}

	// silent segments are kept; they carry the timing the speaker heuristic relies on
	segments := make([]Segment, len(out.Segments))
	for i, s := range out.Segments {
		s.Text = strings.TrimSpace(s.Text)
		segments[i] = s
	}
	return &Transcription{Segments: segments, Language: out.Language, Duration: out.Duration}, nil
}
