package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/call-analyzer/pkg/config"
)

// SentimentClient calls a text-classification server exposing POST /classify.
// The server answers with a ranked list of {label, score}.
type SentimentClient struct {
	baseURL string
	client  *http.Client
}

// NewSentimentClient creates a classifier client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewSentimentClient(cfg *config.SentimentConfig) *SentimentClient {
	var base string
	timeout := 30 * time.Second
	if cfg != nil {
		base = cfg.URL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if base == "" {
		base = os.Getenv("SENTIMENT_URL")
	}
	return &SentimentClient{
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

// ClassifyScore is one ranked label of a classification
type ClassifyScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the highest scored label
func (s *SentimentClient) Classify(ctx context.Context, text string) (string, error) {
	b, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/classify", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{Service: "sentiment", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var scores []ClassifyScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return "", fmt.Errorf("sentiment: %w: %w", ErrBadResponse, err)
	}
	if len(scores) == 0 {
		return "", fmt.Errorf("sentiment: %w: empty classification", ErrBadResponse)
	}

	best := scores[0]
	for _, sc := range scores[1:] {
		if sc.Score > best.Score {
			best = sc
		}
	}
	return strings.ToUpper(best.Label), nil
}
