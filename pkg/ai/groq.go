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

const defaultGroqModel = "llama-3.1-8b-instant"

// GroqClient is a minimal client for Groq chat completions, used here as a
// zero-shot sentiment classifier
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, model string
	if cfg != nil {
		apiKey = cfg.APIKey
		model = cfg.Model
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if model == "" {
		model = defaultGroqModel
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const classifyPrompt = "Classify the sentiment of the following text. " +
	"Answer with exactly one word: POSITIVE, NEGATIVE or NEUTRAL."

// Classify asks the model for a single sentiment label
func (g *GroqClient) Classify(ctx context.Context, text string) (string, error) {
	content, err := g.chat(ctx, []ChatMessage{
		{Role: "system", Content: classifyPrompt},
		{Role: "user", Content: text},
	}, 4)
	if err != nil {
		return "", err
	}
	return parseGroqLabel(content), nil
}

// parseGroqLabel picks the first known label in the reply, NEUTRAL otherwise
func parseGroqLabel(content string) string {
	upper := strings.ToUpper(content)
	for _, label := range []string{"NEGATIVE", "POSITIVE", "NEUTRAL"} {
		if strings.Contains(upper, label) {
			return label
		}
	}
	return "NEUTRAL"
}

func (g *GroqClient) chat(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: 0,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{Service: "groq", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("groq: %w: %w", ErrBadResponse, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("groq: %w: no choices", ErrBadResponse)
	}
	return cr.Choices[0].Message.Content, nil
}
