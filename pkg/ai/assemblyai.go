package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/call-analyzer/pkg/config"
)

// AssemblyAIClient transcribes audio through the AssemblyAI SDK
type AssemblyAIClient struct {
	client   *aai.Client
	language string
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) (*AssemblyAIClient, error) {
	var apiKey, language string
	if cfg != nil {
		apiKey = cfg.APIKey
		language = cfg.LanguageCode
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("assemblyai: %w: missing API key", ErrNotConfigured)
	}
	return &AssemblyAIClient{
		client:   aai.NewClient(apiKey),
		language: language,
	}, nil
}

// Transcribe uploads the file and waits for the transcript to complete
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	uploadURL, err := c.client.Upload(ctx, fd)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if c.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.language)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai error: %s", msg)
	}
	return fromAssemblyTranscript(transcript), nil
}

// fromAssemblyTranscript maps utterances to segments, converting ms to seconds.
// Without utterances the whole text becomes one segment spanning the audio.
func fromAssemblyTranscript(t aai.Transcript) *Transcription {
	out := &Transcription{Language: string(t.LanguageCode)}
	if t.AudioDuration != nil {
		out.Duration = float64(*t.AudioDuration)
	}

	for _, utt := range t.Utterances {
		seg := Segment{}
		if utt.Text != nil {
			seg.Text = strings.TrimSpace(*utt.Text)
		}
		if utt.Start != nil {
			seg.Start = float64(*utt.Start) / 1000.0
		}
		if utt.End != nil {
			seg.End = float64(*utt.End) / 1000.0
		}
		out.Segments = append(out.Segments, seg)
	}

	if len(out.Segments) == 0 && t.Text != nil && strings.TrimSpace(*t.Text) != "" {
		out.Segments = []Segment{{Start: 0, End: out.Duration, Text: strings.TrimSpace(*t.Text)}}
	}
	return out
}
