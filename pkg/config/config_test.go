package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRANSCRIBER_PROVIDER", "")
	t.Setenv("SENTIMENT_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, TranscriberWhisper, cfg.Transcriber.Provider)
	assert.Equal(t, SentimentHTTP, cfg.Sentiment.Provider)
	assert.Equal(t, []string{".wav", ".mp3", ".m4a"}, cfg.Upload.Extensions)
	assert.Equal(t, 0.8, cfg.Metrics.GapThreshold)
	assert.Equal(t, 0.7, cfg.Metrics.DominanceThreshold)
	assert.Equal(t, 3, cfg.Metrics.MinQuestions)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 30*time.Second, cfg.Transcriber.MaxRetry)
	assert.Equal(t, 10*time.Second, cfg.Sentiment.MaxRetry)
}

func TestLoadMetricsOverrides(t *testing.T) {
	t.Setenv("CALL_GAP_THRESHOLD", "1.5")
	t.Setenv("CALL_MIN_QUESTIONS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Metrics.GapThreshold)
	assert.Equal(t, 5, cfg.Metrics.MinQuestions)
}

func TestLoadZeroThresholds(t *testing.T) {
	t.Setenv("CALL_GAP_THRESHOLD", "0")
	t.Setenv("CALL_MIN_QUESTIONS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Metrics.GapThreshold)
	assert.Equal(t, 0, cfg.Metrics.MinQuestions)

	t.Setenv("CALL_MIN_QUESTIONS", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "min_questions=-1")
}

func TestValidateProviders(t *testing.T) {
	t.Setenv("TRANSCRIBER_PROVIDER", TranscriberAssemblyAI)
	t.Setenv("ASSEMBLYAI_API_KEY", "")
	_, err := Load()
	assert.ErrorContains(t, err, "ASSEMBLYAI_API_KEY")

	t.Setenv("TRANSCRIBER_PROVIDER", TranscriberWhisper)
	t.Setenv("SENTIMENT_PROVIDER", SentimentGroq)
	t.Setenv("GROQ_API_KEY", "")
	_, err = Load()
	assert.ErrorContains(t, err, "GROQ_API_KEY")

	t.Setenv("SENTIMENT_PROVIDER", "vader")
	_, err = Load()
	assert.ErrorContains(t, err, "SENTIMENT_PROVIDER")
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvAsSlice("ALLOWED_ORIGINS", nil))
}
