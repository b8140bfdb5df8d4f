package metrics

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

func sampleCall() []entities.Segment {
	return []entities.Segment{
		{Start: 0, End: 2.5, Text: "Hi, thanks for joining. How are you today?"},
		{Start: 2.6, End: 4, Text: "Let me walk you through the proposal."},
		{Start: 5.2, End: 6.8, Text: "Sounds good, what does pricing look like?"},
		{Start: 8.1, End: 12.4, Text: "Pricing starts at ten per seat, and we can discount annual plans."},
		{Start: 13.5, End: 15, Text: "Could you send that over?"},
		{Start: 16.2, End: 17, Text: "Sure."},
	}
}

func TestAnalyzeMetricsEmpty(t *testing.T) {
	res, err := AnalyzeMetrics(nil, "")
	require.NoError(t, err)

	assert.Equal(t, 0, res.NumQuestions)
	assert.Equal(t, 0.0, res.LongestMonologueS)
	assert.Equal(t, entities.TalkRatio{entities.SpeakerA: 0, entities.SpeakerB: 0}, res.TalkTimeRatio)
	assert.Equal(t, msgLowEngagement, res.Insight)
}

func TestAnalyzeMetricsSample(t *testing.T) {
	res, err := AnalyzeMetrics(sampleCall(), entities.SentimentPositive)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.TalkTimeRatio[entities.SpeakerA]+res.TalkTimeRatio[entities.SpeakerB], 1e-6)
	assert.Equal(t, 4, res.NumQuestions)
	// runs: A(0-4) B(5.2-6.8) A(8.1-12.4) B(13.5-15) A(16.2-17)
	assert.Equal(t, 4.3, res.LongestMonologueS)
	assert.NotEmpty(t, res.Insight)
}

func TestAnalyzeMetricsRoundsMonologue(t *testing.T) {
	res, err := AnalyzeMetrics([]entities.Segment{{Start: 0.001, End: 3.14159, Text: "hello"}}, "")
	require.NoError(t, err)
	assert.Equal(t, 3.14, res.LongestMonologueS)
}

func TestAnalyzeMetricsIdempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	first, err := engine.Analyze(sampleCall(), entities.SentimentNegative)
	require.NoError(t, err)
	second, err := engine.Analyze(sampleCall(), entities.SentimentNegative)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAnalyzeMetricsJSONShape(t *testing.T) {
	res, err := AnalyzeMetrics([]entities.Segment{{Start: 0, End: 1, Text: "hi"}}, "")
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.ElementsMatch(t, []string{"talk_time_ratio", "num_questions", "longest_monologue_s", "insight"}, keys(decoded))
	assert.Contains(t, decoded["talk_time_ratio"], "A")
	assert.Contains(t, decoded["talk_time_ratio"], "B")
}

func TestAnalyzeMetricsValidation(t *testing.T) {
	tests := []struct {
		name     string
		segments []entities.Segment
		path     string
	}{
		{"end before start", []entities.Segment{{Start: 0, End: 1}, {Start: 3, End: 2}}, "segments[1].end"},
		{"negative start", []entities.Segment{{Start: -1, End: 2}}, "segments[0].start"},
		{"nan start", []entities.Segment{{Start: math.NaN(), End: 2}}, "segments[0].start"},
		{"infinite end", []entities.Segment{{Start: 0, End: math.Inf(1)}}, "segments[0].end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnalyzeMetrics(tt.segments, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrValidation))

			var verr *entities.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path())
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Config{GapThreshold: -1, DominanceThreshold: 0, MinQuestions: -1})
	assert.Equal(t, DefaultConfig(), e.Config())

	e = NewEngine(Config{GapThreshold: 0.8, DominanceThreshold: 1.5, MinQuestions: 3})
	assert.Equal(t, DefaultDominanceThreshold, e.Config().DominanceThreshold)

	e = NewEngine(Config{GapThreshold: 2, DominanceThreshold: DefaultDominanceThreshold})
	segments := []entities.Segment{{Start: 0, End: 1, Text: "a"}, {Start: 2.5, End: 3, Text: "b"}}
	res, err := e.Analyze(segments, "")
	require.NoError(t, err)
	// 1.5s gap stays under the 2s threshold, so speaker A owns the call
	assert.InDelta(t, 1.0, res.TalkTimeRatio[entities.SpeakerA], 1e-9)
}

func TestNewEngineZeroThresholds(t *testing.T) {
	e := NewEngine(Config{DominanceThreshold: DefaultDominanceThreshold})
	assert.Equal(t, 0.0, e.Config().GapThreshold)
	assert.Equal(t, 0, e.Config().MinQuestions)

	segments := []entities.Segment{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
		{Start: 2.5, End: 4.5, Text: "three four"},
	}
	turns := AssignSpeakers(segments, e.Config().GapThreshold)
	require.Len(t, turns, 3)
	// touching segments keep the speaker, any pause flips it
	assert.Equal(t, entities.SpeakerA, turns[1].Speaker)
	assert.Equal(t, entities.SpeakerB, turns[2].Speaker)

	res, err := e.Analyze(segments, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.TalkTimeRatio[entities.SpeakerA], 1e-9)
	assert.Equal(t, 0, res.NumQuestions)
	// no question minimum, so a balanced call without questions is not low engagement
	assert.Equal(t, msgBalanced, res.Insight)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
