package metrics

import (
	"math"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// Engine computes MetricsResult values with a fixed Config
type Engine struct {
	cfg Config
}

// NewEngine creates an engine. Zero is a valid gap or question threshold;
// negative values, and a dominance share outside (0, 1], fall back to the defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.GapThreshold < 0 {
		cfg.GapThreshold = def.GapThreshold
	}
	if cfg.DominanceThreshold <= 0 || cfg.DominanceThreshold > 1 {
		cfg.DominanceThreshold = def.DominanceThreshold
	}
	if cfg.MinQuestions < 0 {
		cfg.MinQuestions = def.MinQuestions
	}
	return &Engine{cfg: cfg}
}

// Config returns the thresholds in use
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze runs the whole pipeline: segments -> turns -> ratio, questions, monologue -> insight.
// The only error is a *entities.ValidationError for malformed segments.
func (e *Engine) Analyze(segments []entities.Segment, sentiment entities.SentimentLabel) (*entities.MetricsResult, error) {
	if err := ValidateSegments(segments); err != nil {
		return nil, err
	}
	if sentiment == "" {
		sentiment = entities.SentimentNeutral
	}

	turns := AssignSpeakers(segments, e.cfg.GapThreshold)

	ratio := TalkTimeRatio(turns)
	numQuestions := CountQuestions(turns)
	longest := LongestMonologue(turns)

	kind, insight := e.cfg.Insight(ratio, numQuestions, string(sentiment))

	return &entities.MetricsResult{
		TalkTimeRatio:     ratio,
		NumQuestions:      numQuestions,
		LongestMonologueS: round2(longest),
		Insight:           insight,
		InsightKind:       kind,
	}, nil
}

// AnalyzeMetrics analyzes segments with the default thresholds
func AnalyzeMetrics(segments []entities.Segment, sentiment entities.SentimentLabel) (*entities.MetricsResult, error) {
	return NewEngine(DefaultConfig()).Analyze(segments, sentiment)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
