// Package metrics turns timestamped transcript segments into call-quality metrics:
// speaker turns, talk-time ratio, question count, longest monologue and a coaching insight.
//
// Everything here is pure and stateless, so an Engine may be shared by concurrent requests.
package metrics

const (
	// DefaultGapThreshold is the silence, in seconds, above which the speaker is assumed to switch
	DefaultGapThreshold = 0.8
	// DefaultDominanceThreshold is the talk ratio above which a speaker is dominating
	DefaultDominanceThreshold = 0.7
	// DefaultMinQuestions is the question count below which engagement is considered low
	DefaultMinQuestions = 3
)

// Config holds the heuristic thresholds of the engine
type Config struct {
	GapThreshold       float64
	DominanceThreshold float64
	MinQuestions       int
}

// DefaultConfig returns the thresholds the engine is calibrated for
func DefaultConfig() Config {
	return Config{
		GapThreshold:       DefaultGapThreshold,
		DominanceThreshold: DefaultDominanceThreshold,
		MinQuestions:       DefaultMinQuestions,
	}
}
