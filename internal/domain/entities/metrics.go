package entities

// TalkRatio maps each speaker to its weighted share of the conversation
type TalkRatio map[Speaker]float64

// InsightKind names the branch of the coaching decision tree that fired
type InsightKind string

const (
	InsightDominance         InsightKind = "dominance"
	InsightLowEngagement     InsightKind = "low_engagement"
	InsightNegativeSentiment InsightKind = "negative_sentiment"
	InsightBalanced          InsightKind = "balanced"
)

// MetricsResult is the call-quality summary for one transcript
type MetricsResult struct {
	TalkTimeRatio     TalkRatio   `json:"talk_time_ratio"`
	NumQuestions      int         `json:"num_questions"`
	LongestMonologueS float64     `json:"longest_monologue_s"`
	Insight           string      `json:"insight"`
	InsightKind       InsightKind `json:"-"`
}
