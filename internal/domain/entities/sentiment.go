package entities

import "strings"

// SentimentLabel is the overall sentiment of a call
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// ParseSentimentLabel normalizes a label case-insensitively; unknown values map to NEUTRAL
func ParseSentimentLabel(s string) SentimentLabel {
	switch SentimentLabel(strings.ToUpper(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// IsValid reports whether the label is one of the three known values
func (l SentimentLabel) IsValid() bool {
	return l == SentimentPositive || l == SentimentNegative || l == SentimentNeutral
}
