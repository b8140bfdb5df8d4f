package sentiment

import "github.com/johnquangdev/call-analyzer/internal/domain/entities"

// MajorityVote reduces per-chunk labels to one overall label.
// Only POSITIVE and NEGATIVE votes count; a tie, including no votes, is NEUTRAL.
func MajorityVote(labels []entities.SentimentLabel) entities.SentimentLabel {
	positive, negative := 0, 0
	for _, l := range labels {
		switch l {
		case entities.SentimentPositive:
			positive++
		case entities.SentimentNegative:
			negative++
		}
	}

	switch {
	case positive > negative:
		return entities.SentimentPositive
	case negative > positive:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}
