package metrics

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

const (
	msgLowEngagement = "Few questions were asked. Recommend using more open-ended " +
		"questions to improve engagement."
	msgNegativeSentiment = "Overall negative sentiment detected. Address objections " +
		"proactively and clarify next steps."
	msgBalanced = "Balanced interaction with healthy engagement. " +
		"Consider summarizing agreed points and next steps."
)

// Insight walks the coaching decision tree; the first matching rule wins.
func (c Config) Insight(ratio entities.TalkRatio, numQuestions int, sentiment string) (entities.InsightKind, string) {
	a, b := ratio[entities.SpeakerA], ratio[entities.SpeakerB]
	if a > c.DominanceThreshold || b > c.DominanceThreshold {
		dominant := entities.SpeakerB
		if a > b {
			dominant = entities.SpeakerA
		}
		return entities.InsightDominance, fmt.Sprintf(
			"Speaker %s is dominating (~%.1f%%). Encourage the other speaker to participate more.",
			dominant, ratio[dominant]*100,
		)
	}

	if numQuestions < c.MinQuestions {
		return entities.InsightLowEngagement, msgLowEngagement
	}

	if strings.EqualFold(sentiment, string(entities.SentimentNegative)) {
		return entities.InsightNegativeSentiment, msgNegativeSentiment
	}

	return entities.InsightBalanced, msgBalanced
}

// GenerateInsight maps metrics and an overall sentiment label to one coaching sentence
// using the default thresholds.
func GenerateInsight(ratio entities.TalkRatio, numQuestions int, sentiment string) string {
	_, msg := DefaultConfig().Insight(ratio, numQuestions, sentiment)
	return msg
}
