package metrics

import (
	"regexp"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// questionPattern matches a literal '?' or an interrogative lead word.
// It is deliberately loose: "I can do that" counts as a question.
var questionPattern = regexp.MustCompile(
	`(?i)(\?|\b(what|why|how|when|where|who|which|can|could|would|` +
		`should|do|did|does|is|are|am)\b)`,
)

// CountQuestions returns the number of turns containing at least one question indicator
func CountQuestions(turns []entities.Turn) int {
	n := 0
	for _, t := range turns {
		if questionPattern.MatchString(t.Text) {
			n++
		}
	}
	return n
}
