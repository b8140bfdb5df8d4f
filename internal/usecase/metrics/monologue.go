package metrics

import (
	"math"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// LongestMonologue returns the longest span, in seconds, of consecutive turns by one speaker.
// The span runs from the first turn's start to the last turn's end, so pauses inside a run count.
func LongestMonologue(turns []entities.Turn) float64 {
	if len(turns) == 0 {
		return 0
	}

	longest := 0.0
	current := turns[0].Speaker
	runStart, runEnd := turns[0].Start, turns[0].End

	for _, t := range turns[1:] {
		if t.Speaker != current {
			longest = math.Max(longest, runEnd-runStart)
			current = t.Speaker
			runStart = t.Start
		}
		runEnd = t.End
	}

	return math.Max(longest, runEnd-runStart)
}
