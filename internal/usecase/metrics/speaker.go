package metrics

import (
	"strings"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// AssignSpeakers labels each segment A or B using a silence-gap heuristic.
// A pause longer than gapThreshold between two segments flips the speaker.
// This is a two-state alternation only; there is no acoustic signal.
func AssignSpeakers(segments []entities.Segment, gapThreshold float64) []entities.Turn {
	turns := make([]entities.Turn, 0, len(segments))
	speaker := entities.SpeakerA
	var lastEnd float64
	hasLast := false

	for _, seg := range segments {
		if hasLast && seg.Start-lastEnd > gapThreshold {
			speaker = speaker.Other()
		}

		turns = append(turns, entities.Turn{
			Speaker: speaker,
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
		})
		lastEnd = seg.End
		hasLast = true
	}

	return turns
}
