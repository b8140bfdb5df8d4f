package metrics

import (
	"strings"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

const (
	durationWeight = 0.6
	wordsWeight    = 0.4

	// denominator used when a total is zero
	zeroFloor = 1e-6
)

// TalkTimeRatio computes each speaker's share as 60% speaking duration and 40% word count.
// Blending keeps slow talkers and fast talkers from skewing the result.
func TalkTimeRatio(turns []entities.Turn) entities.TalkRatio {
	duration := map[entities.Speaker]float64{entities.SpeakerA: 0, entities.SpeakerB: 0}
	words := map[entities.Speaker]int{entities.SpeakerA: 0, entities.SpeakerB: 0}

	for _, t := range turns {
		duration[t.Speaker] += t.Duration()
		words[t.Speaker] += len(strings.Fields(t.Text))
	}

	totalTime := duration[entities.SpeakerA] + duration[entities.SpeakerB]
	if totalTime == 0 {
		totalTime = zeroFloor
	}
	totalWords := float64(words[entities.SpeakerA] + words[entities.SpeakerB])
	if totalWords == 0 {
		totalWords = zeroFloor
	}

	ratio := make(entities.TalkRatio, 2)
	for _, spk := range []entities.Speaker{entities.SpeakerA, entities.SpeakerB} {
		ratio[spk] = durationWeight*(duration[spk]/totalTime) +
			wordsWeight*(float64(words[spk])/totalWords)
	}
	return ratio
}
