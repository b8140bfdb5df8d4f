package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

func TestAssignSpeakers(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, AssignSpeakers(nil, DefaultGapThreshold))
	})

	t.Run("single segment is speaker A", func(t *testing.T) {
		turns := AssignSpeakers([]entities.Segment{{Start: 3, End: 4, Text: "hello"}}, DefaultGapThreshold)
		require.Len(t, turns, 1)
		assert.Equal(t, entities.SpeakerA, turns[0].Speaker)
	})

	t.Run("long gap flips speaker", func(t *testing.T) {
		segments := []entities.Segment{
			{Start: 0, End: 1, Text: "hi"},
			{Start: 1, End: 1.9, Text: "ok"},
			{Start: 5, End: 6, Text: "hey"},
		}
		turns := AssignSpeakers(segments, DefaultGapThreshold)
		require.Len(t, turns, 3)
		assert.Equal(t, entities.SpeakerA, turns[0].Speaker)
		assert.Equal(t, entities.SpeakerA, turns[1].Speaker)
		assert.Equal(t, entities.SpeakerB, turns[2].Speaker)
	})

	t.Run("gap equal to threshold keeps speaker", func(t *testing.T) {
		segments := []entities.Segment{
			{Start: 0, End: 1, Text: "one"},
			{Start: 1.5, End: 2, Text: "two"},
		}
		turns := AssignSpeakers(segments, 0.5)
		assert.Equal(t, entities.SpeakerA, turns[1].Speaker)
	})

	t.Run("alternates back to A", func(t *testing.T) {
		segments := []entities.Segment{
			{Start: 0, End: 1, Text: "a"},
			{Start: 3, End: 4, Text: "b"},
			{Start: 6, End: 7, Text: "c"},
		}
		turns := AssignSpeakers(segments, DefaultGapThreshold)
		assert.Equal(t, []entities.Speaker{entities.SpeakerA, entities.SpeakerB, entities.SpeakerA},
			[]entities.Speaker{turns[0].Speaker, turns[1].Speaker, turns[2].Speaker})
	})

	t.Run("trims text and keeps timestamps", func(t *testing.T) {
		turns := AssignSpeakers([]entities.Segment{{Start: 1.25, End: 2.5, Text: "  spaced out \n"}}, DefaultGapThreshold)
		assert.Equal(t, entities.Turn{Speaker: entities.SpeakerA, Start: 1.25, End: 2.5, Text: "spaced out"}, turns[0])
	})
}
