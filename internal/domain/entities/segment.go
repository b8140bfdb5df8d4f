package entities

// Segment is a timestamped span of transcribed speech, in seconds from the start of the audio
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Speaker identifies one side of a two-party call
type Speaker string

const (
	SpeakerA Speaker = "A"
	SpeakerB Speaker = "B"
)

// Other returns the opposite speaker
func (s Speaker) Other() Speaker {
	if s == SpeakerA {
		return SpeakerB
	}
	return SpeakerA
}

// Turn is a segment annotated with the inferred speaker
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// Duration returns End - Start
func (t Turn) Duration() float64 {
	return t.End - t.Start
}
