package call

// SegmentRequest is one timed transcript segment in seconds.
// Pointers make a missing field distinguishable from zero.
type SegmentRequest struct {
	Start *float64 `json:"start" validate:"required"`
	End   *float64 `json:"end" validate:"required"`
	Text  *string  `json:"text" validate:"required"`
}

// AnalyzeTranscriptRequest represents the request to analyze a transcript
type AnalyzeTranscriptRequest struct {
	Filename  string           `json:"filename,omitempty" validate:"omitempty,max=255"`
	Sentiment string           `json:"sentiment,omitempty" validate:"omitempty,oneof=POSITIVE NEGATIVE NEUTRAL"`
	Segments  []SegmentRequest `json:"segments" validate:"required,dive"`
}

// ListAnalysesRequest represents query parameters for listing analyses
type ListAnalysesRequest struct {
	Source   string `query:"source" json:"source" validate:"omitempty,oneof=audio transcript"`
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
}
