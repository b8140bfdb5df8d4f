package call

import (
	"time"

	"github.com/johnquangdev/call-analyzer/internal/adapter/dto/common"
)

// MetricsResponse is the conversation metrics block
type MetricsResponse struct {
	TalkTimeRatio     map[string]float64 `json:"talk_time_ratio"`
	NumQuestions      int                `json:"num_questions"`
	LongestMonologueS float64            `json:"longest_monologue_s"`
	Insight           string             `json:"insight"`
}

// AnalysisResponse represents one analyzed call
type AnalysisResponse struct {
	ID               string          `json:"id"`
	Filename         string          `json:"filename"`
	Sentiment        string          `json:"sentiment"`
	Metrics          MetricsResponse `json:"metrics"`
	Source           string          `json:"source"`
	Language         string          `json:"language,omitempty"`
	AudioURL         string          `json:"audio_url,omitempty"`
	SegmentCount     int             `json:"segment_count"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AnalysisListResponse represents a page of analyses
type AnalysisListResponse struct {
	Analyses   []*AnalysisResponse        `json:"analyses"`
	Pagination *common.PaginationResponse `json:"pagination"`
}
