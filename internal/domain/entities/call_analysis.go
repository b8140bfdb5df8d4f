package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisSource tells how the transcript of an analysis was obtained
type AnalysisSource string

const (
	AnalysisSourceAudio      AnalysisSource = "audio"      // Uploaded audio, transcribed by the ASR provider
	AnalysisSourceTranscript AnalysisSource = "transcript" // Segments supplied by the caller
)

// CallAnalysis is the stored result of one analyzed call
type CallAnalysis struct {
	ID                uuid.UUID                     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Filename          string                        `json:"filename" gorm:"type:varchar(255)"`
	Source            AnalysisSource                `json:"source" gorm:"type:varchar(20);not null;index"`
	AudioSHA256       string                        `json:"audio_sha256,omitempty" gorm:"type:varchar(64);index"`
	AudioObject       string                        `json:"audio_object,omitempty" gorm:"type:text"`
	Language          string                        `json:"language,omitempty" gorm:"type:varchar(20)"`
	Sentiment         SentimentLabel                `json:"sentiment" gorm:"type:varchar(16);not null"`
	TalkTimeRatio     datatypes.JSONType[TalkRatio] `json:"talk_time_ratio" gorm:"type:jsonb"`
	NumQuestions      int                           `json:"num_questions"`
	LongestMonologueS float64                       `json:"longest_monologue_s"`
	Insight           string                        `json:"insight" gorm:"type:text"`
	InsightKind       InsightKind                   `json:"insight_kind" gorm:"type:varchar(32)"`
	SegmentCount      int                           `json:"segment_count"`
	Segments          []Segment                     `json:"segments,omitempty" gorm:"type:jsonb;serializer:json"`
	ProcessingTimeMs  int64                         `json:"processing_time_ms"`
	CreatedAt         time.Time                     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time                     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CallAnalysis) TableName() string {
	return "call_analyses"
}

// NewCallAnalysis builds a record from a metrics result
func NewCallAnalysis(source AnalysisSource, filename string, sentiment SentimentLabel, segments []Segment, m *MetricsResult) *CallAnalysis {
	now := time.Now()
	return &CallAnalysis{
		ID:                uuid.New(),
		Filename:          filename,
		Source:            source,
		Sentiment:         sentiment,
		TalkTimeRatio:     datatypes.NewJSONType(m.TalkTimeRatio),
		NumQuestions:      m.NumQuestions,
		LongestMonologueS: m.LongestMonologueS,
		Insight:           m.Insight,
		InsightKind:       m.InsightKind,
		SegmentCount:      len(segments),
		Segments:          segments,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Metrics rebuilds the metrics view of the record
func (a *CallAnalysis) Metrics() MetricsResult {
	return MetricsResult{
		TalkTimeRatio:     a.TalkTimeRatio.Data(),
		NumQuestions:      a.NumQuestions,
		LongestMonologueS: a.LongestMonologueS,
		Insight:           a.Insight,
		InsightKind:       a.InsightKind,
	}
}
