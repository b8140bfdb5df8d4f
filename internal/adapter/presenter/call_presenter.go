package presenter

import (
	"github.com/johnquangdev/call-analyzer/internal/adapter/dto/call"
	"github.com/johnquangdev/call-analyzer/internal/adapter/dto/common"
	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// ToAnalysisResponse converts a CallAnalysis entity to AnalysisResponse DTO
func ToAnalysisResponse(a *entities.CallAnalysis, audioURL string) *call.AnalysisResponse {
	if a == nil {
		return nil
	}

	m := a.Metrics()
	ratio := make(map[string]float64, len(m.TalkTimeRatio))
	for spk, v := range m.TalkTimeRatio {
		ratio[string(spk)] = v
	}

	return &call.AnalysisResponse{
		ID:        a.ID.String(),
		Filename:  a.Filename,
		Sentiment: string(a.Sentiment),
		Metrics: call.MetricsResponse{
			TalkTimeRatio:     ratio,
			NumQuestions:      m.NumQuestions,
			LongestMonologueS: m.LongestMonologueS,
			Insight:           m.Insight,
		},
		Source:           string(a.Source),
		Language:         a.Language,
		AudioURL:         audioURL,
		SegmentCount:     a.SegmentCount,
		ProcessingTimeMs: a.ProcessingTimeMs,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAnalysisListResponse converts a page of analyses
func ToAnalysisListResponse(analyses []*entities.CallAnalysis, total int64, page, pageSize int) *call.AnalysisListResponse {
	items := make([]*call.AnalysisResponse, len(analyses))
	for i, a := range analyses {
		items[i] = ToAnalysisResponse(a, "")
	}
	return &call.AnalysisListResponse{
		Analyses:   items,
		Pagination: common.NewPagination(page, pageSize, total),
	}
}
