package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/errors"
	callDTO "github.com/johnquangdev/call-analyzer/internal/adapter/dto/call"
	"github.com/johnquangdev/call-analyzer/internal/adapter/presenter"
	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	callUsecase "github.com/johnquangdev/call-analyzer/internal/usecase/call"
)

// CallHandler handles call analysis HTTP requests
type CallHandler struct {
	svc    callUsecase.Service
	logger *zap.Logger
}

// NewCallHandler creates a new call handler
func NewCallHandler(svc callUsecase.Service, logger *zap.Logger) *CallHandler {
	return &CallHandler{svc: svc, logger: logger}
}

// AnalyzeCall handles POST /analyze-call
// @Summary      Analyze a call recording
// @Description  Transcribes an uploaded recording, then computes sentiment, talk-time ratio, question count, longest monologue and a coaching insight
// @Tags         Calls
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Call recording (wav, mp3 or m4a)"
// @Success      200   {object}  call.AnalysisResponse  "Analysis result"
// @Failure      400   {object}  map[string]interface{}  "Missing file or unsupported format"
// @Failure      422   {object}  map[string]interface{}  "No speech detected"
// @Failure      500   {object}  map[string]interface{}  "Transcription or classification failed"
// @Router       /analyze-call [post]
func (h *CallHandler) AnalyzeCall(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field \"file\" is required"))
	}
	if fh.Filename == "" {
		return HandleError(h.logger, c, errors.ErrMissingFilename())
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrUploadFailed(err))
	}
	defer src.Close()

	analysis, err := h.svc.AnalyzeAudio(c.Request().Context(), callUsecase.AudioInput{
		Filename: fh.Filename,
		Reader:   src,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, fh.Filename))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(analysis, h.audioURL(c, analysis)))
}

// AnalyzeTranscript handles POST /analyze-transcript
// @Summary      Analyze a transcript
// @Description  Computes call metrics from already transcribed segments. Sentiment is classified when not supplied.
// @Tags         Calls
// @Accept       json
// @Produce      json
// @Param        request  body      call.AnalyzeTranscriptRequest  true  "Transcript segments"
// @Success      200      {object}  call.AnalysisResponse  "Analysis result"
// @Failure      400      {object}  map[string]interface{}  "Invalid payload or malformed segment"
// @Failure      500      {object}  map[string]interface{}  "Classification failed"
// @Router       /analyze-transcript [post]
func (h *CallHandler) AnalyzeTranscript(c echo.Context) error {
	var req callDTO.AnalyzeTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	// labels are case-insensitive
	req.Sentiment = strings.ToUpper(strings.TrimSpace(req.Sentiment))
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, bindError(err))
	}

	segments := make([]entities.Segment, len(req.Segments))
	for i, s := range req.Segments {
		segments[i] = entities.Segment{Start: *s.Start, End: *s.End, Text: *s.Text}
	}

	analysis, err := h.svc.AnalyzeTranscript(c.Request().Context(), callUsecase.TranscriptInput{
		Filename:  req.Filename,
		Segments:  segments,
		Sentiment: req.Sentiment,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.Filename))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(analysis, ""))
}

// GetAnalysis handles GET /analyses/:id
// @Summary      Get an analysis
// @Description  Returns a stored call analysis with a temporary link to the archived audio
// @Tags         Calls
// @Produce      json
// @Param        id   path      string  true  "Analysis ID (UUID)"
// @Success      200  {object}  call.AnalysisResponse  "Analysis"
// @Failure      400  {object}  map[string]interface{}  "Invalid analysis ID"
// @Failure      404  {object}  map[string]interface{}  "Analysis not found"
// @Router       /analyses/{id} [get]
func (h *CallHandler) GetAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid analysis ID"))
	}

	analysis, err := h.svc.GetAnalysis(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(analysis, h.audioURL(c, analysis)))
}

// ListAnalyses handles GET /analyses
// @Summary      List analyses
// @Description  Lists stored analyses, newest first
// @Tags         Calls
// @Produce      json
// @Param        source     query     string  false  "Filter by source (audio, transcript)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        page_size  query     int     false  "Page size (default 20, max 100)"
// @Success      200        {object}  call.AnalysisListResponse  "Analyses"
// @Failure      400        {object}  map[string]interface{}  "Invalid query"
// @Failure      503        {object}  map[string]interface{}  "History disabled"
// @Router       /analyses [get]
func (h *CallHandler) ListAnalyses(c echo.Context) error {
	var req callDTO.ListAnalysesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, bindError(err))
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	input := callUsecase.ListInput{Page: req.Page, PageSize: req.PageSize}
	if req.Source != "" {
		source := entities.AnalysisSource(req.Source)
		input.Source = &source
	}

	analyses, total, err := h.svc.ListAnalyses(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisListResponse(analyses, total, req.Page, req.PageSize))
}

// audioURL presigns the archived recording; failures only drop the link
func (h *CallHandler) audioURL(c echo.Context, analysis *entities.CallAnalysis) string {
	url, err := h.svc.AudioURL(c.Request().Context(), analysis)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("failed to presign audio URL",
				zap.String("analysis_id", analysis.ID.String()),
				zap.Error(err),
			)
		}
		return ""
	}
	return url
}
