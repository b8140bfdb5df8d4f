package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/errors"
)

// GetAudio handles GET /analyses/:id/audio
// @Summary      Download the archived recording
// @Description  Redirects to a temporary presigned link of the audio behind an analysis
// @Tags         Calls
// @Param        id   path  string  true  "Analysis ID (UUID)"
// @Success      302  "Redirect to the recording"
// @Failure      400  {object}  map[string]interface{}  "Invalid analysis ID"
// @Failure      404  {object}  map[string]interface{}  "Analysis or recording not found"
// @Failure      500  {object}  map[string]interface{}  "Presign failed"
// @Router       /analyses/{id}/audio [get]
func (h *CallHandler) GetAudio(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid analysis ID"))
	}

	ctx := c.Request().Context()
	analysis, err := h.svc.GetAnalysis(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	url, err := h.svc.AudioURL(ctx, analysis)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}
	if url == "" {
		return HandleError(h.logger, c, errors.ErrNotFound("Recording"))
	}

	if h.logger != nil {
		h.logger.Debug("redirecting to archived audio",
			zap.String("analysis_id", id.String()),
			zap.String("object", analysis.AudioObject),
		)
	}
	return c.Redirect(http.StatusFound, url)
}
