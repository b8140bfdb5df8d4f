package handler

import (
	stdErrors "errors"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/errors"
	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/call-analyzer/internal/usecase/errors"
	pkgvalidator "github.com/johnquangdev/call-analyzer/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID reads X-Request-ID from the request, or the one generated
// by the request id middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps use case errors to their HTTP representation
func toAppError(err error, filename string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var verr *entities.ValidationError
	switch {
	case stdErrors.As(err, &verr):
		return errors.ErrValidationFailed(verr.Path(), err)
	case stdErrors.Is(err, usecaseErrors.ErrMissingFilename):
		return errors.ErrMissingFilename()
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudio):
		return errors.ErrUnsupportedMedia(filepath.Ext(filename))
	case stdErrors.Is(err, usecaseErrors.ErrNoSpeech):
		return errors.ErrNoSpeechDetected()
	case stdErrors.Is(err, usecaseErrors.ErrTranscriberUnavailable):
		return errors.ErrAIServiceUnavailable("transcriber")
	case stdErrors.Is(err, usecaseErrors.ErrTranscription):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrClassification):
		return errors.ErrAIClassificationFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisNotFound):
		return errors.ErrNotFound("Analysis")
	case stdErrors.Is(err, usecaseErrors.ErrHistoryDisabled):
		return errors.ErrHistoryUnavailable(err)
	case stdErrors.Is(err, usecaseErrors.ErrPersistence):
		return errors.ErrDBQueryFailed("call_analyses", err)
	default:
		return errors.ErrInternal(err)
	}
}

// bindError maps echo binding and validator failures
func bindError(err error) error {
	if field := pkgvalidator.FieldPath(err); field != "" {
		return errors.ErrValidationFailed(field, err)
	}
	return errors.ErrInvalidPayload()
}
