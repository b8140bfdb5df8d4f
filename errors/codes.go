package errors

import "strconv"

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_HTTP_OK           ErrorCode = 0
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1003
	ErrorCode_VALIDATION_FAILED ErrorCode = 1004

	ErrorCode_MEDIA_MISSING_FILENAME ErrorCode = 2000
	ErrorCode_MEDIA_UNSUPPORTED      ErrorCode = 2001
	ErrorCode_MEDIA_UPLOAD_FAILED    ErrorCode = 2002

	ErrorCode_AI_NO_SPEECH_DETECTED    ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED  ErrorCode = 3001
	ErrorCode_AI_CLASSIFICATION_FAILED ErrorCode = 3002
	ErrorCode_AI_SERVICE_UNAVAILABLE   ErrorCode = 3004

	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 5001
)

var ErrorCode_name = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:          "VALIDATION_FAILED",
	ErrorCode_MEDIA_MISSING_FILENAME:     "MEDIA_MISSING_FILENAME",
	ErrorCode_MEDIA_UNSUPPORTED:          "MEDIA_UNSUPPORTED",
	ErrorCode_MEDIA_UPLOAD_FAILED:        "MEDIA_UPLOAD_FAILED",
	ErrorCode_AI_NO_SPEECH_DETECTED:      "AI_NO_SPEECH_DETECTED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_CLASSIFICATION_FAILED:   "AI_CLASSIFICATION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := ErrorCode_name[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
