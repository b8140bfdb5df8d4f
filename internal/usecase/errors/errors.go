package errors

import "errors"

// Media errors
var (
	ErrMissingFilename  = errors.New("uploaded file has no filename")
	ErrUnsupportedAudio = errors.New("unsupported audio format")
)

// AI errors
var (
	ErrNoSpeech               = errors.New("no speech detected")
	ErrTranscription          = errors.New("transcription failed")
	ErrClassification         = errors.New("sentiment classification failed")
	ErrTranscriberUnavailable = errors.New("no transcriber available")
)

// Analysis errors
var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrHistoryDisabled  = errors.New("analysis history requires a database")
	ErrPersistence      = errors.New("analysis store failed")
)
