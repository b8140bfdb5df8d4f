package storage

import (
	"path"
	"strings"
	"time"
)

// AudioObjectName builds the object key of an archived recording.
// Keys are partitioned by upload day and named by content hash, so the same
// audio archived twice on one day maps to one object, e.g. audio/2026/10/16/<sha256>.wav
func AudioObjectName(sha256Hex, ext string, at time.Time) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join("audio", at.UTC().Format("2006/01/02"), sha256Hex+ext)
}

// ContentType maps an audio extension to its MIME type
func ContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav":
		return "audio/wav"
	case "mp3":
		return "audio/mpeg"
	case "m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
