package call

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	"github.com/johnquangdev/call-analyzer/internal/domain/repositories"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/metrics"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/storage"
	ucerrors "github.com/johnquangdev/call-analyzer/internal/usecase/errors"
	engine "github.com/johnquangdev/call-analyzer/internal/usecase/metrics"
	"github.com/johnquangdev/call-analyzer/internal/usecase/sentiment"
	"github.com/johnquangdev/call-analyzer/pkg/ai"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	statusSuccess = "success"
	statusFailed  = "failed"
	statusCached  = "cached"
)

// DefaultExtensions are the accepted audio formats
var DefaultExtensions = []string{".wav", ".mp3", ".m4a"}

// Deps are the collaborators of CallService. Repo, Cache and Storage are
// optional; a nil one switches the matching step off.
type Deps struct {
	Engine      *engine.Engine
	Sentiment   *sentiment.Analyzer
	Transcriber ai.Transcriber
	Repo        repositories.AnalysisRepository
	Cache       Cache
	Storage     AudioStore
	Logger      *zap.Logger
}

// Options tunes CallService
type Options struct {
	TempDir              string
	Extensions           []string
	CacheTTL             time.Duration
	RetryInitialInterval time.Duration
	RetryMaxElapsed      time.Duration // transcriber budget
	SentimentMaxElapsed  time.Duration // classifier budget, covers all chunks of one call
	AudioURLExpiry       time.Duration
}

// CallService handles call analysis business logic
type CallService struct {
	engine      *engine.Engine
	sentiment   *sentiment.Analyzer
	transcriber ai.Transcriber
	repo        repositories.AnalysisRepository
	cache       Cache
	storage     AudioStore
	logger      *zap.Logger
	opts        Options
	now         func() time.Time
}

// NewCallService creates a new call service
func NewCallService(deps Deps, opts Options) *CallService {
	if deps.Engine == nil {
		deps.Engine = engine.NewEngine(engine.DefaultConfig())
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = time.Second
	}
	if opts.RetryMaxElapsed <= 0 {
		opts.RetryMaxElapsed = 30 * time.Second
	}
	if opts.SentimentMaxElapsed <= 0 {
		opts.SentimentMaxElapsed = 10 * time.Second
	}
	if opts.AudioURLExpiry <= 0 {
		opts.AudioURLExpiry = 15 * time.Minute
	}
	return &CallService{
		engine:      deps.Engine,
		sentiment:   deps.Sentiment,
		transcriber: deps.Transcriber,
		repo:        deps.Repo,
		cache:       deps.Cache,
		storage:     deps.Storage,
		logger:      deps.Logger,
		opts:        opts,
		now:         time.Now,
	}
}

var _ Service = (*CallService)(nil)

// AnalyzeAudio transcribes an uploaded recording and analyzes it
func (s *CallService) AnalyzeAudio(ctx context.Context, input AudioInput) (*entities.CallAnalysis, error) {
	started := s.now()
	source := string(entities.AnalysisSourceAudio)

	ext, err := s.checkFilename(input.Filename)
	if err != nil {
		return nil, err
	}

	// Spool the upload so the transcriber can read it from disk
	tmpPath, digest, size, err := s.spool(input.Reader, ext)
	if err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	defer os.Remove(tmpPath)

	if cached := s.lookupAudio(ctx, digest); cached != nil {
		metrics.RecordAnalysis(source, statusCached)
		s.logger.Info("✅ Returning cached analysis",
			zap.String("analysis_id", cached.ID.String()),
			zap.String("sha256", digest),
		)
		cached.Filename = input.Filename
		return cached, nil
	}

	objectName := s.archive(ctx, tmpPath, digest, ext, size)

	transcription, err := s.transcribe(ctx, tmpPath)
	if err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}
	if len(transcription.Segments) == 0 {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, ucerrors.ErrNoSpeech
	}

	segments := toEntitySegments(transcription.Segments)
	analysis, err := s.analyze(ctx, entities.AnalysisSourceAudio, input.Filename, segments, "")
	if err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}
	analysis.AudioSHA256 = digest
	analysis.AudioObject = objectName
	analysis.Language = transcription.Language

	if err := s.finish(ctx, analysis, started); err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}
	metrics.RecordAnalysis(source, statusSuccess)
	return analysis, nil
}

// AnalyzeTranscript analyzes already segmented text
func (s *CallService) AnalyzeTranscript(ctx context.Context, input TranscriptInput) (*entities.CallAnalysis, error) {
	started := s.now()
	source := string(entities.AnalysisSourceTranscript)

	if err := engine.ValidateSegments(input.Segments); err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}

	var label entities.SentimentLabel
	if strings.TrimSpace(input.Sentiment) != "" {
		label = entities.ParseSentimentLabel(input.Sentiment)
	}

	analysis, err := s.analyze(ctx, entities.AnalysisSourceTranscript, input.Filename, input.Segments, label)
	if err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}

	if err := s.finish(ctx, analysis, started); err != nil {
		metrics.RecordAnalysis(source, statusFailed)
		return nil, err
	}
	metrics.RecordAnalysis(source, statusSuccess)
	return analysis, nil
}

// GetAnalysis retrieves a stored analysis by ID, cache first
func (s *CallService) GetAnalysis(ctx context.Context, id uuid.UUID) (*entities.CallAnalysis, error) {
	if cached := s.cacheGet(ctx, analysisKey(id)); cached != nil {
		return cached, nil
	}
	if s.repo == nil {
		return nil, ucerrors.ErrAnalysisNotFound
	}

	analysis, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ucerrors.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find: %w", ucerrors.ErrPersistence, err)
	}
	return analysis, nil
}

// ListAnalyses retrieves stored analyses, newest first
func (s *CallService) ListAnalyses(ctx context.Context, input ListInput) ([]*entities.CallAnalysis, int64, error) {
	if s.repo == nil {
		return nil, 0, ucerrors.ErrHistoryDisabled
	}

	page, pageSize := normalizePage(input.Page, input.PageSize)
	analyses, total, err := s.repo.List(ctx, repositories.AnalysisFilters{
		Source: input.Source,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list: %w", ucerrors.ErrPersistence, err)
	}
	return analyses, total, nil
}

// AudioURL returns a presigned link of the archived recording, or "" when
// the analysis has no archived audio
func (s *CallService) AudioURL(ctx context.Context, analysis *entities.CallAnalysis) (string, error) {
	if s.storage == nil || analysis == nil || analysis.AudioObject == "" {
		return "", nil
	}
	return s.storage.GetFileURL(ctx, analysis.AudioObject, s.opts.AudioURLExpiry)
}

// analyze runs sentiment and the metrics engine. An empty label is
// computed from the segment texts.
func (s *CallService) analyze(ctx context.Context, source entities.AnalysisSource, filename string, segments []entities.Segment, label entities.SentimentLabel) (*entities.CallAnalysis, error) {
	if label == "" {
		start := s.now()
		var err error
		label, err = s.classify(ctx, segments)
		metrics.ObserveStage(metrics.StageSentiment, start)
		if err != nil {
			return nil, err
		}
	}

	start := s.now()
	result, err := s.engine.Analyze(segments, label)
	metrics.ObserveStage(metrics.StageMetrics, start)
	if err != nil {
		return nil, err
	}
	metrics.RecordInsight(string(result.InsightKind))

	return entities.NewCallAnalysis(source, filename, label, segments, result), nil
}

func (s *CallService) classify(ctx context.Context, segments []entities.Segment) (entities.SentimentLabel, error) {
	if s.sentiment == nil {
		return entities.SentimentNeutral, nil
	}
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			texts = append(texts, t)
		}
	}

	// analyzer errors already wrap ErrClassification
	var label entities.SentimentLabel
	err := s.withRetry(ctx, "sentiment", s.opts.SentimentMaxElapsed, func() error {
		var err error
		label, err = s.sentiment.Analyze(ctx, texts)
		return err
	})
	if err != nil {
		return "", err
	}
	return label, nil
}

func (s *CallService) transcribe(ctx context.Context, path string) (*ai.Transcription, error) {
	if s.transcriber == nil {
		return nil, ucerrors.ErrTranscriberUnavailable
	}

	start := s.now()
	defer metrics.ObserveStage(metrics.StageTranscribe, start)

	var out *ai.Transcription
	err := s.withRetry(ctx, "transcriber", s.opts.RetryMaxElapsed, func() error {
		var err error
		out, err = s.transcriber.Transcribe(ctx, path)
		return err
	})
	if errors.Is(err, ai.ErrNotConfigured) {
		s.logger.Error("❌ Transcriber is not configured", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ucerrors.ErrTranscriberUnavailable, err)
	}
	if err != nil {
		s.logger.Error("❌ Transcription failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ucerrors.ErrTranscription, err)
	}
	return out, nil
}

// finish stamps timing, then persists and caches the analysis
func (s *CallService) finish(ctx context.Context, analysis *entities.CallAnalysis, started time.Time) error {
	analysis.ProcessingTimeMs = s.now().Sub(started).Milliseconds()

	if s.repo != nil {
		start := s.now()
		err := s.repo.Create(ctx, analysis)
		metrics.ObserveStage(metrics.StagePersist, start)
		if err != nil {
			return fmt.Errorf("%w: create: %w", ucerrors.ErrPersistence, err)
		}
	}

	s.cacheSet(ctx, analysisKey(analysis.ID), analysis)
	if analysis.AudioSHA256 != "" {
		s.cacheSet(ctx, audioKey(analysis.AudioSHA256), analysis)
	}

	s.logger.Info("✅ Call analyzed",
		zap.String("analysis_id", analysis.ID.String()),
		zap.String("source", string(analysis.Source)),
		zap.String("sentiment", string(analysis.Sentiment)),
		zap.String("insight_kind", string(analysis.InsightKind)),
		zap.Int("segments", analysis.SegmentCount),
		zap.Int64("processing_time_ms", analysis.ProcessingTimeMs),
	)
	return nil
}

// checkFilename returns the lower-cased extension of an accepted upload
func (s *CallService) checkFilename(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ucerrors.ErrMissingFilename
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.opts.Extensions {
		if ext == strings.ToLower(allowed) {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ucerrors.ErrUnsupportedAudio, ext)
}

// spool copies r to a temp file while hashing it
func (s *CallService) spool(r io.Reader, ext string) (path, digest string, size int64, err error) {
	if r == nil {
		return "", "", 0, errors.New("empty upload")
	}
	f, err := os.CreateTemp(s.opts.TempDir, "call-*"+ext)
	if err != nil {
		return "", "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	size, err = io.Copy(io.MultiWriter(f, h), r)
	if err != nil {
		os.Remove(f.Name())
		return "", "", 0, err
	}
	return f.Name(), hex.EncodeToString(h.Sum(nil)), size, nil
}

// archive uploads the recording; failures are logged and ignored
func (s *CallService) archive(ctx context.Context, path, digest, ext string, size int64) string {
	if s.storage == nil {
		return ""
	}
	start := s.now()
	defer metrics.ObserveStage(metrics.StageArchive, start)

	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("⚠️ Could not reopen upload for archiving", zap.Error(err))
		return ""
	}
	defer f.Close()

	objectName := storage.AudioObjectName(digest, ext, s.now())
	if err := s.storage.UploadFile(ctx, objectName, f, size, storage.ContentType(ext)); err != nil {
		s.logger.Warn("⚠️ Failed to archive audio",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return ""
	}
	return objectName
}

// lookupAudio finds a previous analysis of the same audio content
func (s *CallService) lookupAudio(ctx context.Context, digest string) *entities.CallAnalysis {
	if cached := s.cacheGet(ctx, audioKey(digest)); cached != nil {
		return cached
	}
	if s.repo == nil {
		return nil
	}
	analysis, err := s.repo.FindByAudioHash(ctx, digest)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("⚠️ Audio hash lookup failed", zap.Error(err))
		}
		return nil
	}
	return analysis
}

func (s *CallService) cacheGet(ctx context.Context, key string) *entities.CallAnalysis {
	if s.cache == nil {
		return nil
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("⚠️ Cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var analysis entities.CallAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.logger.Warn("⚠️ Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("⚠️ Cache delete failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	return &analysis
}

func (s *CallService) cacheSet(ctx context.Context, key string, analysis *entities.CallAnalysis) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(analysis)
	if err != nil {
		s.logger.Warn("⚠️ Could not encode analysis for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(b), s.opts.CacheTTL); err != nil {
		s.logger.Warn("⚠️ Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func analysisKey(id uuid.UUID) string { return "analysis:" + id.String() }

func audioKey(digest string) string { return "audio:" + digest }

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func toEntitySegments(in []ai.Segment) []entities.Segment {
	out := make([]entities.Segment, len(in))
	for i, s := range in {
		out[i] = entities.Segment{Start: s.Start, End: s.End, Text: s.Text}
	}
	return out
}
