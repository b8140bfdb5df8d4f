package call

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	"github.com/johnquangdev/call-analyzer/internal/domain/repositories"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/cache"
	ucerrors "github.com/johnquangdev/call-analyzer/internal/usecase/errors"
	"github.com/johnquangdev/call-analyzer/internal/usecase/sentiment"
	"github.com/johnquangdev/call-analyzer/pkg/ai"
)

// --- fakes ---

type fakeTranscriber struct {
	mu     sync.Mutex
	calls  int
	errs   []error // returned in order before succeeding
	result *ai.Transcription
	seen   []byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (*ai.Transcription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seen, _ = os.ReadFile(path)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.result, nil
}

type fakeClassifier struct {
	mu    sync.Mutex
	calls int
	label string
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.label, f.err
}

type fakeRepo struct {
	mu      sync.Mutex
	items   []*entities.CallAnalysis
	err     error
	readErr error
}

func (r *fakeRepo) Create(_ context.Context, a *entities.CallAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, a)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.CallAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRepo) FindByAudioHash(_ context.Context, sha string) (*entities.CallAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.AudioSHA256 == sha {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, f repositories.AnalysisFilters) ([]*entities.CallAnalysis, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, 0, r.readErr
	}
	var out []*entities.CallAnalysis
	for _, a := range r.items {
		if f.Source == nil || a.Source == *f.Source {
			out = append(out, a)
		}
	}
	total := int64(len(out))
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

type fakeStore struct {
	objects map[string][]byte
	err     error
}

func (s *fakeStore) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if s.err != nil {
		return s.err
	}
	b, _ := io.ReadAll(r)
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[name] = b
	return nil
}

func (s *fakeStore) GetFileURL(_ context.Context, name string, _ time.Duration) (string, error) {
	return "https://minio.local/call-audio/" + name + "?sig=x", nil
}

// --- helpers ---

func sampleTranscription() *ai.Transcription {
	return &ai.Transcription{
		Language: "en",
		Segments: []ai.Segment{
			{Start: 0, End: 4, Text: "Hello, thanks for calling. How can I help you today?"},
			{Start: 5, End: 7, Text: "My internet is down."},
			{Start: 7.5, End: 10, Text: "I see. When did it start?"},
		},
	}
}

type harness struct {
	svc         *CallService
	transcriber *fakeTranscriber
	classifier  *fakeClassifier
	repo        *fakeRepo
	store       *fakeStore
	cache       *cache.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		transcriber: &fakeTranscriber{result: sampleTranscription()},
		classifier:  &fakeClassifier{label: "positive"},
		repo:        &fakeRepo{},
		store:       &fakeStore{},
		cache:       cache.NewMemoryStore(),
	}
	t.Cleanup(func() { h.cache.Close() })

	h.svc = NewCallService(Deps{
		Sentiment:   sentiment.NewAnalyzer(h.classifier, sentiment.Options{}, nil),
		Transcriber: h.transcriber,
		Repo:        h.repo,
		Cache:       h.cache,
		Storage:     h.store,
	}, Options{
		TempDir:              t.TempDir(),
		RetryInitialInterval: time.Millisecond,
		RetryMaxElapsed:      200 * time.Millisecond,
		SentimentMaxElapsed:  200 * time.Millisecond,
	})
	return h
}

func audio(name, body string) AudioInput {
	return AudioInput{Filename: name, Reader: strings.NewReader(body)}
}

// --- tests ---

func TestAnalyzeAudio_Success(t *testing.T) {
	h := newHarness(t)

	got, err := h.svc.AnalyzeAudio(context.Background(), audio("call.WAV", "RIFF-audio"))
	require.NoError(t, err)

	assert.Equal(t, "call.WAV", got.Filename)
	assert.Equal(t, entities.AnalysisSourceAudio, got.Source)
	assert.Equal(t, entities.SentimentPositive, got.Sentiment)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, 3, got.SegmentCount)
	assert.Equal(t, 3, got.NumQuestions)
	assert.Len(t, got.AudioSHA256, 64)
	assert.NotEmpty(t, got.Insight)

	assert.Equal(t, []byte("RIFF-audio"), h.transcriber.seen)
	assert.Equal(t, 3, h.classifier.calls)
	require.Len(t, h.repo.items, 1)
	assert.Equal(t, got.ID, h.repo.items[0].ID)

	require.Contains(t, h.store.objects, got.AudioObject)
	assert.True(t, strings.HasSuffix(got.AudioObject, got.AudioSHA256+".wav"))
	assert.Equal(t, []byte("RIFF-audio"), h.store.objects[got.AudioObject])

	url, err := h.svc.AudioURL(context.Background(), got)
	require.NoError(t, err)
	assert.Contains(t, url, got.AudioObject)
}

func TestAnalyzeAudio_RemovesTempFile(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.mp3", "data"))
	require.NoError(t, err)

	entries, err := os.ReadDir(h.svc.opts.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyzeAudio_FilenameChecks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.AnalyzeAudio(ctx, audio("", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrMissingFilename)

	_, err = h.svc.AnalyzeAudio(ctx, audio("notes.txt", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrUnsupportedAudio)

	_, err = h.svc.AnalyzeAudio(ctx, audio("noext", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrUnsupportedAudio)

	assert.Zero(t, h.transcriber.calls)
}

func TestAnalyzeAudio_NoSpeech(t *testing.T) {
	h := newHarness(t)
	h.transcriber.result = &ai.Transcription{Language: "en"}

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("silence.m4a", "quiet"))
	assert.ErrorIs(t, err, ucerrors.ErrNoSpeech)
	assert.Empty(t, h.repo.items)
}

func TestAnalyzeAudio_SilentSegmentsKept(t *testing.T) {
	h := newHarness(t)
	h.transcriber.result = &ai.Transcription{
		Language: "en",
		Segments: []ai.Segment{{Start: 0, End: 1.5, Text: ""}, {Start: 3, End: 4, Text: ""}},
	}

	got, err := h.svc.AnalyzeAudio(context.Background(), audio("hold-music.wav", "beep"))
	require.NoError(t, err)
	assert.Equal(t, 2, got.SegmentCount)
	assert.Equal(t, entities.SentimentNeutral, got.Sentiment)
	assert.Zero(t, h.classifier.calls)
	// the 2s pause still flips the speaker
	assert.InDelta(t, 0.6*1.5/2.5, got.Metrics().TalkTimeRatio[entities.SpeakerA], 1e-9)
}

func TestAnalyzeAudio_TranscriberUnavailable(t *testing.T) {
	h := newHarness(t)
	h.svc.transcriber = nil

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrTranscriberUnavailable)
	assert.Empty(t, h.repo.items)
}

func TestAnalyzeAudio_TranscriberNotConfigured(t *testing.T) {
	h := newHarness(t)
	h.transcriber.errs = []error{fmt.Errorf("assemblyai: %w: missing API key", ai.ErrNotConfigured)}

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrTranscriberUnavailable)
	assert.NotErrorIs(t, err, ucerrors.ErrTranscription)
	assert.Equal(t, 1, h.transcriber.calls)
}

func TestAnalyzeAudio_CachedByContent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.svc.AnalyzeAudio(ctx, audio("a.wav", "same-bytes"))
	require.NoError(t, err)

	second, err := h.svc.AnalyzeAudio(ctx, audio("b.wav", "same-bytes"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b.wav", second.Filename)
	assert.Equal(t, 1, h.transcriber.calls)
	assert.Len(t, h.repo.items, 1)
}

func TestAnalyzeAudio_DedupesFromRepositoryWithoutCache(t *testing.T) {
	h := newHarness(t)
	h.svc.cache = nil
	ctx := context.Background()

	first, err := h.svc.AnalyzeAudio(ctx, audio("a.wav", "bytes"))
	require.NoError(t, err)
	second, err := h.svc.AnalyzeAudio(ctx, audio("a.wav", "bytes"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, h.transcriber.calls)
}

func TestAnalyzeAudio_RetriesTransientTranscriberErrors(t *testing.T) {
	h := newHarness(t)
	h.transcriber.errs = []error{
		&ai.StatusError{Service: "whisper", StatusCode: http.StatusServiceUnavailable},
		errors.New("connection reset by peer"),
	}

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	require.NoError(t, err)
	assert.Equal(t, 3, h.transcriber.calls)
}

func TestAnalyzeAudio_PermanentTranscriberError(t *testing.T) {
	h := newHarness(t)
	h.transcriber.errs = []error{
		&ai.StatusError{Service: "whisper", StatusCode: http.StatusBadRequest, Body: "bad audio"},
	}

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrTranscription)
	assert.Contains(t, err.Error(), "bad audio")
	assert.Equal(t, 1, h.transcriber.calls)
}

func TestAnalyzeAudio_ArchiveFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.store.err = errors.New("bucket gone")

	got, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	require.NoError(t, err)
	assert.Empty(t, got.AudioObject)

	url, err := h.svc.AudioURL(context.Background(), got)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestAnalyzeAudio_ClassifierFailure(t *testing.T) {
	h := newHarness(t)
	h.classifier.err = &ai.StatusError{Service: "sentiment", StatusCode: http.StatusBadRequest}

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrClassification)
	assert.Empty(t, h.repo.items)
}

func TestAnalyzeAudio_PersistFailure(t *testing.T) {
	h := newHarness(t)
	h.repo.err = errors.New("db down")

	_, err := h.svc.AnalyzeAudio(context.Background(), audio("call.wav", "x"))
	assert.ErrorIs(t, err, ucerrors.ErrPersistence)
	assert.ErrorContains(t, err, "db down")
}

func TestAnalyzeTranscript_MalformedClassifierResponseNotRetried(t *testing.T) {
	h := newHarness(t)
	h.classifier.err = fmt.Errorf("sentiment: %w: empty classification", ai.ErrBadResponse)

	_, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{
		Segments: []entities.Segment{{Start: 0, End: 1, Text: "hello"}},
	})
	assert.ErrorIs(t, err, ucerrors.ErrClassification)
	assert.ErrorIs(t, err, ai.ErrBadResponse)
	assert.Equal(t, 1, h.classifier.calls)
}

func TestAnalyzeTranscript_ClassifierHasOwnRetryBudget(t *testing.T) {
	h := newHarness(t)
	h.svc.opts.RetryMaxElapsed = time.Hour
	h.svc.opts.SentimentMaxElapsed = 20 * time.Millisecond
	h.classifier.err = errors.New("connection reset by peer")

	start := time.Now()
	_, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{
		Segments: []entities.Segment{{Start: 0, End: 1, Text: "hello"}},
	})
	assert.ErrorIs(t, err, ucerrors.ErrClassification)
	assert.Greater(t, h.classifier.calls, 1)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestAnalyzeTranscript_ProvidedSentimentSkipsClassifier(t *testing.T) {
	h := newHarness(t)

	got, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{
		Filename:  "call.json",
		Sentiment: "negative",
		Segments: []entities.Segment{
			{Start: 0, End: 1, Text: "Hi"},
			{Start: 1.2, End: 2, Text: "Hello"},
		},
	})
	require.NoError(t, err)

	assert.Zero(t, h.classifier.calls)
	assert.Equal(t, entities.SentimentNegative, got.Sentiment)
	assert.Equal(t, entities.AnalysisSourceTranscript, got.Source)
	assert.Equal(t, entities.TalkRatio{entities.SpeakerA: 1, entities.SpeakerB: 0}, got.Metrics().TalkTimeRatio)
	assert.Empty(t, got.AudioSHA256)
}

func TestAnalyzeTranscript_EmptySentimentUsesClassifier(t *testing.T) {
	h := newHarness(t)
	h.classifier.label = "NEGATIVE"

	got, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{
		Segments: []entities.Segment{{Start: 0, End: 1, Text: "This is terrible"}, {Start: 1, End: 2, Text: "  "}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.classifier.calls)
	assert.Equal(t, entities.SentimentNegative, got.Sentiment)
}

func TestAnalyzeTranscript_InvalidSegments(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{
		Segments: []entities.Segment{{Start: 0, End: 1, Text: "ok"}, {Start: 3, End: 2, Text: "bad"}},
	})

	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "segments[1].end", verr.Path())
	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.Empty(t, h.repo.items)
}

func TestAnalyzeTranscript_EmptySegments(t *testing.T) {
	h := newHarness(t)

	got, err := h.svc.AnalyzeTranscript(context.Background(), TranscriptInput{Filename: "empty"})
	require.NoError(t, err)
	assert.Equal(t, entities.SentimentNeutral, got.Sentiment)
	assert.Zero(t, h.classifier.calls)
	assert.Zero(t, got.NumQuestions)
}

func TestGetAnalysis(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	stored, err := h.svc.AnalyzeTranscript(ctx, TranscriptInput{
		Sentiment: "POSITIVE",
		Segments:  []entities.Segment{{Start: 0, End: 1, Text: "Any questions?"}},
	})
	require.NoError(t, err)

	// from cache
	got, err := h.svc.GetAnalysis(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.Metrics().TalkTimeRatio, got.Metrics().TalkTimeRatio)

	// from repository
	h.svc.cache = nil
	got, err = h.svc.GetAnalysis(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	_, err = h.svc.GetAnalysis(ctx, uuid.New())
	assert.ErrorIs(t, err, ucerrors.ErrAnalysisNotFound)
}

func TestGetAnalysis_RepositoryFailure(t *testing.T) {
	h := newHarness(t)
	h.svc.cache = nil
	h.repo.readErr = errors.New("too many connections")
	ctx := context.Background()

	_, err := h.svc.GetAnalysis(ctx, uuid.New())
	assert.ErrorIs(t, err, ucerrors.ErrPersistence)
	assert.NotErrorIs(t, err, ucerrors.ErrAnalysisNotFound)

	_, _, err = h.svc.ListAnalyses(ctx, ListInput{})
	assert.ErrorIs(t, err, ucerrors.ErrPersistence)
}

func TestGetAnalysis_DropsUndecodableCacheEntry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	stored, err := h.svc.AnalyzeTranscript(ctx, TranscriptInput{
		Sentiment: "NEUTRAL",
		Segments:  []entities.Segment{{Start: 0, End: 1, Text: "ok"}},
	})
	require.NoError(t, err)

	key := analysisKey(stored.ID)
	require.NoError(t, h.cache.Set(ctx, key, "{not json", time.Minute))

	got, err := h.svc.GetAnalysis(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	_, ok, err := h.cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetAnalysis_CacheOnly(t *testing.T) {
	h := newHarness(t)
	h.svc.repo = nil
	ctx := context.Background()

	stored, err := h.svc.AnalyzeTranscript(ctx, TranscriptInput{Sentiment: "NEUTRAL"})
	require.NoError(t, err)

	got, err := h.svc.GetAnalysis(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	_, err = h.svc.GetAnalysis(ctx, uuid.New())
	assert.ErrorIs(t, err, ucerrors.ErrAnalysisNotFound)

	_, _, err = h.svc.ListAnalyses(ctx, ListInput{})
	assert.ErrorIs(t, err, ucerrors.ErrHistoryDisabled)
}

func TestListAnalyses_Paginates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a, err := h.svc.AnalyzeTranscript(ctx, TranscriptInput{Sentiment: "NEUTRAL"})
		require.NoError(t, err)
		a.CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	_, err := h.svc.AnalyzeAudio(ctx, audio("call.wav", "x"))
	require.NoError(t, err)

	source := entities.AnalysisSourceTranscript
	page, total, err := h.svc.ListAnalyses(ctx, ListInput{Page: 2, PageSize: 2, Source: &source})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, base.Add(2*time.Hour), page[0].CreatedAt)

	all, total, err := h.svc.ListAnalyses(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, all, 6)
}

func TestNormalizePage(t *testing.T) {
	p, s := normalizePage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, defaultPageSize, s)

	_, s = normalizePage(3, 1000)
	assert.Equal(t, maxPageSize, s)
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(os.ErrNotExist))
	assert.False(t, retryable(fmt.Errorf("whisper: %w: unexpected EOF", ai.ErrBadResponse)))
	assert.False(t, retryable(fmt.Errorf("assemblyai: %w: missing API key", ai.ErrNotConfigured)))
	assert.False(t, retryable(&ai.StatusError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, retryable(&ai.StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, retryable(errors.New("dial tcp: connection refused")))
}

func TestSpool_HashesContent(t *testing.T) {
	h := newHarness(t)

	path, digest, size, err := h.svc.spool(bytes.NewReader([]byte("abc")), ".wav")
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, int64(3), size)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
	assert.True(t, strings.HasSuffix(path, ".wav"))
}
