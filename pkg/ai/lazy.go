package ai

import (
	"context"
	"sync"
)

// Lazy builds a client on first use and hands the same instance to every
// caller afterwards. A failed build is remembered and returned again.
type Lazy[T any] struct {
	once  sync.Once
	build func() (T, error)
	value T
	err   error
}

// NewLazy wraps a constructor
func NewLazy[T any](build func() (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Get returns the shared instance, building it if needed
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.build()
	})
	return l.value, l.err
}

// LazyTranscriber builds its Transcriber on the first Transcribe call
type LazyTranscriber struct {
	lazy *Lazy[Transcriber]
}

// NewLazyTranscriber wraps a Transcriber constructor
func NewLazyTranscriber(build func() (Transcriber, error)) *LazyTranscriber {
	return &LazyTranscriber{lazy: NewLazy(build)}
}

// Transcribe implements Transcriber
func (l *LazyTranscriber) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	t, err := l.lazy.Get()
	if err != nil {
		return nil, err
	}
	return t.Transcribe(ctx, audioPath)
}
