// Package sentiment derives the overall sentiment of a call from per-chunk classifications.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
	ucerrors "github.com/johnquangdev/call-analyzer/internal/usecase/errors"
)

const (
	// DefaultMaxChars is the per-chunk truncation limit of the classifier model
	DefaultMaxChars = 512
	// DefaultConcurrency bounds the number of in-flight classifier calls
	DefaultConcurrency = 4
)

// Classifier labels a single text chunk, e.g. POSITIVE or NEGATIVE
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Options tunes the Analyzer
type Options struct {
	MaxChars    int
	Concurrency int
}

// Analyzer classifies every chunk of a transcript and majority-votes the result
type Analyzer struct {
	classifier  Classifier
	maxChars    int
	concurrency int
	logger      *zap.Logger
}

// NewAnalyzer creates an Analyzer; zero options fall back to the defaults
func NewAnalyzer(classifier Classifier, opts Options, logger *zap.Logger) *Analyzer {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		classifier:  classifier,
		maxChars:    opts.MaxChars,
		concurrency: opts.Concurrency,
		logger:      logger,
	}
}

// Analyze returns the overall label of texts. No texts means NEUTRAL without calling the model.
func (a *Analyzer) Analyze(ctx context.Context, texts []string) (entities.SentimentLabel, error) {
	if len(texts) == 0 {
		return entities.SentimentNeutral, nil
	}

	labels := make([]entities.SentimentLabel, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			raw, err := a.classifier.Classify(gctx, Truncate(text, a.maxChars))
			if err != nil {
				return fmt.Errorf("%w: chunk %d: %w", ucerrors.ErrClassification, i, err)
			}
			labels[i] = entities.SentimentLabel(strings.ToUpper(strings.TrimSpace(raw)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	overall := MajorityVote(labels)
	a.logger.Debug("sentiment.vote",
		zap.Int("chunks", len(texts)),
		zap.String("label", string(overall)),
	)
	return overall, nil
}

// Truncate keeps at most n runes of text
func Truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
