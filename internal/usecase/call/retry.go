package call

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/internal/infrastructure/metrics"
	"github.com/johnquangdev/call-analyzer/pkg/ai"
)

// retryable reports whether an upstream failure is worth another attempt
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, ai.ErrBadResponse) || errors.Is(err, ai.ErrNotConfigured) {
		return false
	}
	var se *ai.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

// withRetry runs op with exponential backoff until it succeeds, fails
// permanently, maxElapsed passes or ctx is done
func (s *CallService) withRetry(ctx context.Context, service string, maxElapsed time.Duration, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.RetryInitialInterval
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = maxElapsed

	attempt := func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		metrics.RecordRetry(service)
		s.logger.Warn("⚠️ Upstream call failed, retrying",
			zap.String("service", service),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(attempt, backoff.WithContext(bo, ctx), notify)
}
