package database

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"

	"github.com/employee-api/internal/config"
)

// Retry вызывает fn не более cfg.Count раз. Паузы между попытками растут
// экспоненциально: Delay, Delay*Backoff, Delay*Backoff^2, ...
func Retry(ctx context.Context, cfg config.RetryConfig, logger *slog.Logger, fn func(ctx context.Context) error) error {
	b := newBackOff(cfg)

	var err error
	for attempt := 1; attempt <= cfg.Count; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == cfg.Count {
			break
		}

		delay := b.NextBackOff()
		logger.Warn("attempt failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.Count),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrapf(ctx.Err(), "retry aborted after %d attempts: %v", attempt, err)
		case <-timer.C:
		}
	}

	return errors.Wrapf(err, "giving up after %d attempts", cfg.Count)
}

func newBackOff(cfg config.RetryConfig) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.Delay
	b.Multiplier = cfg.Backoff
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.Reset()
	return b
}
