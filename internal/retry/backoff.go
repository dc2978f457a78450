// Package retry implements the exponential backoff policy the transport
// applies to transient request failures.
package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Config configures retry behavior with exponential backoff.
type Config struct {
	MaxRetries int           // maximum number of retry attempts
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration // cap on the delay between retries
	Multiplier float64       // exponential backoff multiplier
	Jitter     bool          // add random jitter to prevent thundering herd
}

// DefaultConfig returns a retry configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Do executes op, retrying per config whenever op fails with an error that
// retryable classifies as transient. The last error is returned when the
// retry budget is exhausted.
func Do(config Config, logger zerolog.Logger, retryable func(error) bool, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt >= config.MaxRetries || !retryable(lastErr) {
			return lastErr
		}

		delay := Delay(config, attempt)
		logger.Debug().
			Err(lastErr).
			Int("attempt", attempt+1).
			Int("max_retries", config.MaxRetries).
			Dur("delay", delay).
			Msg("retrying request")
		time.Sleep(delay)
	}
	return lastErr
}

// Delay calculates the backoff delay for the given attempt.
func Delay(config Config, attempt int) time.Duration {
	delay := float64(config.BaseDelay) * math.Pow(config.Multiplier, float64(attempt))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}

	if config.Jitter {
		// up to 10% random jitter either way
		jitterRange := delay * 0.1
		delay += (rand.Float64() - 0.5) * 2 * jitterRange
		if delay < 0 {
			delay = float64(config.BaseDelay)
		}
	}

	return time.Duration(delay)
}
