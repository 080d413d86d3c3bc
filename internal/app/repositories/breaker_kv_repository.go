package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// BreakerConfig configures the circuit breaker placed in front of a remote backend.
type BreakerConfig struct {
	Name string
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint32
	// Timeout is how long the breaker stays open before letting a trial request through.
	Timeout time.Duration
}

// BreakerKVRepository guards a remote KeyValueRepository with a circuit breaker so
// an unreachable Postgres or Redis fails fast instead of stalling every mutation.
type BreakerKVRepository struct {
	inner   KeyValueRepository
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBreakerKVRepository wraps inner
func NewBreakerKVRepository(inner KeyValueRepository, cfg BreakerConfig, lgr zerolog.Logger) *BreakerKVRepository {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A key that was never written is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrResourceNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			lgr.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Storage circuit breaker state changed")
		},
	}

	return &BreakerKVRepository{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// State exposes the breaker state for health reporting.
func (r *BreakerKVRepository) State() gobreaker.State {
	return r.breaker.State()
}

func (r *BreakerKVRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.breaker.Execute(func() (string, error) {
		return r.inner.Get(ctx, key)
	})
	return value, r.translate(err)
}

func (r *BreakerKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := r.breaker.Execute(func() (string, error) {
		return "", r.inner.SetMany(ctx, entries)
	})
	return r.translate(err)
}

func (r *BreakerKVRepository) Close() error {
	return r.inner.Close()
}

func (r *BreakerKVRepository) translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	return err
}
