package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/sony/gobreaker"

	"github.com/KonishchevDmitry/easypub/internal/util"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

type BreakerConfig struct {
	// Number of consecutive failures after which the breaker opens.
	Failures uint32
	// How long the breaker stays open before letting a probe request through.
	Timeout time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Failures: 5, Timeout: time.Minute}
}

// Breaker wraps a remote source with a circuit breaker: when the service keeps failing, lookups fail fast instead of
// waiting for all retries of every request.
type Breaker struct {
	source  Source
	breaker *gobreaker.CircuitBreaker
}

var _ Source = &Breaker{}

func NewBreaker(ctx context.Context, source Source, config BreakerConfig) *Breaker {
	logger := logging.L(ctx)

	return &Breaker{
		source: source,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    source.Name(),
			Timeout: config.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= max(config.Failures, 1)
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				if to == gobreaker.StateOpen {
					logger.Warnf("%s circuit breaker is open: the service is considered unavailable.", name)
				} else {
					logger.Infof("%s circuit breaker state: %s -> %s.", name, from, to)
				}
			},
		}),
	}
}

func (b *Breaker) Name() string {
	return b.source.Name()
}

func (b *Breaker) State() gobreaker.State {
	return b.breaker.State()
}

func (b *Breaker) Get(ctx context.Context, id string) (*work.Work, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.source.Get(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = util.MakeTemporaryError(fmt.Errorf("%s is unavailable: %w", b.Name(), err))
		}
		return nil, err
	}
	return result.(*work.Work), nil
}
