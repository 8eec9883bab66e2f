package fetch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const DefaultUserAgent = "easypub (https://github.com/KonishchevDmitry/easypub)"

type Config struct {
	UserAgent string

	// Temporary errors are retried with exponential backoff until the number of attempts is exhausted.
	MaxAttempts  int
	InitialDelay time.Duration

	// Per-host request rate limit. Zero means no limit.
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		UserAgent:         DefaultUserAgent,
		MaxAttempts:       3,
		InitialDelay:      time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

type fetchContext struct {
	duration prometheus.Observer
	config   Config

	lock     sync.Mutex
	limiters map[string]*rate.Limiter
}

type contextKey struct{}

func WithContext(ctx context.Context, duration prometheus.Observer, config Config) context.Context {
	return context.WithValue(ctx, contextKey{}, &fetchContext{
		duration: duration,
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	})
}

func getContext(ctx context.Context) (*fetchContext, error) {
	context, ok := ctx.Value(contextKey{}).(*fetchContext)
	if !ok {
		return nil, errors.New("fetch context is missing")
	}
	return context, nil
}

func (c *fetchContext) wait(ctx context.Context, host string) error {
	if c.config.RequestsPerSecond <= 0 {
		return nil
	}

	c.lock.Lock()
	limiter, ok := c.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(c.config.RequestsPerSecond), max(c.config.Burst, 1))
		c.limiters[host] = limiter
	}
	c.lock.Unlock()

	return limiter.Wait(ctx)
}
