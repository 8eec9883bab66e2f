package testutil

import (
	"context"
	"testing"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
)

func Context(t *testing.T) context.Context {
	return logging.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
}

// FetchContext returns a context configured for fetching with quick retries and without rate limiting.
func FetchContext(t *testing.T) context.Context {
	config := fetch.DefaultConfig()
	config.InitialDelay = time.Millisecond
	config.RequestsPerSecond = 0
	return fetch.WithContext(Context(t), prometheus.NewHistogram(prometheus.HistogramOpts{}), config)
}
