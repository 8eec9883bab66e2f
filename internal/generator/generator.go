// Package generator periodically regenerates the publication list in background.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/samber/mo"
	"go.uber.org/atomic"

	"github.com/KonishchevDmitry/easypub/internal/util"
	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/render"
	"github.com/KonishchevDmitry/easypub/pkg/rss"
	"github.com/KonishchevDmitry/easypub/pkg/url"
)

const (
	DefaultSchedule = "@every 6h"

	// Failed generation is retried on request not earlier than after this interval.
	retryInterval = time.Minute
)

// Builder builds the publication list.
type Builder func(ctx context.Context) (*publist.List, *publist.Report, error)

type Config struct {
	// Regeneration schedule in cron format.
	Schedule string
	Fetch    fetch.Config

	// Title and link of the RSS feed.
	Title string
	Link  *url.URL
}

type Generator struct {
	build   Builder
	config  Config
	metrics metrics

	cron       *cron.Cron
	schedule   cron.Schedule
	generating atomic.Bool

	scheduled chan struct{}
	force     chan struct{}
	stopped   chan struct{}
	waitGroup sync.WaitGroup

	lock    sync.Mutex
	result  mo.Option[Result]
	waiters []chan<- Result
}

var _ prometheus.Collector = &Generator{}

func New(build Builder, config Config) (*Generator, error) {
	if config.Schedule == "" {
		config.Schedule = DefaultSchedule
	}

	schedule, err := cron.ParseStandard(config.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", config.Schedule, err)
	}

	return &Generator{
		build:   build,
		config:  config,
		metrics: makeMetrics(),

		cron:     cron.New(),
		schedule: schedule,

		scheduled: make(chan struct{}, 1),
		force:     make(chan struct{}, 1),
		stopped:   make(chan struct{}),
	}, nil
}

// LookupCounter returns a counter for metadata source lookups to be passed to the resolver.
func (g *Generator) LookupCounter() *prometheus.CounterVec {
	return g.metrics.lookups
}

func (g *Generator) Describe(descs chan<- *prometheus.Desc) {
	g.metrics.Describe(descs)
}

func (g *Generator) Collect(metrics chan<- prometheus.Metric) {
	g.metrics.Collect(metrics)
}

func (g *Generator) Start(ctx context.Context) {
	logging.L(ctx).Infof("Starting publication list generator with %q schedule...", g.config.Schedule)
	g.cron.Schedule(g.schedule, cron.FuncJob(func() {
		if g.generating.Load() {
			logging.L(ctx).Warn("The previous publication list generation is still in progress.")
		}

		select {
		case g.scheduled <- struct{}{}:
		default:
		}
	}))
	g.cron.Start()

	g.waitGroup.Go(func() {
		g.daemon(ctx)
	})
}

func (g *Generator) Stop(ctx context.Context) {
	logging.L(ctx).Info("Stopping publication list generator...")
	<-g.cron.Stop().Done()
	close(g.stopped)
	g.waitGroup.Wait()
	logging.L(ctx).Info("Publication list generator has stopped.")
}

// Get returns the last generated publication list waiting for the first generation if needed.
func (g *Generator) Get(ctx context.Context) Result {
	g.lock.Lock()

	if result, ok := g.result.Get(); ok && (result.OK() || time.Since(result.Time) < retryInterval) {
		g.lock.Unlock()
		return result
	}

	waiter := make(chan Result, 1)
	g.waiters = append(g.waiters, waiter)
	g.lock.Unlock()

	select {
	case g.force <- struct{}{}:
	default:
	}

	select {
	case result := <-waiter:
		return result

	case <-g.stopped:
		return makeErrorResult(http.StatusServiceUnavailable)

	case <-ctx.Done():
		g.lock.Lock()
		if index := slices.Index(g.waiters, waiter); index != -1 {
			g.waiters = slices.Delete(g.waiters, index, index+1)
		}
		g.lock.Unlock()
		return makeErrorResult(http.StatusGatewayTimeout)
	}
}

func (g *Generator) daemon(ctx context.Context) {
	for {
		select {
		case <-g.scheduled:
		case <-g.force:
		case <-g.stopped:
			return
		}

		g.generating.Store(true)
		result := g.generate(ctx)
		g.generating.Store(false)

		g.lock.Lock()
		if previous, ok := g.result.Get(); result.OK() || !ok || !previous.OK() {
			g.result = mo.Some(result)
		} else {
			logging.L(ctx).Warnf("Keep serving the publication list generated at %s.", previous.Time.Format(time.DateTime))
			result = previous
		}
		waiters := g.waiters
		g.waiters = nil
		g.lock.Unlock()

		for _, waiter := range waiters {
			waiter <- result
		}
	}
}

// Generating returns true if the publication list is being generated at the moment.
func (g *Generator) Generating() bool {
	return g.generating.Load()
}

func (g *Generator) generate(ctx context.Context) Result {
	ctx = fetch.WithContext(ctx, g.metrics.fetchDuration, g.config.Fetch)
	logging.L(ctx).Info("Generating the publication list...")

	var panicErr error
	startTime := time.Now()
	list, report, err := func() (*publist.List, *publist.Report, error) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				panicErr = fmt.Errorf("publication list generator has panicked: %v\n%s", err, bytes.TrimRight(stack, "\n"))
			}
		}()
		return g.build(ctx)
	}()
	g.metrics.generationDuration.Observe(time.Since(startTime).Seconds())

	if panicErr != nil {
		logging.L(ctx).Errorf("Failed to generate the publication list: %s", panicErr)
		g.metrics.generationStatus.WithLabelValues(statusPanic).Inc()
		return makeErrorResult(http.StatusInternalServerError)
	} else if util.IsTemporaryError(err) {
		logging.L(ctx).Warnf("Failed to generate the publication list: %s.", err)
		g.metrics.generationStatus.WithLabelValues(statusUnavailable).Inc()
		return makeErrorResult(http.StatusGatewayTimeout)
	} else if err != nil {
		logging.L(ctx).Errorf("Failed to generate the publication list: %s.", err)
		g.metrics.generationStatus.WithLabelValues(statusError).Inc()
		return makeErrorResult(http.StatusBadGateway)
	}

	documents, err := g.render(list, report)
	if err != nil {
		logging.L(ctx).Errorf("Failed to render the publication list: %s.", err)
		g.metrics.generationStatus.WithLabelValues(statusError).Inc()
		return makeErrorResult(http.StatusInternalServerError)
	}

	logging.L(ctx).Infof("The publication list has been generated: %d publications.", list.Len())

	g.metrics.generationStatus.WithLabelValues(statusSuccess).Inc()
	g.metrics.generationTime.SetToCurrentTime()
	g.metrics.publications.WithLabelValues("preprint").Set(float64(len(list.Preprints)))
	g.metrics.publications.WithLabelValues("published").Set(float64(list.Len() - len(list.Preprints)))

	return makeResult(documents)
}

func (g *Generator) render(list *publist.List, report *publist.Report) (map[Format]Document, error) {
	var html bytes.Buffer
	if err := render.HTML(&html, list); err != nil {
		return nil, err
	}

	feed := render.RSS(list, g.config.Title, g.config.Link)
	feedData, err := rss.Generate(feed)
	if err != nil {
		return nil, err
	}

	reportData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}

	return map[Format]Document{
		FormatHTML:   {ContentType: render.HTMLContentType, Data: html.Bytes()},
		FormatRSS:    {ContentType: rss.ContentType, Data: feedData},
		FormatReport: {ContentType: fetch.JSONContentType, Data: reportData},
	}, nil
}
