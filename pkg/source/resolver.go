package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KonishchevDmitry/easypub/pkg/cache"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const (
	publishedKind = "published"
	preprintKind  = "preprint"
)

// Sources is a set of sources the resolver looks up the identifiers in. Nil sources are skipped.
type Sources struct {
	Manual   Source
	CrossRef Source
	ArXiv    Source
	ChemRxiv Source
}

// Resolver looks up publication metadata trying the sources one by one until one of them knows the identifier.
type Resolver struct {
	sources Sources
	cache   *cache.Cache[*work.Work]
	lookups *prometheus.CounterVec
}

type ResolverOption func(r *Resolver)

// WithCache makes the resolver to reuse the works resolved earlier.
func WithCache(cache *cache.Cache[*work.Work]) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithLookupCounter makes the resolver to count source lookups. The counter must have "source" and "status" labels.
func WithLookupCounter(counter *prometheus.CounterVec) ResolverOption {
	return func(r *Resolver) {
		r.lookups = counter
	}
}

func NewResolver(sources Sources, options ...ResolverOption) *Resolver {
	resolver := &Resolver{sources: sources}
	for _, option := range options {
		option(resolver)
	}
	return resolver
}

// Published resolves a published work: manual metadata, CrossRef and then preprint servers.
func (r *Resolver) Published(ctx context.Context, id string) (*work.Work, error) {
	return r.resolve(ctx, publishedKind, id, func(ctx context.Context) (*work.Work, error) {
		return r.lookup(ctx, id, r.sources.Manual, r.sources.CrossRef, r.preprintServer(id))
	})
}

// Preprint resolves a preprint: manual metadata and then the preprint server the identifier belongs to.
func (r *Resolver) Preprint(ctx context.Context, id string) (*work.Work, error) {
	return r.resolve(ctx, preprintKind, id, func(ctx context.Context) (*work.Work, error) {
		return r.lookup(ctx, id, r.sources.Manual, r.preprintServer(id))
	})
}

func (r *Resolver) preprintServer(id string) Source {
	id = strings.ToLower(id)

	switch {
	case strings.Contains(id, "chemrxiv"):
		return r.sources.ChemRxiv
	case strings.Contains(id, "arxiv"):
		return r.sources.ArXiv
	default:
		return nil
	}
}

func (r *Resolver) resolve(
	ctx context.Context, kind string, id string, resolve func(ctx context.Context) (*work.Work, error),
) (*work.Work, error) {
	if r.cache == nil {
		return resolve(ctx)
	}
	return r.cache.Cached(ctx, cacheKey(kind, id), resolve)
}

// Retain drops cached works which are not listed anymore.
func (r *Resolver) Retain(ctx context.Context, published []string, preprints []string) {
	if r.cache == nil {
		return
	}

	keys := make([]string, 0, len(published)+len(preprints))
	for _, id := range published {
		keys = append(keys, cacheKey(publishedKind, id))
	}
	for _, id := range preprints {
		keys = append(keys, cacheKey(preprintKind, id))
	}

	r.cache.Retain(ctx, keys)
}

func cacheKey(kind string, id string) string {
	return kind + ":" + id
}

func (r *Resolver) lookup(ctx context.Context, id string, sources ...Source) (*work.Work, error) {
	for _, source := range sources {
		if source == nil {
			continue
		}

		logging.L(ctx).Debugf("Looking up %s in %s...", id, source.Name())

		result, err := source.Get(ctx, id)
		if err == nil {
			r.observe(source, "found")
			logging.L(ctx).Debugf("%s: found in %s.", id, source.Name())
			return result, nil
		} else if !errors.Is(err, ErrNotFound) {
			r.observe(source, "error")
			return nil, fmt.Errorf("failed to look up %s in %s: %w", id, source.Name(), err)
		}

		r.observe(source, "not-found")
		logging.L(ctx).Debugf("%s: %s.", id, err)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (r *Resolver) observe(source Source, status string) {
	if r.lookups != nil {
		r.lookups.WithLabelValues(source.Name(), status).Inc()
	}
}
