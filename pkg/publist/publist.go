// Package publist builds the publication list: resolves the identifiers, orders the works and numbers them.
package publist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"golang.org/x/sync/errgroup"

	"github.com/KonishchevDmitry/easypub/pkg/source"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

type Resolver interface {
	Published(ctx context.Context, id string) (*work.Work, error)
	Preprint(ctx context.Context, id string) (*work.Work, error)
}

var _ Resolver = &source.Resolver{}

type Options struct {
	// Maximum number of concurrent lookups.
	Concurrency int
}

func DefaultOptions() Options {
	return Options{Concurrency: 4}
}

type Entry struct {
	// Number of the entry in the list. The list is numbered in descending order: the newest entry has the largest
	// number.
	Number int
	Anchor string
	Work   *work.Work
}

// Group is a group of published works of the same year.
type Group struct {
	// Zero for works with unknown publication date.
	Year    int
	Entries []Entry
}

type List struct {
	Preprints []Entry
	Published []Group
}

func (l *List) Len() int {
	return len(l.All())
}

// All returns all entries in the order they are listed.
func (l *List) All() []Entry {
	entries := slices.Clone(l.Preprints)
	for _, group := range l.Published {
		entries = append(entries, group.Entries...)
	}
	return entries
}

// Build resolves the identifiers and builds the publication list from them. Unknown identifiers are skipped and
// reported, any other error aborts the build.
func Build(ctx context.Context, resolver Resolver, input Input, options Options) (*List, *Report, error) {
	var (
		report    Report
		lock      sync.Mutex
		preprints = make([]*work.Work, len(input.Preprints))
		published = make([]*work.Work, len(input.Published))
	)

	logging.L(ctx).Infof("Resolving %d preprints and %d published works...", len(input.Preprints), len(input.Published))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(options.Concurrency, 1))

	resolve := func(
		ids []string, results []*work.Work, resolve func(ctx context.Context, id string) (*work.Work, error),
		missing *[]string,
	) {
		for index, id := range ids {
			group.Go(func() error {
				result, err := resolve(groupCtx, id)
				if err != nil {
					if errors.Is(err, source.ErrNotFound) {
						logging.L(ctx).Warnf("%s is not found.", id)

						lock.Lock()
						*missing = append(*missing, id)
						lock.Unlock()

						return nil
					}
					return err
				}

				logging.L(ctx).Debugf("Resolved %s.", result)
				results[index] = result
				return nil
			})
		}
	}

	resolve(input.Preprints, preprints, resolver.Preprint, &report.MissingPreprints)
	resolve(input.Published, published, resolver.Published, &report.Missing)

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	report.MissingPreprints = ordered(input.Preprints, report.MissingPreprints)
	report.Missing = ordered(input.Published, report.Missing)

	preprints = slices.DeleteFunc(preprints, func(work *work.Work) bool { return work == nil })
	published = slices.DeleteFunc(published, func(work *work.Work) bool { return work == nil })

	for _, preprint := range preprints {
		if status, ok := preprint.Status.Get(); ok && status {
			report.PublishedPreprints = append(report.PublishedPreprints, PublishedPreprint{
				ID:  preprint.ID,
				DOI: preprint.DOI,
			})
		}
	}

	return makeList(preprints, published), &report, nil
}

func makeList(preprints []*work.Work, published []*work.Work) *List {
	var list List
	number := len(preprints) + len(published)

	for _, preprint := range preprints {
		list.Preprints = append(list.Preprints, Entry{
			Number: number,
			Anchor: fmt.Sprintf("preprint_%d", number),
			Work:   preprint,
		})
		number--
	}

	published = slices.Clone(published)
	slices.SortStableFunc(published, func(a, b *work.Work) int {
		return b.SortDate().Compare(a.SortDate())
	})

	for _, article := range published {
		entry := Entry{
			Number: number,
			Anchor: fmt.Sprintf("article_%d", number),
			Work:   article,
		}
		number--

		// Works are grouped by consecutive runs of the same year
		if count := len(list.Published); count != 0 && list.Published[count-1].Year == article.Year() {
			group := &list.Published[count-1]
			group.Entries = append(group.Entries, entry)
		} else {
			list.Published = append(list.Published, Group{Year: article.Year(), Entries: []Entry{entry}})
		}
	}

	return &list
}

func ordered(ids []string, subset []string) []string {
	if len(subset) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(subset))
	for _, id := range subset {
		set[id] = struct{}{}
	}

	return slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		_, ok := set[id]
		return !ok
	})
}
