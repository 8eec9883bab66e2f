package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/parse"
	"github.com/KonishchevDmitry/easypub/pkg/url"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const (
	ArXivURL      = "http://export.arxiv.org/api/query"
	arXivAbstract = "http://arxiv.org/abs/"

	arXivNamespace       = "arxiv"
	arXivInvalidIDMarker = "incorrect_id_format_for_"
)

// ArXiv obtains metadata of arXiv preprints from the arXiv API Atom feed.
type ArXiv struct {
	baseURL string
}

var _ Source = &ArXiv{}

func NewArXiv(baseURL string) *ArXiv {
	return &ArXiv{baseURL: baseURL}
}

func (a *ArXiv) Name() string {
	return "arXiv"
}

// ArXivID strips an optional "arXiv:" style prefix from the preprint identifier.
func ArXivID(id string) string {
	if _, suffix, ok := strings.Cut(id, ":"); ok {
		id = suffix
	}
	return strings.TrimSpace(id)
}

func (a *ArXiv) Get(ctx context.Context, id string) (*work.Work, error) {
	arXivID := ArXivID(id)
	if arXivID == "" {
		return nil, fmt.Errorf("%w: invalid arXiv ID: %q", ErrNotFound, id)
	}

	uri, err := url.Parse(a.baseURL)
	if err != nil {
		return nil, err
	}
	uri.RawQuery = url.Values{"id_list": {arXivID}}.Encode()

	feed, err := fetch.Feed(ctx, uri)
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fromFetchError(err)
	}

	entry, err := arXivEntry(feed, arXivID)
	if err != nil {
		return nil, err
	}

	result, err := parseArXivEntry(entry, arXivID)
	if err != nil {
		return nil, fmt.Errorf("got an invalid arXiv entry for %s: %w", id, err)
	}
	result.ContainerTitle = id

	logging.L(ctx).Debugf("%s: published=%v, DOI=%q.", id, result.Status.OrElse(false), result.DOI)

	return finalize(a, id, result)
}

func arXivEntry(feed *gofeed.Feed, id string) (*gofeed.Item, error) {
	for _, item := range feed.Items {
		if strings.Contains(item.GUID, arXivInvalidIDMarker+id) || strings.Contains(item.GUID, "/api/errors") {
			return nil, fmt.Errorf("%w: invalid arXiv ID: %q", ErrNotFound, id)
		}
	}

	if len(feed.Items) == 0 || strings.TrimSpace(feed.Items[0].Title) == "" {
		return nil, fmt.Errorf("%w: arXiv has no %s preprint", ErrNotFound, id)
	}

	return feed.Items[0], nil
}

func parseArXivEntry(entry *gofeed.Item, id string) (*work.Work, error) {
	result := &work.Work{
		Title: parse.CollapseText(entry.Title),
		URL:   arXivAbstract + id,
		Authors: lo.FilterMap(entry.Authors, func(person *gofeed.Person, _ int) (work.Author, bool) {
			if person == nil {
				return work.Author{}, false
			}
			given, family := parse.SplitName(person.Name)
			return work.Author{Given: given, Family: family}, family != ""
		}),
	}

	switch {
	case entry.PublishedParsed != nil:
		result.Published = work.MakeDate(entry.PublishedParsed.UTC())
	case entry.Published != "":
		published, err := parse.Date(entry.Published)
		if err != nil {
			return nil, err
		}
		result.Published = work.MakeDate(published)
	}

	extensions := entry.Extensions[arXivNamespace]
	_, published := extensions["journal_ref"]
	result.Status = mo.Some(published)

	if doi, ok := extensions["doi"]; ok && len(doi) != 0 {
		result.DOI = strings.TrimSpace(doi[0].Value)
	}

	return result, nil
}
