package fetch

import (
	"context"
	"io"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/KonishchevDmitry/easypub/pkg/rss"
)

var FeedContentTypes = append([]string{"application/atom+xml"}, rss.PossibleContentTypes...)

// Feed fetches an Atom or RSS feed of any version.
func Feed(ctx context.Context, url *url.URL, options ...Option) (*gofeed.Feed, error) {
	return fetch(ctx, url, FeedContentTypes, func(body io.Reader) (*gofeed.Feed, error) {
		return gofeed.NewParser().Parse(body)
	}, options...)
}
