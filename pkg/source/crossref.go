package source

import (
	"context"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/url"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const (
	CrossRefURL  = "https://api.crossref.org"
	cslMediaType = "application/vnd.citationstyles.csl+json"
)

// CrossRef obtains metadata of published works using CrossRef content negotiation API.
type CrossRef struct {
	baseURL string
}

var _ Source = &CrossRef{}

func NewCrossRef(baseURL string) *CrossRef {
	return &CrossRef{baseURL: baseURL}
}

func (c *CrossRef) Name() string {
	return "CrossRef"
}

func (c *CrossRef) Get(ctx context.Context, doi string) (*work.Work, error) {
	uri, err := url.JoinPath(c.baseURL, "works", doi, "transform", cslMediaType)
	if err != nil {
		return nil, err
	}

	result, err := fetch.JSON[work.Work](ctx, uri, fetch.ContentTypes(cslMediaType))
	if err != nil {
		return nil, fromFetchError(err)
	}

	if result.DOI == "" {
		result.DOI = doi
	}

	return finalize(c, doi, &result)
}
