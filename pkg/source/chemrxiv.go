package source

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/parse"
	"github.com/KonishchevDmitry/easypub/pkg/url"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const ChemRxivURL = "https://chemrxiv.org/engage/chemrxiv/public-api/v1"

// ChemRxiv obtains metadata of ChemRxiv preprints.
type ChemRxiv struct {
	baseURL string
}

var _ Source = &ChemRxiv{}

func NewChemRxiv(baseURL string) *ChemRxiv {
	return &ChemRxiv{baseURL: baseURL}
}

func (c *ChemRxiv) Name() string {
	return "ChemRxiv"
}

type chemRxivItem struct {
	DOI           string           `json:"doi"`
	Title         string           `json:"title"`
	Authors       []chemRxivAuthor `json:"authors"`
	PublishedDate string           `json:"publishedDate"`
}

type chemRxivAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c *ChemRxiv) Get(ctx context.Context, doi string) (*work.Work, error) {
	uri, err := url.JoinPath(c.baseURL, "items", "doi", doi)
	if err != nil {
		return nil, err
	}

	item, err := fetch.JSON[chemRxivItem](ctx, uri)
	if err != nil {
		return nil, fromFetchError(err)
	}

	if item.DOI == "" {
		item.DOI = doi
	}

	result := work.Work{
		DOI:   item.DOI,
		Title: item.Title,
		Authors: lo.Map(item.Authors, func(author chemRxivAuthor, _ int) work.Author {
			return work.Author{Given: author.FirstName, Family: author.LastName}
		}),
		ContainerTitle: "ChemRxiv",
		URL:            url.DOI(item.DOI),
	}

	if item.PublishedDate != "" {
		published, err := parse.Date(item.PublishedDate)
		if err != nil {
			return nil, fmt.Errorf("ChemRxiv returned an invalid publication date for %s: %w", doi, err)
		}
		result.Published = work.MakeDate(published)
	}

	return finalize(c, doi, &result)
}
