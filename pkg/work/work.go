// Package work describes a resolved publication: the bibliographic metadata we need to cite it.
package work

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/KonishchevDmitry/easypub/pkg/parse"
	"github.com/KonishchevDmitry/easypub/pkg/query"
	"github.com/KonishchevDmitry/easypub/pkg/url"
)

type Author struct {
	Given  string
	Family string
}

type Work struct {
	// Identifier the work has been requested by: a DOI or a preprint ID.
	ID  string
	DOI string

	Title               string
	Authors             []Author
	ContainerTitle      string
	ContainerTitleShort string
	Volume              string
	Page                string
	ArticleNumber       string
	URL                 string

	Published Date
	Created   Date

	// Whether the preprint has been published in a journal, if it's known.
	Status mo.Option[bool]

	// Name of the source the metadata has been obtained from.
	Source string
}

// Normalize strips markup and excessive whitespace from the metadata and fills the fields which can be derived from
// the others.
func (w *Work) Normalize() error {
	title, err := query.FragmentText(w.Title)
	if err != nil {
		return fmt.Errorf("got an invalid title: %w", err)
	}
	w.Title = title

	for _, field := range []*string{
		&w.ID, &w.DOI, &w.ContainerTitle, &w.ContainerTitleShort, &w.Volume, &w.Page, &w.ArticleNumber, &w.URL,
	} {
		*field = parse.CollapseText(*field)
	}

	for i := range w.Authors {
		author := &w.Authors[i]
		author.Given = parse.CollapseText(author.Given)
		author.Family = parse.CollapseText(author.Family)
	}

	if w.URL == "" && w.DOI != "" {
		w.URL = url.DOI(w.DOI)
	}

	return nil
}

// Journal returns the container title to cite the work with.
func (w *Work) Journal() string {
	if w.ContainerTitle != "" {
		return w.ContainerTitle
	}
	return w.ContainerTitleShort
}

// Pages returns the page range or the article number when the journal doesn't use pages.
func (w *Work) Pages() string {
	if w.Page != "" {
		return w.Page
	}
	return w.ArticleNumber
}

// SortDate returns the date the work should be ordered by. Publication date is used if it's known at least with month
// precision. Otherwise creation date refines a year-only publication date when both fall into the same year, and the
// first day of the publication year is used when they don't. Unknown dates are zero.
func (w *Work) SortDate() time.Time {
	if w.Published.Month != 0 {
		return w.Published.Time()
	}
	if !w.Created.IsZero() && (w.Published.IsZero() || w.Created.Year == w.Published.Year) {
		return w.Created.Time()
	}
	return w.Published.Time()
}

// Year returns the publication year or zero if it's unknown.
func (w *Work) Year() int {
	if !w.Published.IsZero() {
		return w.Published.Year
	}
	return w.Created.Year
}

func (w *Work) String() string {
	var authors []string
	for _, author := range w.Authors {
		authors = append(authors, strings.TrimSpace(author.Given+" "+author.Family))
	}
	return fmt.Sprintf("%s: %q by %s", w.ID, w.Title, strings.Join(authors, ", "))
}
