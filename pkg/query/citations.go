package query

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Citation is an entry of a rendered publication list.
type Citation struct {
	Number  int
	Anchor  string
	Title   string
	URL     string
	Journal string
}

// Citations parses a rendered publication list.
func Citations(reader io.Reader) ([]Citation, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, err
	}

	return Map(doc.Find("ol.pubs > li"), func(item *goquery.Selection) (Citation, error) {
		var citation Citation

		value, ok := item.Attr("value")
		if !ok {
			return citation, fmt.Errorf("got a publication list item without number")
		}

		number, err := strconv.Atoi(value)
		if err != nil {
			return citation, fmt.Errorf("got an invalid publication number: %q", value)
		}

		citation.Number = number

		anchor, err := One(item, "citation anchor", "a.anchor")
		if err != nil {
			return citation, err
		}
		citation.Anchor = anchor.AttrOr("name", "")

		title, err := One(item, "citation title", "span.title")
		if err != nil {
			return citation, err
		}
		// The title is rendered as " <title>. " with an optional link around the title itself
		if link := title.Find("a"); link.Length() != 0 {
			citation.Title = Text(link)
			citation.URL = link.AttrOr("href", "")
		} else {
			citation.Title = strings.TrimSuffix(Text(title), ".")
		}

		if journal, ok, err := Optional(item, "citation journal", "span.journal"); err != nil {
			return citation, err
		} else if ok {
			citation.Journal = Text(journal)
		}

		return citation, nil
	})
}
