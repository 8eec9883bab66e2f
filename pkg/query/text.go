package query

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/KonishchevDmitry/easypub/pkg/parse"
)

func Text(selection *goquery.Selection) string {
	return parse.CollapseText(selection.Text())
}

// FragmentText returns text content of an HTML fragment. Metadata services mark up titles with <i>, <sub>, <scp>, MathML
// and so on, which we don't want to pass through.
func FragmentText(fragment string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return parse.CollapseText(fragment), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("invalid HTML fragment: %w", err)
	}

	return Text(doc.Find("body")), nil
}
