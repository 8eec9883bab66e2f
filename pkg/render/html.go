// Package render renders the publication list.
package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/KonishchevDmitry/easypub/pkg/parse"
	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const HTMLContentType = "text/html; charset=utf-8"

// HTML renders the publication list as an HTML fragment to be included into a web page.
func HTML(writer io.Writer, list *publist.List) error {
	w := bufio.NewWriter(writer)

	_, _ = io.WriteString(w, "<div id=\"main\"> \n")
	_, _ = io.WriteString(w, "<h2>Publications</h2> \n")
	_, _ = io.WriteString(w, "<h3>Preprints</h3> \n")
	_, _ = io.WriteString(w, "<ol class=\"pubs\"> \n")
	for _, entry := range list.Preprints {
		writeEntry(w, entry)
	}
	_, _ = io.WriteString(w, "</ol>\n")

	for _, group := range list.Published {
		_, _ = fmt.Fprintf(w, "<h3>%s</h3>\n", YearTitle(group.Year))
		_, _ = io.WriteString(w, "<ol class=\"pubs\">\n")
		for _, entry := range group.Entries {
			writeEntry(w, entry)
		}
		_, _ = io.WriteString(w, "</ol>\n")
	}

	_, _ = io.WriteString(w, "</div> <!-- End main -->")

	return w.Flush()
}

func writeEntry(w *bufio.Writer, entry publist.Entry) {
	_, _ = fmt.Fprintf(w, "<li value=\"%d\">\n", entry.Number)
	_, _ = fmt.Fprintf(w, "<a class=\"anchor\" name=\"%s\"></a>\n", html.EscapeString(entry.Anchor))
	_, _ = io.WriteString(w, Article(entry.Work))
	_, _ = io.WriteString(w, "\n</li>\n")
}

// YearTitle returns title of a group of works published in the specified year.
func YearTitle(year int) string {
	if year == 0 {
		return "Undated"
	}
	return strconv.Itoa(year)
}

// Article renders a single citation.
func Article(work *work.Work) string {
	var buf strings.Builder

	if authors := Authors(work.Authors); authors != "" {
		buf.WriteString(html.EscapeString(authors))
		buf.WriteString(",")
	}

	title := html.EscapeString(work.Title)
	if work.URL != "" {
		fmt.Fprintf(&buf, `<span class="title"><a href="%s"> %s</a>. </span>`, html.EscapeString(work.URL), title)
	} else {
		fmt.Fprintf(&buf, `<span class="title"> %s. </span>`, title)
	}

	if journal := work.Journal(); journal != "" {
		fmt.Fprintf(&buf, `<span class="journal">%s </span>`, html.EscapeString(journal))
	}

	if work.Volume != "" {
		fmt.Fprintf(&buf, `<span class="vol">%s, </span>`, html.EscapeString(work.Volume))
	}

	if pages := work.Pages(); pages != "" {
		fmt.Fprintf(&buf, `<span class="pages">%s </span>`, html.EscapeString(pages))
	}

	if year := work.Year(); year != 0 {
		fmt.Fprintf(&buf, `<span class="year">(%d)</span>`, year)
	}

	buf.WriteString(".")

	return buf.String()
}

// Authors formats the author list: "A. B. Smith, C. Doe and J.-P. Roe".
func Authors(authors []work.Author) string {
	var buf strings.Builder

	for index, author := range authors {
		switch {
		case index == 0:
		case index == len(authors)-1:
			buf.WriteString(" and ")
		default:
			buf.WriteString(", ")
		}

		if initials := parse.Initials(author.Given); initials != "" {
			buf.WriteString(initials)
			buf.WriteString(" ")
		}
		buf.WriteString(author.Family)
	}

	return buf.String()
}
