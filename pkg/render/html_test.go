package render

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/query"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

func TestAuthors(t *testing.T) {
	t.Parallel()

	smith := work.Author{Given: "Paul J.", Family: "Smith"}
	doe := work.Author{Given: "Jean-Paul", Family: "Doe"}
	consortium := work.Author{Family: "The Consortium"}

	require.Empty(t, Authors(nil))
	require.Equal(t, "P. J. Smith", Authors([]work.Author{smith}))
	require.Equal(t, "P. J. Smith and J.-P. Doe", Authors([]work.Author{smith, doe}))
	require.Equal(t, "P. J. Smith, J.-P. Doe and The Consortium", Authors([]work.Author{smith, doe, consortium}))
}

func TestArticle(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		`P. J. Robinson and A. Smith,<span class="title"><a href="https://doi.org/10.1063/5.0090126"> `+
			`Ab initio methods</a>. </span><span class="journal">The Journal of Chemical Physics </span>`+
			`<span class="vol">157, </span><span class="pages">014101 </span><span class="year">(2022)</span>.`,
		Article(&work.Work{
			Title:          "Ab initio methods",
			Authors:        []work.Author{{Given: "Paul J.", Family: "Robinson"}, {Given: "Ann", Family: "Smith"}},
			ContainerTitle: "The Journal of Chemical Physics",
			Volume:         "157",
			ArticleNumber:  "014101",
			URL:            "https://doi.org/10.1063/5.0090126",
			Published:      work.Date{Year: 2022, Month: 7},
		}),
	)

	require.Equal(t,
		`<span class="title"> Q&amp;A &lt;draft&gt;. </span><span class="journal">J. Chem. </span>.`,
		Article(&work.Work{Title: "Q&A <draft>", ContainerTitleShort: "J. Chem."}),
	)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	preprint := &work.Work{
		Title:          "Some preprint",
		Authors:        []work.Author{{Given: "Ann", Family: "Smith"}},
		ContainerTitle: "arXiv:2207.01234",
		URL:            "http://arxiv.org/abs/2207.01234",
		Published:      work.Date{Year: 2022, Month: 7, Day: 4},
	}
	article := &work.Work{
		Title:          "Some article",
		Authors:        []work.Author{{Given: "Ann", Family: "Smith"}, {Given: "Bob", Family: "Doe"}},
		ContainerTitle: "J. Chem. Phys.",
		Volume:         "157",
		Page:           "1-10",
		URL:            "https://doi.org/10.1063/5.0090126",
		Published:      work.Date{Year: 2021, Month: 3},
	}
	undated := &work.Work{Title: "Undated article", URL: "https://example.com/"}

	list := &publist.List{
		Preprints: []publist.Entry{{Number: 3, Anchor: "preprint_3", Work: preprint}},
		Published: []publist.Group{
			{Year: 2021, Entries: []publist.Entry{{Number: 2, Anchor: "article_2", Work: article}}},
			{Year: 0, Entries: []publist.Entry{{Number: 1, Anchor: "article_1", Work: undated}}},
		},
	}

	var buf strings.Builder
	require.NoError(t, HTML(&buf, list))

	expected := heredoc.Doc(`
		<div id="main"> 
		<h2>Publications</h2> 
		<h3>Preprints</h3> 
		<ol class="pubs"> 
		<li value="3">
		<a class="anchor" name="preprint_3"></a>
		A. Smith,<span class="title"><a href="http://arxiv.org/abs/2207.01234"> Some preprint</a>. </span><span class="journal">arXiv:2207.01234 </span><span class="year">(2022)</span>.
		</li>
		</ol>
		<h3>2021</h3>
		<ol class="pubs">
		<li value="2">
		<a class="anchor" name="article_2"></a>
		A. Smith and B. Doe,<span class="title"><a href="https://doi.org/10.1063/5.0090126"> Some article</a>. </span><span class="journal">J. Chem. Phys. </span><span class="vol">157, </span><span class="pages">1-10 </span><span class="year">(2021)</span>.
		</li>
		</ol>
		<h3>Undated</h3>
		<ol class="pubs">
		<li value="1">
		<a class="anchor" name="article_1"></a>
		<span class="title"><a href="https://example.com/"> Undated article</a>. </span>.
		</li>
		</ol>
		</div> <!-- End main -->`,
	)
	require.Equal(t, expected, buf.String())

	citations, err := query.Citations(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, []string{"preprint_3", "article_2", "article_1"}, lo.Map(citations, func(citation query.Citation, _ int) string {
		return citation.Anchor
	}))
}

func TestHTMLEmpty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	require.NoError(t, HTML(&buf, &publist.List{}))
	require.Equal(t,
		"<div id=\"main\"> \n<h2>Publications</h2> \n<h3>Preprints</h3> \n<ol class=\"pubs\"> \n</ol>\n"+
			"</div> <!-- End main -->",
		buf.String())
}
