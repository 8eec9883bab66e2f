package render

import (
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/rss"
	"github.com/KonishchevDmitry/easypub/pkg/url"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

func TestRSS(t *testing.T) {
	t.Parallel()

	list := &publist.List{
		Preprints: []publist.Entry{{Number: 2, Anchor: "preprint_2", Work: &work.Work{
			ID:        "arXiv:2207.01234",
			Title:     "Some preprint",
			Authors:   []work.Author{{Given: "Ann", Family: "Smith"}},
			URL:       "http://arxiv.org/abs/2207.01234",
			Published: work.Date{Year: 2022, Month: 7, Day: 4},
		}}},
		Published: []publist.Group{{Year: 2021, Entries: []publist.Entry{{Number: 1, Anchor: "article_1", Work: &work.Work{
			ID:             "10.1063/5.0090126",
			DOI:            "10.1063/5.0090126",
			Title:          "Some article",
			ContainerTitle: "J. Chem. Phys.",
			URL:            "https://doi.org/10.1063/5.0090126",
			Published:      work.Date{Year: 2021, Month: 3},
		}}}}},
	}

	feed := RSS(list, "Publications", url.MustURL("https://example.com/publications.html"))

	data, err := rss.Generate(feed)
	require.NoError(t, err)
	require.Equal(t, heredoc.Doc(`
		<?xml version="1.0" encoding="UTF-8"?>
		<rss version="2.0">
		    <channel>
		        <title>Publications</title>
		        <link>https://example.com/publications.html</link>
		        <description>Publications: 2 publications</description>
		        <generator>easypub</generator>
		        <item>
		            <title>Some preprint</title>
		            <guid isPermaLink="true">http://arxiv.org/abs/2207.01234</guid>
		            <link>http://arxiv.org/abs/2207.01234</link>
		            <description>A. Smith,&lt;span class=&#34;title&#34;&gt;&lt;a href=&#34;http://arxiv.org/abs/2207.01234&#34;&gt; Some preprint&lt;/a&gt;. &lt;/span&gt;&lt;span class=&#34;year&#34;&gt;(2022)&lt;/span&gt;.</description>
		            <pubDate>Mon, 04 Jul 2022 00:00:00 GMT</pubDate>
		            <author>A. Smith</author>
		            <category>Preprint</category>
		        </item>
		        <item>
		            <title>Some article</title>
		            <guid isPermaLink="false">10.1063/5.0090126</guid>
		            <link>https://doi.org/10.1063/5.0090126</link>
		            <description>&lt;span class=&#34;title&#34;&gt;&lt;a href=&#34;https://doi.org/10.1063/5.0090126&#34;&gt; Some article&lt;/a&gt;. &lt;/span&gt;&lt;span class=&#34;journal&#34;&gt;J. Chem. Phys. &lt;/span&gt;&lt;span class=&#34;year&#34;&gt;(2021)&lt;/span&gt;.</description>
		            <pubDate>Mon, 01 Mar 2021 00:00:00 GMT</pubDate>
		            <category>2021</category>
		        </item>
		    </channel>
		</rss>`,
	), string(data))

	parsed, err := rss.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 2)
	require.Equal(t, "10.1063/5.0090126", parsed.Items[1].GUID.ID)
}
