package source

import (
	"net/http"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/easypub/pkg/test/testutil"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const atomContentType = "application/atom+xml; charset=utf-8"

func TestArXivID(t *testing.T) {
	t.Parallel()

	for id, expected := range map[string]string{
		"2207.01234":        "2207.01234",
		"arXiv:2207.01234":  "2207.01234",
		"arxiv:2207.01234 ": "2207.01234",
		"hep-th/9901001":    "hep-th/9901001",
	} {
		require.Equal(t, expected, ArXivID(id), "%q", id)
	}
}

func TestArXiv(t *testing.T) {
	t.Parallel()

	baseURL, requests := serve(t, http.StatusOK, atomContentType, heredoc.Doc(`
		<?xml version="1.0" encoding="UTF-8"?>
		<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
			<link href="http://arxiv.org/api/query?id_list=2207.01234" rel="self" type="application/atom+xml"/>
			<title type="html">ArXiv Query: search_query=&amp;id_list=2207.01234&amp;start=0&amp;max_results=10</title>
			<id>http://arxiv.org/api/KOPbyvY6JYsXRJq5G7ZNyWYk8ww</id>
			<updated>2022-07-05T00:00:00-04:00</updated>
			<entry>
				<id>http://arxiv.org/abs/2207.01234v2</id>
				<updated>2022-08-01T10:00:00Z</updated>
				<published>2022-07-04T17:59:59Z</published>
				<title>Some  preprint
		  title</title>
				<summary>Some abstract.</summary>
				<author><name>Paul J Robinson</name></author>
				<author><name>Ann Smith</name></author>
				<arxiv:doi>10.1063/5.0090126</arxiv:doi>
				<arxiv:journal_ref>J. Chem. Phys. 157, 014101 (2022)</arxiv:journal_ref>
				<link href="http://arxiv.org/abs/2207.01234v2" rel="alternate" type="text/html"/>
				<arxiv:primary_category term="physics.chem-ph" scheme="http://arxiv.org/schemas/atom"/>
			</entry>
		</feed>`,
	))

	result, err := NewArXiv(baseURL+"/api/query").Get(testutil.FetchContext(t), "arXiv:2207.01234")
	require.NoError(t, err)
	require.Equal(t, []string{"/api/query?id_list=2207.01234"}, requests())
	require.Equal(t, &work.Work{
		ID:    "arXiv:2207.01234",
		DOI:   "10.1063/5.0090126",
		Title: "Some preprint title",
		Authors: []work.Author{
			{Given: "Paul J.", Family: "Robinson"},
			{Given: "Ann", Family: "Smith"},
		},
		ContainerTitle: "arXiv:2207.01234",
		URL:            "http://arxiv.org/abs/2207.01234",
		Published:      work.Date{Year: 2022, Month: 7, Day: 4},
		Status:         mo.Some(true),
		Source:         "arXiv",
	}, result)
}

func TestArXivUnpublished(t *testing.T) {
	t.Parallel()

	baseURL, _ := serve(t, http.StatusOK, atomContentType, heredoc.Doc(`
		<?xml version="1.0" encoding="UTF-8"?>
		<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
			<title type="html">ArXiv Query: id_list=2301.00001</title>
			<id>http://arxiv.org/api/query</id>
			<updated>2023-01-02T00:00:00-05:00</updated>
			<entry>
				<id>http://arxiv.org/abs/2301.00001v1</id>
				<published>2023-01-01T08:00:00Z</published>
				<title>Unpublished preprint</title>
				<author><name>Ann Smith</name></author>
				<arxiv:comment>10 pages</arxiv:comment>
			</entry>
		</feed>`,
	))

	result, err := NewArXiv(baseURL).Get(testutil.FetchContext(t), "2301.00001")
	require.NoError(t, err)
	require.Equal(t, mo.Some(false), result.Status)
	require.Empty(t, result.DOI)
	require.Equal(t, "2301.00001", result.ContainerTitle)
	require.Equal(t, work.Date{Year: 2023, Month: 1, Day: 1}, result.Published)
}

func TestArXivNotFound(t *testing.T) {
	t.Parallel()

	errorFeed := heredoc.Doc(`
		<?xml version="1.0" encoding="UTF-8"?>
		<feed xmlns="http://www.w3.org/2005/Atom">
			<title type="html">ArXiv Query: id_list=invalid</title>
			<id>http://arxiv.org/api/query</id>
			<updated>2022-07-05T00:00:00-04:00</updated>
			<entry>
				<id>http://arxiv.org/api/errors#incorrect_id_format_for_invalid</id>
				<title>Error</title>
				<summary>incorrect id format for invalid</summary>
				<author><name>arXiv api core</name></author>
			</entry>
		</feed>`,
	)

	emptyFeed := heredoc.Doc(`
		<?xml version="1.0" encoding="UTF-8"?>
		<feed xmlns="http://www.w3.org/2005/Atom">
			<title type="html">ArXiv Query: id_list=2207.99999</title>
			<id>http://arxiv.org/api/query</id>
			<updated>2022-07-05T00:00:00-04:00</updated>
		</feed>`,
	)

	for name, testCase := range map[string]struct {
		status int
		body   string
	}{
		"error-status": {http.StatusBadRequest, errorFeed},
		"error-entry":  {http.StatusOK, errorFeed},
		"empty":        {http.StatusOK, emptyFeed},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			baseURL, _ := serve(t, testCase.status, atomContentType, testCase.body)

			_, err := NewArXiv(baseURL).Get(testutil.FetchContext(t), "arXiv:invalid")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}
