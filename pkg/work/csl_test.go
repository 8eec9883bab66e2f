package work

import (
	"encoding/json"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalCrossRef(t *testing.T) {
	t.Parallel()

	var work Work
	require.NoError(t, json.Unmarshal([]byte(heredoc.Doc(`
		{
			"type": "article-journal",
			"DOI": "10.1021/acs.jctc.2c00123",
			"URL": "http://dx.doi.org/10.1021/acs.jctc.2c00123",
			"title": "Multireference <i>ab initio</i> methods",
			"author": [
				{"given": "Paul J.", "family": "Robinson", "sequence": "first", "affiliation": []},
				{"given": "Jean-Paul", "family": "Doe", "sequence": "additional", "affiliation": []},
				{"name": "The Consortium", "sequence": "additional", "affiliation": []}
			],
			"container-title": "Journal of Chemical Theory and Computation",
			"container-title-short": "J. Chem. Theory Comput.",
			"volume": "18",
			"issue": "5",
			"page": "2898-2910",
			"published": {"date-parts": [[2022, 4, 14]]},
			"created": {"date-parts": [[2022, 3, 30]], "date-time": "2022-03-30T15:41:12Z", "timestamp": 1648654872000}
		}`)), &work))

	require.Equal(t, Work{
		DOI:   "10.1021/acs.jctc.2c00123",
		URL:   "http://dx.doi.org/10.1021/acs.jctc.2c00123",
		Title: "Multireference <i>ab initio</i> methods",
		Authors: []Author{
			{Given: "Paul J.", Family: "Robinson"},
			{Given: "Jean-Paul", Family: "Doe"},
			{Family: "The Consortium"},
		},
		ContainerTitle:      "Journal of Chemical Theory and Computation",
		ContainerTitleShort: "J. Chem. Theory Comput.",
		Volume:              "18",
		Page:                "2898-2910",
		Published:           Date{Year: 2022, Month: 4, Day: 14},
		Created:             Date{Year: 2022, Month: 3, Day: 30},
	}, work)
}

func TestUnmarshalManual(t *testing.T) {
	t.Parallel()

	var work Work
	require.NoError(t, json.Unmarshal([]byte(heredoc.Doc(`
		{
			"title": ["", "Preprint title"],
			"authors": [{"firstName": "Ann", "lastName": "Smith"}],
			"container-title": "ChemRxiv",
			"volume": 12,
			"article-number": "e123",
			"issued": {"date-parts": [["2021", "7"]]},
			"URL": "https://doi.org/10.26434/chemrxiv-2021-abcde",
			"status_published": true
		}`)), &work))

	require.Equal(t, Work{
		Title:          "Preprint title",
		Authors:        []Author{{Given: "Ann", Family: "Smith"}},
		ContainerTitle: "ChemRxiv",
		Volume:         "12",
		ArticleNumber:  "e123",
		URL:            "https://doi.org/10.26434/chemrxiv-2021-abcde",
		Published:      Date{Year: 2021, Month: 7},
		Status:         mo.Some(true),
	}, work)
}

func TestUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		`{"title": {"value": "Title"}}`,
		`{"title": "Title", "published": {"date-parts": [[2022, 13, 1]]}}`,
		`{"title": "Title", "published": {"date-parts": [[2022, "May"]]}}`,
		`{"title": "Title", "author": [{"sequence": "first"}]}`,
	} {
		var work Work
		require.Error(t, json.Unmarshal([]byte(data), &work), data)
	}
}

func TestUnmarshalNullDateParts(t *testing.T) {
	t.Parallel()

	var work Work
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Title", "published": {"date-parts": [[null]]}}`), &work))
	require.True(t, work.Published.IsZero())
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	work := Work{
		ID:             "arXiv:2207.01234",
		DOI:            "10.1103/PhysRevB.105.045101",
		Title:          "Title",
		Authors:        []Author{{Given: "Paul J.", Family: "Robinson"}},
		ContainerTitle: "arXiv:2207.01234",
		URL:            "http://arxiv.org/abs/2207.01234",
		Published:      Date{Year: 2022, Month: 7, Day: 4},
		Status:         mo.Some(false),
	}

	data, err := json.Marshal(&work)
	require.NoError(t, err)
	require.JSONEq(t, heredoc.Doc(`
		{
			"id": "arXiv:2207.01234",
			"DOI": "10.1103/PhysRevB.105.045101",
			"title": "Title",
			"author": [{"given": "Paul J.", "family": "Robinson"}],
			"container-title": "arXiv:2207.01234",
			"URL": "http://arxiv.org/abs/2207.01234",
			"published": {"date-parts": [[2022, 7, 4]]},
			"status_published": false
		}`), string(data))

	var decoded Work
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, work, decoded)
}
