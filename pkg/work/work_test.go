package work

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	work := Work{
		DOI:            " 10.1063/5.0090126 ",
		Title:          "Spin\n   dynamics of Fe<sub>2</sub>O<sub>3</sub>",
		Authors:        []Author{{Given: " Ann ", Family: "Smith\n"}},
		ContainerTitle: "The Journal of\n Chemical Physics",
	}
	require.NoError(t, work.Normalize())

	require.Equal(t, Work{
		DOI:            "10.1063/5.0090126",
		Title:          "Spin dynamics of Fe2O3",
		Authors:        []Author{{Given: "Ann", Family: "Smith"}},
		ContainerTitle: "The Journal of Chemical Physics",
		URL:            "https://doi.org/10.1063/5.0090126",
	}, work)
}

func TestJournalAndPages(t *testing.T) {
	t.Parallel()

	work := Work{ContainerTitleShort: "J. Chem. Phys.", ArticleNumber: "044104"}
	require.Equal(t, "J. Chem. Phys.", work.Journal())
	require.Equal(t, "044104", work.Pages())

	work.ContainerTitle, work.Page = "The Journal of Chemical Physics", "1-10"
	require.Equal(t, "The Journal of Chemical Physics", work.Journal())
	require.Equal(t, "1-10", work.Pages())
}

func TestSortDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		work     Work
		sortDate time.Time
		year     int
	}{{
		name:     "full publication date",
		work:     Work{Published: Date{2022, 4, 14}, Created: Date{2022, 3, 30}},
		sortDate: time.Date(2022, 4, 14, 0, 0, 0, 0, time.UTC),
		year:     2022,
	}, {
		name:     "publication month",
		work:     Work{Published: Date{2022, 4, 0}, Created: Date{2022, 3, 30}},
		sortDate: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		year:     2022,
	}, {
		name:     "publication year with creation date",
		work:     Work{Published: Date{2023, 0, 0}, Created: Date{2023, 2, 11}},
		sortDate: time.Date(2023, 2, 11, 0, 0, 0, 0, time.UTC),
		year:     2023,
	}, {
		name:     "publication year with creation date of another year",
		work:     Work{Published: Date{2023, 0, 0}, Created: Date{2022, 11, 30}},
		sortDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		year:     2023,
	}, {
		name:     "publication year only",
		work:     Work{Published: Date{2021, 0, 0}},
		sortDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		year:     2021,
	}, {
		name:     "creation date only",
		work:     Work{Created: Date{2021, 0, 0}},
		sortDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		year:     2021,
	}, {
		name: "unknown",
	}}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.sortDate, testCase.work.SortDate())
			require.Equal(t, testCase.year, testCase.work.Year())
		})
	}
}

func TestMakeDate(t *testing.T) {
	t.Parallel()
	require.Equal(t, Date{2022, 7, 4}, MakeDate(time.Date(2022, 7, 4, 18, 0, 0, 0, time.UTC)))
	require.Equal(t, Date{}, MakeDate(time.Time{}))
}
