package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Parallel()

	for value, expected := range map[string]time.Time{
		"2022-07-14":                    time.Date(2022, 7, 14, 0, 0, 0, 0, time.UTC),
		"2022-07-14T09:23:01.231Z":      time.Date(2022, 7, 14, 9, 23, 1, 231000000, time.UTC),
		"2022-07-14T09:23:01+03:00":     time.Date(2022, 7, 14, 6, 23, 1, 0, time.UTC),
		" 2022-07-14T09:23:01 ":         time.Date(2022, 7, 14, 9, 23, 1, 0, time.UTC),
		"2021-12-31T23:30:00.000-01:00": time.Date(2022, 1, 1, 0, 30, 0, 0, time.UTC),
	} {
		date, err := Date(value)
		require.NoError(t, err, value)
		require.Equal(t, expected, date, value)
	}

	_, err := Date("14 July 2022")
	require.EqualError(t, err, `invalid date: "14 July 2022"`)
}
