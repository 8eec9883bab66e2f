package parse

import (
	"fmt"
	"strings"
	"time"
)

var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date parses ISO 8601 style dates returned by the preprint servers. Dates without a time zone are treated as UTC.
func Date(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, format := range dateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date: %q", value)
}
