package work

import (
	"time"
)

// Date is a possibly partial date: month and day are zero when unknown.
type Date struct {
	Year  int
	Month int
	Day   int
}

func MakeDate(time time.Time) Date {
	if time.IsZero() {
		return Date{}
	}
	return Date{Year: time.Year(), Month: int(time.Month()), Day: time.Day()}
}

func (d Date) IsZero() bool {
	return d.Year == 0
}

// Time converts the date to UTC midnight time assuming the first month and day for unknown parts.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.Year, time.Month(max(d.Month, 1)), max(d.Day, 1), 0, 0, 0, 0, time.UTC)
}

func (d Date) parts() []int {
	switch {
	case d.IsZero():
		return nil
	case d.Month == 0:
		return []int{d.Year}
	case d.Day == 0:
		return []int{d.Year, d.Month}
	default:
		return []int{d.Year, d.Month, d.Day}
	}
}
