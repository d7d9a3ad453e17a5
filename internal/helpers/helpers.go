package helpers

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	PageSize   = 10
)

func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// ParseDate accepts a plain calendar date or a full RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = StringTrim(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	return t, nil
}

// StartOfDay strips the time of day, keeping t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsFutureOrToday compares calendar dates only, in the location of date.
func IsFutureOrToday(date, now time.Time) bool {
	today := StartOfDay(now.In(date.Location()))
	return !StartOfDay(date).Before(today)
}

// PageOffset converts a 1-based page number into a skip count.
func PageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
