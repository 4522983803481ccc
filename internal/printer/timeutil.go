package printer

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgo returns a human-readable relative time, zero times are rendered as "-".
func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatDate returns the date part of t, nil is rendered as "-".
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}
