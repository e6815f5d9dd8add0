// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the formats found in feeds, meta tags and visible bylines

package time

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISOMillis is the output layout for normalised timestamps
const ISOMillis = "2006-01-02T15:04:05.000Z"

// Common time formats found in RSS/Atom feeds and meta tags
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// minYear rejects year-less or implausible dates such as "March 5",
// which dateparse reads as year 0
const minYear = 1970

// bylinePrefix matches labels that precede dates in visible text
var bylinePrefix = regexp.MustCompile(`(?i)^(published|updated|posted|last updated|first published)( on)?:?\s*`)

// ParseFlexibleTime attempts to parse a time string using various formats.
// Zone-less values are read as UTC. Returns the zero time when nothing fits
// or the year is before 1970.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	timeStr = bylinePrefix.ReplaceAllString(timeStr, "")
	timeStr = strings.TrimSpace(strings.TrimSuffix(timeStr, "|"))

	for _, format := range timeFormats {
		if t, err := time.ParseInLocation(format, timeStr, time.UTC); err == nil {
			return plausible(t)
		}
	}

	if t, err := dateparse.ParseIn(timeStr, time.UTC); err == nil {
		return plausible(t)
	}

	return time.Time{}
}

func plausible(t time.Time) time.Time {
	if t.Year() < minYear {
		return time.Time{}
	}
	return t
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}

// FormatISO renders t in UTC with millisecond precision
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// NormalizeISO parses timeStr and re-renders it with FormatISO.
// Returns "" when the value cannot be parsed.
func NormalizeISO(timeStr string) string {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return ""
	}
	return FormatISO(t)
}
