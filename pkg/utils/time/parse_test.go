package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339 utc", "2024-01-01T10:00:00Z", "2024-01-01T10:00:00.000Z"},
		{"rfc3339 offset", "2024-01-01T12:30:00+02:00", "2024-01-01T10:30:00.000Z"},
		{"fractional seconds", "2024-03-05T08:09:10.123456Z", "2024-03-05T08:09:10.123Z"},
		{"rfc1123", "Mon, 02 Jan 2006 15:04:05 GMT", "2006-01-02T15:04:05.000Z"},
		{"date only", "2024-06-15", "2024-06-15T00:00:00.000Z"},
		{"zone-less read as utc", "2024-06-15 09:00:00", "2024-06-15T09:00:00.000Z"},
		{"prose date", "March 5, 2024", "2024-03-05T00:00:00.000Z"},
		{"byline label", "Published: 2024-01-01T10:00:00Z", "2024-01-01T10:00:00.000Z"},
		{"empty", "", ""},
		{"garbage", "not a date at all", ""},
		{"year-less prose", "March 5", ""},
		{"year before 1970", "1901-01-01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeISO(tt.input))
		})
	}
}

func TestParseWithDefault(t *testing.T) {
	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, ParseWithDefault("??", fallback))
	assert.Equal(t, 2024, ParseWithDefault("2024-02-02", fallback).Year())
}
