// Package deadline turns free-form deadline text into sortable keys and display labels.
package deadline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Max is the key of open-ended or unparseable deadlines. It sorts after every real date.
const Max int64 = math.MaxInt64

const labelLayout = "Jan 2, 2006"

var openEndedMarkers = []string{
	"rolling",
	"open",
	"unknown",
	"n/a",
	"varies",
	"ongoing",
	"year-round",
	"anytime",
	"tba",
	"tbd",
	"check website",
	"soon",
}

var embeddedDate = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)

// Key returns the deadline as Unix milliseconds, or Max when there is no usable date.
func Key(raw string) int64 {
	t, ok := Parse(raw)
	if !ok {
		return Max
	}
	return t.UnixMilli()
}

// Parse resolves raw to a UTC time. ok is false for open-ended or unparseable values.
func Parse(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if IsOpenEnded(trimmed) {
		return time.Time{}, false
	}
	if bareNumber(trimmed) {
		return time.Time{}, false
	}
	if t, err := dateparse.ParseIn(trimmed, time.UTC); err == nil {
		return t.UTC(), true
	}
	if m := embeddedDate.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		padded := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if t, err := time.ParseInLocation(time.DateOnly, padded, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// bareNumber catches digit runs longer than a year, which dateparse would read as Unix
// timestamps.
func bareNumber(value string) bool {
	if len(value) <= 4 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsOpenEnded reports whether raw is empty or names a rolling deadline.
func IsOpenEnded(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return true
	}
	for _, marker := range openEndedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Label is the text shown next to a record: "Rolling", a medium date, or raw as given.
func Label(raw string) string {
	if IsOpenEnded(raw) {
		return "Rolling"
	}
	if t, ok := Parse(raw); ok {
		return t.Format(labelLayout)
	}
	return strings.TrimSpace(raw)
}
