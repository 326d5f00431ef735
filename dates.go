// Copyright 2025 Matthew Gall <me@matthewgall.dev>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeDate converts a wire timestamp into a calendar date that is
// stable regardless of the viewer's timezone. The API mixes date-only
// strings ("2025-03-15") and full timestamps ("2025-03-15T23:00:00-08:00");
// both must map to the same logical day, so only the YYYY-MM-DD portion is
// kept and the date is pinned to local noon. An offset conversion can then
// never push the date onto an adjacent calendar day.
func NormalizeDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(time.DateOnly) {
		return time.Time{}, &InvalidDateError{Value: value}
	}

	parsed, err := time.Parse(time.DateOnly, trimmed[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: value}
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.Local), nil
}

// NormalizeInterval preserves the full timestamp for 15-minute interval
// records, where the time of day marks the interval boundary. The instant
// is kept in UTC since source timestamps represent fixed UTC-aligned meter
// intervals.
func NormalizeInterval(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, &InvalidDateError{Value: value}
	}

	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}

	// Some responses omit the zone suffix entirely
	if parsed, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
		return parsed.UTC(), nil
	}

	if parsed, err := time.Parse(time.DateOnly, trimmed); err == nil {
		return parsed.UTC(), nil
	}

	return time.Time{}, &InvalidDateError{Value: value}
}

// IntervalLabel formats a 12-hour clock label from the UTC hour and minute
// of an interval timestamp. Local time is deliberately not used here.
func IntervalLabel(t time.Time) string {
	utc := t.UTC()
	hour := utc.Hour()

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, utc.Minute(), meridiem)
}

// DateKey formats a normalized date as its YYYY-MM-DD grouping key
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// MonthKey formats a normalized date as its "YYYY-M" month selector key.
// The month is not zero-padded, matching the selector values emitted by
// DistinctMonths.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// sameCalendarDay reports whether two normalized dates fall on the same day
func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// monthBounds returns the first and last calendar day of the given month,
// pinned to local noon like every normalized date
func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first, last
}
