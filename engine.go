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
	"sort"
	"time"
)

// SortDirection is the direction of a usage table sort
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortConfig names the active sort key and its direction
type SortConfig struct {
	Key       string
	Direction SortDirection
}

// DateRange is an inclusive calendar-day range. A zero bound means unset.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Selection is the ephemeral UI state a view is derived from. It is only
// ever replaced wholesale by the With* transitions, never mutated, so a
// view model is always a pure function of (records, selection).
type Selection struct {
	Year     int    // 0 means all years
	Month    string // "YYYY-M" selector key, empty when none
	Range    DateRange
	Sort     SortConfig
	Page     int
	PageSize int
}

// NewSelection returns a selection with the default sort and pagination
func NewSelection() Selection {
	return Selection{
		Sort:     SortConfig{Key: DefaultSortKey, Direction: SortAscending},
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithYear selects a year filter. 0 selects all years.
func (s Selection) WithYear(year int) Selection {
	s.Year = year
	s.Page = 1
	return s
}

// WithMonth selects a month and resets the date range to that month's first
// and last day
func (s Selection) WithMonth(option MonthOption) Selection {
	s.Month = option.Value
	s.Range.Start, s.Range.End = monthBounds(option.Year, option.Month)
	s.Page = 1
	return s
}

// WithRangeStart edits the start bound of the date range
func (s Selection) WithRangeStart(start time.Time) Selection {
	s.Range.Start = start
	s.Page = 1
	return s
}

// WithRangeEnd edits the end bound of the date range
func (s Selection) WithRangeEnd(end time.Time) Selection {
	s.Range.End = end
	s.Page = 1
	return s
}

// WithSort applies the sort-toggle policy: a new key starts ascending,
// re-selecting the active key flips its direction. Any sort action resets
// pagination to the first page.
func (s Selection) WithSort(key string) Selection {
	if s.Sort.Key == key {
		if s.Sort.Direction == SortAscending {
			s.Sort.Direction = SortDescending
		} else {
			s.Sort.Direction = SortAscending
		}
	} else {
		s.Sort = SortConfig{Key: key, Direction: SortAscending}
	}
	s.Page = 1
	return s
}

// WithPage navigates to a page, clamped to [1, totalPages]
func (s Selection) WithPage(page, totalPages int) Selection {
	if page < 1 {
		page = 1
	}
	if totalPages >= 1 && page > totalPages {
		page = totalPages
	}
	s.Page = page
	return s
}

// WithPageSize changes the page size and resets to the first page
func (s Selection) WithPageSize(size int) Selection {
	s.PageSize = size
	s.Page = 1
	return s
}

// FilterByYear keeps records whose normalized date falls in the selected
// year. Year 0 ("All") passes the collection through untouched.
func FilterByYear(records []EnergyRecord, year int) []EnergyRecord {
	if year == 0 {
		return records
	}

	filtered := make([]EnergyRecord, 0, len(records))
	for _, r := range records {
		if r.Date.Year() == year {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterByRange keeps records whose normalized date lies inside the
// inclusive day-granularity range, returned oldest first. The fetch order
// is typically newest first, but charts need ascending dates.
func FilterByRange(records []EnergyRecord, r DateRange) []EnergyRecord {
	filtered := make([]EnergyRecord, 0, len(records))
	for _, record := range records {
		if !r.Start.IsZero() && dayBefore(record.Date, r.Start) {
			continue
		}
		if !r.End.IsZero() && dayBefore(r.End, record.Date) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})
	return filtered
}

// dayBefore reports whether a's calendar day is strictly before b's
func dayBefore(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() < b.Year()
	}
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}

// sortValue extracts the comparable value for a sort key. ok=false marks a
// null value, which sorts after every non-null value in either direction.
func sortValue(record EnergyRecord, key string) (numeric float64, text string, isText bool, ok bool) {
	switch key {
	case "from_date":
		return float64(record.Date.UnixNano()), "", false, !record.Date.IsZero()
	case "total_consumption":
		return record.Consumption, "", false, true
	case "total_charges":
		return record.Charges, "", false, true
	case "interval_length":
		return float64(record.Billed), "", false, record.Billed != 0
	case "to_date":
		return 0, record.ToDate, true, record.ToDate != ""
	default:
		return 0, "", false, false
	}
}

// SortRecords returns a stably sorted copy of the collection. Ties keep
// their prior relative order, so sorting twice by the same key is a no-op.
func SortRecords(records []EnergyRecord, cfg SortConfig) []EnergyRecord {
	sorted := make([]EnergyRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		ni, ti, textI, okI := sortValue(sorted[i], cfg.Key)
		nj, tj, _, okJ := sortValue(sorted[j], cfg.Key)

		// Nulls last regardless of direction
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}

		var less bool
		if textI {
			if ti == tj {
				return false
			}
			less = ti < tj
		} else {
			if ni == nj {
				return false
			}
			less = ni < nj
		}

		if cfg.Direction == SortDescending {
			return !less
		}
		return less
	})

	return sorted
}

// TotalPages is ceil(total/pageSize), but never less than 1 so an empty
// table still renders page 1 of 1
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices out the 1-indexed page [(page-1)*size, page*size)
func Paginate(records []EnergyRecord, page, pageSize int) []EnergyRecord {
	if pageSize < 1 || page < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return nil
	}

	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
