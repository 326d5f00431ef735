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
	"math"
	"sort"
	"time"
)

// RecordField selects a numeric field of an EnergyRecord for aggregation
type RecordField string

const (
	FieldConsumption RecordField = "total_consumption"
	FieldCharges     RecordField = "total_charges"
)

// fieldValue reads the selected numeric field. Unknown fields read as 0.
func fieldValue(record EnergyRecord, field RecordField) float64 {
	switch field {
	case FieldConsumption:
		return record.Consumption
	case FieldCharges:
		return record.Charges
	default:
		return 0
	}
}

// Sum totals a numeric field over a collection. Malformed wire values were
// already absorbed as 0 at parse time, so the result is always finite.
func Sum(records []EnergyRecord, field RecordField) float64 {
	total := 0.0
	for _, r := range records {
		total += fieldValue(r, field)
	}
	return total
}

// AveragePerRecord returns sum/count, or 0 for an empty collection
func AveragePerRecord(records []EnergyRecord, field RecordField) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, field) / float64(len(records))
}

// MonthOverMonthChange compares the consumption of the two most recent
// records by normalized date. It reports ok=false when fewer than two
// records exist or the previous consumption is 0, rather than producing a
// meaningless ratio. Positive means an increase, rounded to one decimal.
func MonthOverMonthChange(records []EnergyRecord) (float64, bool) {
	if len(records) < 2 {
		return 0, false
	}

	ordered := make([]EnergyRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	last := ordered[len(ordered)-1]
	prev := ordered[len(ordered)-2]
	if prev.Consumption == 0 {
		return 0, false
	}

	change := (last.Consumption - prev.Consumption) / prev.Consumption * 100
	return math.Round(change*10) / 10, true
}

// UniqueYears returns the distinct calendar years present, most recent first
func UniqueYears(records []EnergyRecord) []int {
	seen := make(map[int]bool)
	var years []int

	for _, r := range records {
		year := r.Date.Year()
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// MonthOption is one entry of the month selector: a human label plus a
// stable value key ("YYYY-M", month not zero-padded)
type MonthOption struct {
	Label string
	Value string
	Year  int
	Month time.Month
}

// DistinctMonths returns the distinct (year, month) pairs present in a
// daily-granularity collection, most recent first. The month selector is
// populated from daily data so it stays independent of the monthly dataset.
func DistinctMonths(daily []EnergyRecord) []MonthOption {
	seen := make(map[string]bool)
	var months []MonthOption

	for _, r := range daily {
		key := MonthKey(r.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		months = append(months, MonthOption{
			Label: fmt.Sprintf("%s %d", r.Date.Month().String(), r.Date.Year()),
			Value: key,
			Year:  r.Date.Year(),
			Month: r.Date.Month(),
		})
	}

	sort.SliceStable(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})

	return months
}

// Derived metrics

// CostPerUnit returns charges/consumption, or 0 whenever consumption is not
// positive. Never divides by zero.
func CostPerUnit(consumption, charges float64) float64 {
	if consumption <= 0 {
		return 0
	}
	return charges / consumption
}

// TrendPercentage expresses a record's consumption as a percentage of the
// peak consumption across allRecords, clamped to [0, 100]. The peak is
// floored at 1 so an all-zero collection cannot divide by zero, and the
// result is capped because some call sites compute the peak over a
// different (unfiltered) collection than the displayed value.
func TrendPercentage(consumption float64, allRecords []EnergyRecord) int {
	peak := 0.0
	for _, r := range allRecords {
		if r.Consumption > peak {
			peak = r.Consumption
		}
	}
	if peak < 1 {
		peak = 1
	}

	percent := int(math.Round(consumption / peak * 100))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent
}

// PeakInterval returns the record with the highest consumption, first
// occurrence winning ties. ok=false on an empty collection.
func PeakInterval(records []EnergyRecord) (EnergyRecord, bool) {
	if len(records) == 0 {
		return EnergyRecord{}, false
	}

	peak := records[0]
	for _, r := range records[1:] {
		if r.Consumption > peak.Consumption {
			peak = r
		}
	}
	return peak, true
}

// HighestConsumptionRecord feeds the "highest month" summary card. It must
// run over the entire monthly dataset, not the year-filtered view, so the
// card does not change when the user switches years.
func HighestConsumptionRecord(monthly []EnergyRecord) (EnergyRecord, bool) {
	return PeakInterval(monthly)
}

// YearToDateTotals sums consumption and charges over the entire monthly
// dataset. The "year-to-date" label is kept from the original dashboard
// even though the totals cover whatever window the source returned; the
// source may already be year-bounded upstream.
func YearToDateTotals(monthly []EnergyRecord) (consumption, charges float64) {
	return Sum(monthly, FieldConsumption), Sum(monthly, FieldCharges)
}
