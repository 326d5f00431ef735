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
	"math"
	"strconv"
	"strings"
	"time"
)

// Granularity is the time resolution of a record collection
type Granularity string

const (
	GranularityMonthly Granularity = "monthly"
	GranularityDaily   Granularity = "daily"
	GranularityHourly  Granularity = "hourly"
)

// UsageResponse is the wire envelope for every usage endpoint
type UsageResponse struct {
	Data []UsageRecord `json:"data"`
}

// UsageRecord is one energy-usage observation as delivered by the API.
// Quantities arrive as numeric strings; dates arrive as ISO-8601 strings
// that may or may not carry a time and zone suffix.
type UsageRecord struct {
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date,omitempty"`
	TotalConsumption string `json:"total_consumption"`
	TotalCharges     string `json:"total_charges"`
	IntervalLength   int    `json:"interval_length,omitempty"`
}

// EnergyRecord is the parsed, immutable form of a UsageRecord. All derived
// views are pure functions of collections of these plus selection state.
type EnergyRecord struct {
	FromDate string // raw wire timestamp, kept for display and generic sorting
	ToDate   string

	Date     time.Time // normalized calendar date (local noon)
	Interval time.Time // full UTC timestamp, hourly granularity only

	Consumption float64 // kWh
	Charges     float64 // currency
	Billed      int     // days billed, display only
}

// parseAmount converts a numeric-string quantity to a float. Missing or
// malformed values contribute 0 rather than an error, so one bad record
// never blocks aggregation of the rest.
func parseAmount(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}

	return parsed
}

// ParseRecords converts wire records into EnergyRecords, preserving
// insertion order. Monthly and daily records with an unparseable from_date
// are excluded, since they cannot participate in any date-keyed view.
// Hourly records instead fall back to the current instant, matching the
// behaviour of the detail view this data feeds.
func ParseRecords(wire []UsageRecord, granularity Granularity, logger *Logger) []EnergyRecord {
	records := make([]EnergyRecord, 0, len(wire))

	for _, w := range wire {
		record := EnergyRecord{
			FromDate:    w.FromDate,
			ToDate:      w.ToDate,
			Consumption: parseAmount(w.TotalConsumption),
			Charges:     parseAmount(w.TotalCharges),
			Billed:      w.IntervalLength,
		}

		if granularity == GranularityHourly {
			interval, err := NormalizeInterval(w.FromDate)
			if err != nil {
				interval = time.Now().UTC()
				if logger != nil {
					logger.Warn("Interval timestamp unparseable, using current time",
						"from_date", w.FromDate,
						"error", err,
					)
				}
			}
			record.Interval = interval
			record.Date = time.Date(interval.Year(), interval.Month(), interval.Day(), 12, 0, 0, 0, time.Local)
			records = append(records, record)
			continue
		}

		date, err := NormalizeDate(w.FromDate)
		if err != nil {
			if logger != nil {
				logger.LogRecordExcluded(string(granularity), w.FromDate, err)
			}
			continue
		}

		record.Date = date
		records = append(records, record)
	}

	return records
}
