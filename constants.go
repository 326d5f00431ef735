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

import "time"

const (
	// MonthlyUsagePath is the REST endpoint for monthly usage records
	MonthlyUsagePath = "/usage/monthly"

	// DailyUsagePath is the REST endpoint for daily usage records
	DailyUsagePath = "/usage/daily"

	// HourlyUsagePath is the REST endpoint for 15-minute interval records,
	// scoped to a single calendar day via the "date" query parameter
	HourlyUsagePath = "/usage/hourly"
)

const (
	// DefaultPageSize is the usage table page size when none is configured
	DefaultPageSize = 8

	// DefaultSortKey is the usage table sort key when none is requested
	DefaultSortKey = "from_date"
)

// PageSizeOptions are the selectable usage table page sizes
var PageSizeOptions = []int{5, 8, 12}

// Cache TTLs per data granularity. Monthly records only change once a
// billing cycle; interval data keeps updating through the day.
const (
	MonthlyCacheTTL = 1 * time.Hour
	DailyCacheTTL   = 15 * time.Minute
	HourlyCacheTTL  = 5 * time.Minute
)

// CSVHeader is the header row for usage table exports
var CSVHeader = []string{"Month", "Consumption (kWh)", "Total Charges", "Days Billed", "Cost per kWh"}
