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
	"time"
)

// View names one of the two list views driven by a Selection
type View int

const (
	ViewMonthly View = iota
	ViewDaily
)

// HourlyToken identifies one hourly-detail request. A response is applied
// only while its token is still the latest issued, so a slow response for a
// day the user already navigated away from is discarded.
type HourlyToken int

// Dashboard owns the fetched record collections and the per-view selection
// state. Records are immutable once handed to the constructor; every view
// is rebuilt from scratch on read. Single owner, no locking.
type Dashboard struct {
	logger *Logger

	monthly []EnergyRecord
	daily   []EnergyRecord
	years   []int
	months  []MonthOption

	monthlySel Selection
	dailySel   Selection

	hourly    []EnergyRecord
	hourlyDay string
	hourlySeq int

	now func() time.Time
}

// NewDashboard builds a dashboard over both startup collections. Taking
// monthly and daily together forces the ordering guarantee: years, months
// and default selections are only ever computed after both fetches have
// resolved, never from a partial dataset.
func NewDashboard(monthly, daily []EnergyRecord, logger *Logger) *Dashboard {
	d := &Dashboard{
		logger:  logger,
		monthly: monthly,
		daily:   daily,
		years:   UniqueYears(monthly),
		months:  DistinctMonths(daily),
		now:     time.Now,
	}

	d.monthlySel = NewSelection()
	if len(d.years) > 0 {
		d.monthlySel = d.monthlySel.WithYear(d.years[0])
	}

	d.dailySel = NewSelection()
	if option, ok := d.defaultMonth(); ok {
		d.dailySel = d.dailySel.WithMonth(option)
	}

	if logger != nil {
		logger.Debug("Dashboard initialized",
			"monthly_records", len(monthly),
			"daily_records", len(daily),
			"years", len(d.years),
			"months", len(d.months),
		)
	}

	return d
}

// defaultMonth picks the current calendar month when the daily data has it,
// otherwise the most recent month available
func (d *Dashboard) defaultMonth() (MonthOption, bool) {
	if len(d.months) == 0 {
		return MonthOption{}, false
	}

	now := d.now()
	for _, option := range d.months {
		if option.Year == now.Year() && option.Month == now.Month() {
			return option, true
		}
	}

	return d.months[0], true
}

// Years returns the year selector entries, most recent first
func (d *Dashboard) Years() []int {
	return d.years
}

// Months returns the month selector entries, most recent first
func (d *Dashboard) Months() []MonthOption {
	return d.months
}

// SelectYear applies the monthly year filter. 0 selects all years.
func (d *Dashboard) SelectYear(year int) {
	d.monthlySel = d.monthlySel.WithYear(year)
}

// SelectMonth switches the daily view to the month with the given selector
// key ("YYYY-M"), resetting the date range to that month's bounds. Unknown
// keys are ignored.
func (d *Dashboard) SelectMonth(value string) {
	for _, option := range d.months {
		if option.Value == value {
			d.dailySel = d.dailySel.WithMonth(option)
			return
		}
	}

	if d.logger != nil {
		d.logger.Warn("Ignoring unknown month selection", "value", value)
	}
}

// SetRangeStart edits the start of the daily date range
func (d *Dashboard) SetRangeStart(start time.Time) {
	d.dailySel = d.dailySel.WithRangeStart(start)
}

// SetRangeEnd edits the end of the daily date range
func (d *Dashboard) SetRangeEnd(end time.Time) {
	d.dailySel = d.dailySel.WithRangeEnd(end)
}

// RequestSort applies the sort-toggle policy to the given view
func (d *Dashboard) RequestSort(view View, key string) {
	switch view {
	case ViewMonthly:
		d.monthlySel = d.monthlySel.WithSort(key)
	case ViewDaily:
		d.dailySel = d.dailySel.WithSort(key)
	}
}

// SetPage navigates the given view to a page, clamped to the valid range
func (d *Dashboard) SetPage(view View, page int) {
	switch view {
	case ViewMonthly:
		total := TotalPages(len(FilterByYear(d.monthly, d.monthlySel.Year)), d.monthlySel.PageSize)
		d.monthlySel = d.monthlySel.WithPage(page, total)
	case ViewDaily:
		total := TotalPages(len(FilterByRange(d.daily, d.dailySel.Range)), d.dailySel.PageSize)
		d.dailySel = d.dailySel.WithPage(page, total)
	}
}

// SetPageSize changes the page size for the given view. Sizes outside the
// selectable set are ignored.
func (d *Dashboard) SetPageSize(view View, size int) {
	allowed := false
	for _, option := range PageSizeOptions {
		if option == size {
			allowed = true
			break
		}
	}
	if !allowed {
		if d.logger != nil {
			d.logger.Warn("Ignoring unsupported page size", "size", size)
		}
		return
	}

	switch view {
	case ViewMonthly:
		d.monthlySel = d.monthlySel.WithPageSize(size)
	case ViewDaily:
		d.dailySel = d.dailySel.WithPageSize(size)
	}
}

// BeginHourlyLoad records the intent to load the given day's interval data
// and returns the token the eventual response must present
func (d *Dashboard) BeginHourlyLoad(day string) HourlyToken {
	d.hourlySeq++
	d.hourlyDay = day
	return HourlyToken(d.hourlySeq)
}

// ApplyHourly installs an hourly response if its token is still current.
// Stale responses, from a request superseded by a later navigation, are
// discarded and leave the dashboard untouched.
func (d *Dashboard) ApplyHourly(token HourlyToken, records []EnergyRecord) bool {
	if int(token) != d.hourlySeq {
		if d.logger != nil {
			d.logger.Debug("Discarding stale hourly response",
				"token", int(token),
				"current", d.hourlySeq,
			)
		}
		return false
	}

	d.hourly = records
	return true
}

// MonthlyView rebuilds the monthly view model from current state
func (d *Dashboard) MonthlyView() ViewModel {
	return BuildMonthlyView(d.monthly, d.monthlySel)
}

// DailyView rebuilds the daily view model from current state
func (d *Dashboard) DailyView() ViewModel {
	return BuildDailyView(d.daily, d.dailySel)
}

// HourlyView rebuilds the interval detail view. ok=false until an hourly
// response has been applied.
func (d *Dashboard) HourlyView() (HourlyViewModel, bool) {
	if d.hourlyDay == "" || d.hourly == nil {
		return HourlyViewModel{}, false
	}
	return BuildHourlyView(d.hourly, d.hourlyDay), true
}
