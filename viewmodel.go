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

// ChartSeries is the chart-ready shape: one category label per point, a
// consumption series (bar) and a charges series (line, secondary scale).
// Keys carries the normalized YYYY-MM-DD per point so a click on a daily
// data point can be turned into an hourly-detail navigation.
type ChartSeries struct {
	Labels      []string
	Keys        []string
	Consumption []float64
	Charges     []float64
}

// TableRow is one usage table row with every derived field precomputed
type TableRow struct {
	Label        string
	FromDate     string // normalized YYYY-MM-DD
	Consumption  float64
	Charges      float64
	Billed       int
	CostPerUnit  float64
	TrendPercent int
}

// SummaryCards holds the summary scalars shown above the table
type SummaryCards struct {
	HighestLabel       string
	HighestConsumption float64
	HighestAvailable   bool
	AverageCostPerUnit float64
	ChangePercent      float64
	ChangeAvailable    bool
	TotalConsumption   float64
	TotalCharges       float64
}

// ViewModel is the fully derived structure for one granularity: chart
// series, the current table page, the full sorted row list (exports), and
// summary scalars. It is recomputed from scratch on every selection change;
// nothing here is memoized.
type ViewModel struct {
	Series     ChartSeries
	Rows       []TableRow
	SortedRows []TableRow
	Page       int
	TotalPages int
	PageSize   int
	Sort       SortConfig
	Summary    SummaryCards
}

// HourlyViewModel is the 15-minute interval detail for one calendar day
type HourlyViewModel struct {
	Day           string
	Series        ChartSeries
	Rows          []TableRow
	Peak          TableRow
	PeakAvailable bool
}

// BuildMonthlyView derives the monthly dashboard view. Summary cards and
// trend percentages always run over the full monthly dataset; only the
// chart and table respect the year filter.
func BuildMonthlyView(monthly []EnergyRecord, sel Selection) ViewModel {
	visible := FilterByYear(monthly, sel.Year)

	chronological := SortRecords(visible, SortConfig{Key: DefaultSortKey, Direction: SortAscending})
	series := ChartSeries{}
	for _, r := range chronological {
		series.Labels = append(series.Labels, r.Date.Format("Jan 2006"))
		series.Keys = append(series.Keys, DateKey(r.Date))
		series.Consumption = append(series.Consumption, r.Consumption)
		series.Charges = append(series.Charges, r.Charges)
	}

	sorted := SortRecords(visible, sel.Sort)
	rows := make([]TableRow, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, TableRow{
			Label:        r.Date.Format("January 2006"),
			FromDate:     DateKey(r.Date),
			Consumption:  r.Consumption,
			Charges:      r.Charges,
			Billed:       r.Billed,
			CostPerUnit:  CostPerUnit(r.Consumption, r.Charges),
			TrendPercent: TrendPercentage(r.Consumption, monthly),
		})
	}

	totalPages := TotalPages(len(rows), sel.PageSize)
	paged := pageRows(rows, sel.Page, sel.PageSize)

	summary := SummaryCards{}
	if highest, ok := HighestConsumptionRecord(monthly); ok {
		summary.HighestLabel = highest.Date.Format("January 2006")
		summary.HighestConsumption = highest.Consumption
		summary.HighestAvailable = true
	}
	totalConsumption, totalCharges := YearToDateTotals(monthly)
	summary.TotalConsumption = totalConsumption
	summary.TotalCharges = totalCharges
	summary.AverageCostPerUnit = CostPerUnit(totalConsumption, totalCharges)
	summary.ChangePercent, summary.ChangeAvailable = MonthOverMonthChange(monthly)

	return ViewModel{
		Series:     series,
		Rows:       paged,
		SortedRows: rows,
		Page:       sel.Page,
		TotalPages: totalPages,
		PageSize:   sel.PageSize,
		Sort:       sel.Sort,
		Summary:    summary,
	}
}

// BuildDailyView derives the daily dashboard view for the selected date
// range. The range filter already yields ascending dates for the chart.
func BuildDailyView(daily []EnergyRecord, sel Selection) ViewModel {
	visible := FilterByRange(daily, sel.Range)

	series := ChartSeries{}
	for _, r := range visible {
		series.Labels = append(series.Labels, r.Date.Format("Jan 2"))
		series.Keys = append(series.Keys, DateKey(r.Date))
		series.Consumption = append(series.Consumption, r.Consumption)
		series.Charges = append(series.Charges, r.Charges)
	}

	sorted := SortRecords(visible, sel.Sort)
	rows := make([]TableRow, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, TableRow{
			Label:        r.Date.Format("Jan 2, 2006"),
			FromDate:     DateKey(r.Date),
			Consumption:  r.Consumption,
			Charges:      r.Charges,
			Billed:       r.Billed,
			CostPerUnit:  CostPerUnit(r.Consumption, r.Charges),
			TrendPercent: TrendPercentage(r.Consumption, daily),
		})
	}

	totalPages := TotalPages(len(rows), sel.PageSize)
	paged := pageRows(rows, sel.Page, sel.PageSize)

	summary := SummaryCards{
		TotalConsumption: Sum(visible, FieldConsumption),
		TotalCharges:     Sum(visible, FieldCharges),
	}
	summary.AverageCostPerUnit = CostPerUnit(summary.TotalConsumption, summary.TotalCharges)
	if peak, ok := PeakInterval(visible); ok {
		summary.HighestLabel = peak.Date.Format("Jan 2, 2006")
		summary.HighestConsumption = peak.Consumption
		summary.HighestAvailable = true
	}

	return ViewModel{
		Series:     series,
		Rows:       paged,
		SortedRows: rows,
		Page:       sel.Page,
		TotalPages: totalPages,
		PageSize:   sel.PageSize,
		Sort:       sel.Sort,
		Summary:    summary,
	}
}

// BuildHourlyView derives the 15-minute interval detail for one day.
// Interval labels come from the UTC clock fields of each boundary.
func BuildHourlyView(hourly []EnergyRecord, day string) HourlyViewModel {
	view := HourlyViewModel{Day: day}

	for _, r := range hourly {
		view.Series.Labels = append(view.Series.Labels, IntervalLabel(r.Interval))
		view.Series.Keys = append(view.Series.Keys, DateKey(r.Date))
		view.Series.Consumption = append(view.Series.Consumption, r.Consumption)
		view.Series.Charges = append(view.Series.Charges, r.Charges)

		view.Rows = append(view.Rows, TableRow{
			Label:        IntervalLabel(r.Interval),
			FromDate:     DateKey(r.Date),
			Consumption:  r.Consumption,
			Charges:      r.Charges,
			CostPerUnit:  CostPerUnit(r.Consumption, r.Charges),
			TrendPercent: TrendPercentage(r.Consumption, hourly),
		})
	}

	if peak, ok := PeakInterval(hourly); ok {
		view.Peak = TableRow{
			Label:        IntervalLabel(peak.Interval),
			FromDate:     DateKey(peak.Date),
			Consumption:  peak.Consumption,
			Charges:      peak.Charges,
			CostPerUnit:  CostPerUnit(peak.Consumption, peak.Charges),
			TrendPercent: TrendPercentage(peak.Consumption, hourly),
		}
		view.PeakAvailable = true
	}

	return view
}

// pageRows slices the 1-indexed page out of the sorted row list
func pageRows(rows []TableRow, page, pageSize int) []TableRow {
	if pageSize < 1 || page < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return nil
	}

	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
