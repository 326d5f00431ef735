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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyFixture(t *testing.T) []EnergyRecord {
	t.Helper()
	return []EnergyRecord{
		record(t, "2025-03-01", 90, 19),
		record(t, "2025-02-01", 80, 18),
		record(t, "2025-01-01", 100, 20),
		record(t, "2024-12-01", 120, 30),
	}
}

func TestBuildMonthlyView(t *testing.T) {
	monthly := monthlyFixture(t)

	view := BuildMonthlyView(monthly, NewSelection())

	t.Run("chart is chronological and aligned", func(t *testing.T) {
		require.Len(t, view.Series.Labels, 4)
		assert.Equal(t, "Dec 2024", view.Series.Labels[0])
		assert.Equal(t, "Mar 2025", view.Series.Labels[3])
		assert.Equal(t, "2024-12-01", view.Series.Keys[0])
		assert.Equal(t, 120.0, view.Series.Consumption[0])
		assert.Equal(t, 30.0, view.Series.Charges[0])
		assert.Len(t, view.Series.Keys, len(view.Series.Labels))
		assert.Len(t, view.Series.Consumption, len(view.Series.Labels))
		assert.Len(t, view.Series.Charges, len(view.Series.Labels))
	})

	t.Run("rows carry derived fields", func(t *testing.T) {
		require.Len(t, view.SortedRows, 4)
		first := view.SortedRows[0]
		assert.Equal(t, "December 2024", first.Label)
		assert.Equal(t, 0.25, first.CostPerUnit)
		assert.Equal(t, 100, first.TrendPercent)

		jan := view.SortedRows[1]
		assert.Equal(t, "January 2025", jan.Label)
		assert.Equal(t, 0.2, jan.CostPerUnit)
		assert.Equal(t, 83, jan.TrendPercent)
	})

	t.Run("summary runs over the full dataset", func(t *testing.T) {
		assert.True(t, view.Summary.HighestAvailable)
		assert.Equal(t, "December 2024", view.Summary.HighestLabel)
		assert.Equal(t, 120.0, view.Summary.HighestConsumption)
		assert.Equal(t, 390.0, view.Summary.TotalConsumption)
		assert.Equal(t, 87.0, view.Summary.TotalCharges)
		require.True(t, view.Summary.ChangeAvailable)
		assert.Equal(t, 12.5, view.Summary.ChangePercent)
	})

	t.Run("year filter narrows chart and table but not summary", func(t *testing.T) {
		filtered := BuildMonthlyView(monthly, NewSelection().WithYear(2025))

		assert.Len(t, filtered.SortedRows, 3)
		assert.Equal(t, "Jan 2025", filtered.Series.Labels[0])
		// Highest month and trend baseline still come from every record
		assert.Equal(t, "December 2024", filtered.Summary.HighestLabel)
		assert.Equal(t, 83, filtered.SortedRows[0].TrendPercent)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		again := BuildMonthlyView(monthly, NewSelection())
		assert.Equal(t, view, again)
	})

	t.Run("empty dataset", func(t *testing.T) {
		empty := BuildMonthlyView(nil, NewSelection())
		assert.Empty(t, empty.SortedRows)
		assert.Equal(t, 1, empty.TotalPages)
		assert.False(t, empty.Summary.HighestAvailable)
		assert.False(t, empty.Summary.ChangeAvailable)
		assert.Zero(t, empty.Summary.AverageCostPerUnit)
	})
}

func TestBuildMonthlyViewPagination(t *testing.T) {
	var monthly []EnergyRecord
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"}
	for i, m := range months {
		monthly = append(monthly, record(t, "2025-"+m+"-01", float64(10+i), 5))
	}

	sel := NewSelection()
	view := BuildMonthlyView(monthly, sel)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Rows, DefaultPageSize)
	assert.Len(t, view.SortedRows, 10)

	second := BuildMonthlyView(monthly, sel.WithPage(2, view.TotalPages))
	assert.Len(t, second.Rows, 2)
	assert.Equal(t, view.SortedRows[8], second.Rows[0])
}

func TestBuildDailyView(t *testing.T) {
	daily := []EnergyRecord{
		record(t, "2025-05-12", 4.5, 1.2),
		record(t, "2025-05-11", 6.0, 1.5),
		record(t, "2025-05-10", 3.0, 0.9),
		record(t, "2025-04-28", 7.0, 2.0),
	}

	sel := NewSelection().
		WithRangeStart(mustDate(t, "2025-05-10")).
		WithRangeEnd(mustDate(t, "2025-05-12"))

	view := BuildDailyView(daily, sel)

	t.Run("range filter drives chart and table", func(t *testing.T) {
		require.Len(t, view.Series.Labels, 3)
		assert.Equal(t, "May 10", view.Series.Labels[0])
		assert.Equal(t, "May 12", view.Series.Labels[2])
		require.Len(t, view.SortedRows, 3)
		assert.Equal(t, "May 10, 2025", view.SortedRows[0].Label)
	})

	t.Run("summary covers the visible range only", func(t *testing.T) {
		assert.Equal(t, 13.5, view.Summary.TotalConsumption)
		assert.InDelta(t, 3.6, view.Summary.TotalCharges, 1e-9)
		assert.True(t, view.Summary.HighestAvailable)
		assert.Equal(t, "May 11, 2025", view.Summary.HighestLabel)
	})

	t.Run("trend baseline is the whole daily dataset", func(t *testing.T) {
		// 7.0 on April 28 is the peak even though it is filtered out
		for _, row := range view.SortedRows {
			assert.LessOrEqual(t, row.TrendPercent, 100)
		}
		assert.Equal(t, 86, view.SortedRows[1].TrendPercent)
	})
}

func TestBuildHourlyView(t *testing.T) {
	hourly := []EnergyRecord{
		interval(t, "2025-05-10T00:00:00Z", 0.4, 0.1),
		interval(t, "2025-05-10T00:15:00Z", 0.9, 0.2),
		interval(t, "2025-05-10T00:30:00Z", 0.9, 0.2),
	}

	view := BuildHourlyView(hourly, "2025-05-10")

	assert.Equal(t, "2025-05-10", view.Day)
	require.Len(t, view.Series.Labels, 3)
	assert.Equal(t, "12:00 AM", view.Series.Labels[0])
	assert.Equal(t, "12:15 AM", view.Series.Labels[1])

	require.True(t, view.PeakAvailable)
	assert.Equal(t, "12:15 AM", view.Peak.Label)
	assert.Equal(t, 0.9, view.Peak.Consumption)

	t.Run("empty day has no peak", func(t *testing.T) {
		empty := BuildHourlyView(nil, "2025-05-11")
		assert.False(t, empty.PeakAvailable)
		assert.Empty(t, empty.Rows)
	})
}
