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
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExport(t *testing.T) {
	rows := []TableRow{
		{Label: "January 2025", Consumption: 100, Charges: 20, Billed: 31, CostPerUnit: 0.2},
		{Label: "February 2025", Consumption: 80.456, Charges: 18.111, Billed: 28, CostPerUnit: 0.22513},
		{Label: "March 2025", Consumption: 0, Charges: 0, Billed: 0, CostPerUnit: 0},
	}

	exporter := NewCSVExporter(NewLogger(false))
	var buf bytes.Buffer
	require.NoError(t, exporter.write(&buf, rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 4)

	assert.Equal(t, CSVHeader, parsed[0])
	assert.Equal(t, []string{"January 2025", "100.00", "20.00", "31", "0.200"}, parsed[1])
	assert.Equal(t, []string{"February 2025", "80.46", "18.11", "28", "0.225"}, parsed[2])

	t.Run("zero billed days are left blank", func(t *testing.T) {
		assert.Equal(t, "", parsed[3][3])
	})
}

func TestCSVExportCoversAllRows(t *testing.T) {
	var monthly []EnergyRecord
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"}
	for i, m := range months {
		monthly = append(monthly, record(t, "2025-"+m+"-01", float64(10+i), 5))
	}

	// The view shows one page; the export must carry every row
	view := BuildMonthlyView(monthly, NewSelection())
	require.Len(t, view.Rows, DefaultPageSize)

	exporter := NewCSVExporter(NewLogger(false))
	var buf bytes.Buffer
	require.NoError(t, exporter.write(&buf, view.SortedRows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, parsed, len(monthly)+1)
}

func TestCSVExportToFile(t *testing.T) {
	view := BuildMonthlyView([]EnergyRecord{record(t, "2025-01-01", 100, 20)}, NewSelection())

	path := filepath.Join(t.TempDir(), "usage.csv")
	exporter := NewCSVExporter(NewLogger(false))
	require.NoError(t, exporter.Export(view, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Month,Consumption (kWh)")
	assert.Contains(t, string(data), "January 2025,100.00,20.00,,0.200")
}
