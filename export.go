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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVExporter writes the usage table as CSV
type CSVExporter struct {
	logger *Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(logger *Logger) *CSVExporter {
	return &CSVExporter{
		logger: logger,
	}
}

// Export writes one row per record in the current sort order. The export
// covers the full sorted sequence, never just the visible page.
func (e *CSVExporter) Export(view ViewModel, outputPath string) error {
	e.logger.Info("Exporting usage table", "rows", len(view.SortedRows))

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	return e.write(writer, view.SortedRows)
}

func (e *CSVExporter) write(w io.Writer, rows []TableRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		billed := ""
		if row.Billed > 0 {
			billed = strconv.Itoa(row.Billed)
		}

		record := []string{
			row.Label,
			fmt.Sprintf("%.2f", row.Consumption),
			fmt.Sprintf("%.2f", row.Charges),
			billed,
			fmt.Sprintf("%.3f", row.CostPerUnit),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
