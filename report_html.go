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
	"html"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// DashboardCharts carries the base64 PNG images embedded in the dashboard.
// An empty string skips that chart section.
type DashboardCharts struct {
	Monthly string
	Daily   string
	Hourly  string
}

// HTMLReporter renders view models as a static HTML dashboard
type HTMLReporter struct {
	logger *Logger
}

// NewHTMLReporter creates a new HTML dashboard renderer
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
	}
}

// GenerateDashboard writes the dashboard for the given view models. The
// hourly view is optional; pass nil when no day was selected.
func (r *HTMLReporter) GenerateDashboard(monthly, daily ViewModel, hourly *HourlyViewModel, images DashboardCharts, outputPath string) error {
	r.logger.Info("Generating HTML dashboard")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create dashboard file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.writeHeader(writer)
	r.writeSummaryCards(writer, monthly.Summary)
	if images.Monthly != "" {
		r.writeChart(writer, "Monthly Usage", images.Monthly)
	}
	r.writeUsageTable(writer, "Monthly Usage", monthly)
	if images.Daily != "" {
		r.writeChart(writer, "Daily Usage", images.Daily)
	}
	r.writeUsageTable(writer, "Daily Usage", daily)
	if hourly != nil {
		r.writeHourlySection(writer, *hourly, images.Hourly)
	}
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Dashboard saved", "path", outputPath)
	}

	return nil
}

func (r *HTMLReporter) writeHeader(w io.Writer) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Energy Usage Dashboard</title>
    <style>
        :root {
            --bg: #16181d;
            --panel: #1f232b;
            --border: #2c313b;
            --text: #e6e8ec;
            --muted: #9aa1ad;
            --accent: #4cc2ff;
        }
        body {
            margin: 0;
            padding: 24px;
            background: var(--bg);
            color: var(--text);
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        }
        h1 { margin: 0 0 4px 0; }
        h2 { margin: 32px 0 12px 0; font-size: 1.1em; color: var(--accent); }
        .subtitle { color: var(--muted); margin-bottom: 24px; }
        .cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 16px;
        }
        .card {
            background: var(--panel);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 16px;
        }
        .card .label { color: var(--muted); font-size: 0.85em; }
        .card .value { font-size: 1.5em; margin-top: 6px; }
        .chart img { width: 100%%; border-radius: 8px; border: 1px solid var(--border); }
        table {
            width: 100%%;
            border-collapse: collapse;
            background: var(--panel);
            border: 1px solid var(--border);
            border-radius: 8px;
        }
        th, td { padding: 10px 12px; text-align: right; border-bottom: 1px solid var(--border); }
        th:first-child, td:first-child { text-align: left; }
        th { color: var(--muted); font-weight: 600; }
        .trend { color: var(--accent); }
        .pagination { color: var(--muted); margin: 8px 0 0 0; font-size: 0.85em; }
        .footer { margin-top: 40px; color: var(--muted); font-size: 0.8em; }
    </style>
</head>
<body>
    <h1>Energy Usage Dashboard</h1>
    <div class="subtitle">Generated %s by griddash %s</div>
`, time.Now().Format("2006-01-02 15:04:05"), GetVersion())
}

func (r *HTMLReporter) writeSummaryCards(w io.Writer, summary SummaryCards) {
	fmt.Fprintf(w, "    <div class=\"cards\">\n")

	if summary.HighestAvailable {
		fmt.Fprintf(w, `        <div class="card">
            <div class="label">Highest Month</div>
            <div class="value">%s</div>
            <div class="label">%s kWh</div>
        </div>
`, html.EscapeString(summary.HighestLabel), humanize.CommafWithDigits(summary.HighestConsumption, 2))
	}

	fmt.Fprintf(w, `        <div class="card">
            <div class="label">Average Cost per kWh</div>
            <div class="value">%.3f</div>
        </div>
`, summary.AverageCostPerUnit)

	change := "n/a"
	if summary.ChangeAvailable {
		change = fmt.Sprintf("%+.1f%%", summary.ChangePercent)
	}
	fmt.Fprintf(w, `        <div class="card">
            <div class="label">Month over Month</div>
            <div class="value">%s</div>
        </div>
`, change)

	fmt.Fprintf(w, `        <div class="card">
            <div class="label">Year-to-Date</div>
            <div class="value">%s kWh</div>
            <div class="label">%s charged</div>
        </div>
    </div>
`, humanize.CommafWithDigits(summary.TotalConsumption, 2), humanize.CommafWithDigits(summary.TotalCharges, 2))
}

func (r *HTMLReporter) writeChart(w io.Writer, title, image string) {
	fmt.Fprintf(w, `    <h2>%s</h2>
    <div class="chart">
        <img src="data:image/png;base64,%s" alt="%s chart">
    </div>
`, html.EscapeString(title), image, html.EscapeString(title))
}

func (r *HTMLReporter) writeUsageTable(w io.Writer, title string, view ViewModel) {
	fmt.Fprintf(w, "    <h2>%s Table</h2>\n", html.EscapeString(title))
	fmt.Fprintf(w, "    <table>\n")
	fmt.Fprintf(w, "        <tr><th>%s</th><th>Consumption (kWh)</th><th>Total Charges</th><th>Days Billed</th><th>Cost per kWh</th><th>Trend</th></tr>\n",
		sortIndicator("Period", "from_date", view.Sort))

	for _, row := range view.Rows {
		billed := ""
		if row.Billed > 0 {
			billed = fmt.Sprintf("%d", row.Billed)
		}
		fmt.Fprintf(w, "        <tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%s</td><td>%.3f</td><td class=\"trend\">%d%%</td></tr>\n",
			html.EscapeString(row.Label),
			row.Consumption,
			row.Charges,
			billed,
			row.CostPerUnit,
			row.TrendPercent,
		)
	}

	fmt.Fprintf(w, "    </table>\n")
	fmt.Fprintf(w, "    <div class=\"pagination\">Page %d of %d (%d rows per page, %d total)</div>\n",
		view.Page, view.TotalPages, view.PageSize, len(view.SortedRows))
}

func (r *HTMLReporter) writeHourlySection(w io.Writer, view HourlyViewModel, image string) {
	fmt.Fprintf(w, "    <h2>Interval Detail: %s</h2>\n", html.EscapeString(view.Day))

	if view.PeakAvailable {
		fmt.Fprintf(w, `    <div class="cards">
        <div class="card">
            <div class="label">Peak Interval</div>
            <div class="value">%s</div>
            <div class="label">%s kWh</div>
        </div>
    </div>
`, html.EscapeString(view.Peak.Label), humanize.CommafWithDigits(view.Peak.Consumption, 3))
	} else {
		fmt.Fprintf(w, "    <div class=\"subtitle\">Peak interval: not available</div>\n")
	}

	if image != "" {
		r.writeChart(w, "Interval Usage", image)
	}

	fmt.Fprintf(w, "    <table>\n")
	fmt.Fprintf(w, "        <tr><th>Interval</th><th>Consumption (kWh)</th><th>Charges</th><th>Cost per kWh</th><th>Trend</th></tr>\n")
	for _, row := range view.Rows {
		fmt.Fprintf(w, "        <tr><td>%s</td><td>%.3f</td><td>%.2f</td><td>%.3f</td><td class=\"trend\">%d%%</td></tr>\n",
			html.EscapeString(row.Label),
			row.Consumption,
			row.Charges,
			row.CostPerUnit,
			row.TrendPercent,
		)
	}
	fmt.Fprintf(w, "    </table>\n")
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, `    <div class="footer">griddash %s</div>
</body>
</html>
`, GetVersion())
}

// sortIndicator appends the active sort arrow to a column header
func sortIndicator(label, key string, cfg SortConfig) string {
	if cfg.Key != key {
		return html.EscapeString(label)
	}
	arrow := "&#9650;" // up
	if cfg.Direction == SortDescending {
		arrow = "&#9660;" // down
	}
	return html.EscapeString(label) + " " + arrow
}
