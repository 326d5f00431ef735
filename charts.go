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
	"encoding/base64"
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator renders the view model series as base64 PNG images
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match the HTML dashboard dark theme
	}
}

// GenerateMonthlyChart renders consumption as a bar series with charges as
// an overlaid line series on the secondary scale
func (cg *ChartGenerator) GenerateMonthlyChart(series ChartSeries) (string, error) {
	if len(series.Labels) == 0 {
		return "", &DataError{
			DataType: "monthly_series",
			Message:  "no data points to chart",
		}
	}

	values := [][]float64{series.Consumption, series.Charges}

	p, err := charts.BarRender(
		values,
		charts.TitleTextOptionFunc("Monthly Energy Usage"),
		charts.XAxisDataOptionFunc(series.Labels),
		charts.LegendLabelsOptionFunc([]string{"Consumption (kWh)", "Charges"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
		func(opt *charts.ChartOption) {
			// Charges ride the secondary axis as a line overlay
			opt.SeriesList[1].Type = charts.ChartTypeLine
			opt.SeriesList[1].AxisIndex = 1
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to render monthly chart: %w", err)
	}

	return encodeChart(p)
}

// GenerateDailyChart renders the daily consumption and charges lines
func (cg *ChartGenerator) GenerateDailyChart(series ChartSeries) (string, error) {
	if len(series.Labels) == 0 {
		return "", &DataError{
			DataType: "daily_series",
			Message:  "no data points to chart",
		}
	}

	values := [][]float64{series.Consumption, series.Charges}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Daily Energy Usage"),
		charts.XAxisDataOptionFunc(series.Labels),
		charts.LegendLabelsOptionFunc([]string{"Consumption (kWh)", "Charges"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render daily chart: %w", err)
	}

	return encodeChart(p)
}

// GenerateHourlyChart renders the 15-minute interval consumption line
func (cg *ChartGenerator) GenerateHourlyChart(view HourlyViewModel) (string, error) {
	if len(view.Series.Labels) == 0 {
		return "", &DataError{
			DataType: "hourly_series",
			Message:  "no data points to chart",
		}
	}

	p, err := charts.LineRender(
		[][]float64{view.Series.Consumption},
		charts.TitleTextOptionFunc(fmt.Sprintf("Interval Usage for %s", view.Day)),
		charts.XAxisDataOptionFunc(view.Series.Labels),
		charts.LegendLabelsOptionFunc([]string{"Consumption (kWh)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render hourly chart: %w", err)
	}

	return encodeChart(p)
}

// encodeChart converts a rendered painter to base64 for HTML embedding
func encodeChart(p *charts.Painter) (string, error) {
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}
