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
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	baseURL := flag.String("url", "", "Usage API base URL (overrides config)")
	apiKey := flag.String("key", "", "Usage API key (overrides config)")
	outputPath := flag.String("output", "", "Output file for the HTML dashboard (default: stdout)")
	csvPath := flag.String("csv", "", "Also export the monthly usage table as CSV to this file")
	day := flag.String("day", "", "Include interval detail for a calendar day (YYYY-MM-DD)")
	year := flag.Int("year", 0, "Filter the monthly view to a year (0 = most recent)")
	month := flag.String("month", "", "Select the daily view month (YYYY-M)")
	sortKey := flag.String("sort", "", "Usage table sort key (from_date, total_consumption, total_charges)")
	sortDesc := flag.Bool("desc", false, "Sort the usage tables descending")
	page := flag.Int("page", 1, "Usage table page to render")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("griddash %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting griddash", "version", GetVersion())

	// Check for updates (non-blocking)
	go CheckForUpdates(logger)

	// Load configuration
	logger.Info("Loading configuration", "config_file", *configPath)
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override with command-line flags
	if *baseURL != "" {
		config.APIBaseURL = *baseURL
	}
	if *apiKey != "" {
		config.APIKey = *apiKey
	}
	if *debug {
		config.Debug = true
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully")

	// Initialize storage
	logger.Info("Initializing storage", "path", config.StoragePath)
	storage, err := NewStorage(config.StoragePath, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Create API client and collector
	logger.Info("Creating API client", "base_url", config.APIBaseURL)
	client := NewUsageClient(config.APIBaseURL, config.APIKey, logger)
	collector := NewCollector(client, config, storage, logger)

	// Fetch monthly and daily usage in parallel
	logger.Info("Collecting usage data")
	data, err := collector.CollectStartup()
	if err != nil {
		logger.Error("Failed to collect usage data", "error", err)
		os.Exit(1)
	}

	// Build the dashboard state with computed defaults
	dashboard := NewDashboard(data.Monthly, data.Daily, logger)

	// Apply requested selections
	if *year != 0 {
		dashboard.SelectYear(*year)
	}
	if *month != "" {
		dashboard.SelectMonth(*month)
	}
	if config.PageSize != DefaultPageSize {
		dashboard.SetPageSize(ViewMonthly, config.PageSize)
		dashboard.SetPageSize(ViewDaily, config.PageSize)
	}
	if *sortKey != "" {
		dashboard.RequestSort(ViewMonthly, *sortKey)
		dashboard.RequestSort(ViewDaily, *sortKey)
		if *sortDesc {
			dashboard.RequestSort(ViewMonthly, *sortKey)
			dashboard.RequestSort(ViewDaily, *sortKey)
		}
	}
	if *page != 1 {
		dashboard.SetPage(ViewMonthly, *page)
		dashboard.SetPage(ViewDaily, *page)
	}

	// Fetch interval detail on demand
	if *day != "" {
		logger.Info("Collecting interval detail", "day", *day)
		token := dashboard.BeginHourlyLoad(*day)
		records, err := collector.CollectHourly(*day)
		if err != nil {
			logger.Warn("Failed to collect interval detail", "day", *day, "error", err)
		} else {
			dashboard.ApplyHourly(token, records)
		}
	}

	// Build view models
	logger.LogViewStage("view_models")
	monthlyView := dashboard.MonthlyView()
	dailyView := dashboard.DailyView()

	var hourlyView *HourlyViewModel
	if view, ok := dashboard.HourlyView(); ok {
		hourlyView = &view
	}

	// Render charts; a failed chart degrades to a table-only section
	logger.LogViewStage("charts")
	chartGen := NewChartGenerator()
	var images DashboardCharts

	if img, err := chartGen.GenerateMonthlyChart(monthlyView.Series); err != nil {
		logger.Warn("Failed to render monthly chart", "error", err)
	} else {
		images.Monthly = img
	}
	if img, err := chartGen.GenerateDailyChart(dailyView.Series); err != nil {
		logger.Warn("Failed to render daily chart", "error", err)
	} else {
		images.Daily = img
	}
	if hourlyView != nil {
		if img, err := chartGen.GenerateHourlyChart(*hourlyView); err != nil {
			logger.Warn("Failed to render hourly chart", "error", err)
		} else {
			images.Hourly = img
		}
	}

	// Save a view model snapshot for debugging
	if err := storage.SaveSnapshot(monthlyView, time.Now()); err != nil {
		logger.Warn("Failed to save dashboard snapshot", "error", err)
	}

	// Generate the HTML dashboard
	reporter := NewHTMLReporter(logger)
	if err := reporter.GenerateDashboard(monthlyView, dailyView, hourlyView, images, *outputPath); err != nil {
		logger.Error("Failed to generate dashboard", "error", err)
		os.Exit(1)
	}

	// Optional CSV export of the monthly usage table
	if *csvPath != "" {
		exporter := NewCSVExporter(logger)
		if err := exporter.Export(monthlyView, *csvPath); err != nil {
			logger.Error("Failed to export CSV", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Dashboard generated successfully")
}
