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
	"sync"
	"time"
)

// CollectedData holds both startup collections. A Dashboard is only ever
// built from a complete CollectedData, so default selections never see a
// partial dataset.
type CollectedData struct {
	Monthly   []EnergyRecord
	Daily     []EnergyRecord
	FetchedAt time.Time
}

// Collector orchestrates data collection from the usage API
type Collector struct {
	client  *UsageClient
	config  *Config
	storage *Storage
	logger  *Logger
}

// NewCollector creates a new data collector
func NewCollector(client *UsageClient, config *Config, storage *Storage, logger *Logger) *Collector {
	return &Collector{
		client:  client,
		config:  config,
		storage: storage,
		logger:  logger,
	}
}

// CollectStartup fetches the monthly and daily collections in parallel and
// returns only once both have resolved. Either failure aborts the loading
// flow; there are no retries and no partial results.
func (c *Collector) CollectStartup() (*CollectedData, error) {
	c.logger.Info("Starting data collection")

	var (
		wg         sync.WaitGroup
		monthly    []UsageRecord
		daily      []UsageRecord
		monthlyErr error
		dailyErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		monthly, monthlyErr = c.fetchCached("usage_monthly", MonthlyCacheTTL, c.client.FetchMonthlyUsage)
	}()
	go func() {
		defer wg.Done()
		daily, dailyErr = c.fetchCached("usage_daily", DailyCacheTTL, c.client.FetchDailyUsage)
	}()
	wg.Wait()

	if monthlyErr != nil {
		return nil, fmt.Errorf("failed to fetch monthly usage: %w", monthlyErr)
	}
	if dailyErr != nil {
		return nil, fmt.Errorf("failed to fetch daily usage: %w", dailyErr)
	}

	data := &CollectedData{
		Monthly:   ParseRecords(monthly, GranularityMonthly, c.logger),
		Daily:     ParseRecords(daily, GranularityDaily, c.logger),
		FetchedAt: time.Now(),
	}

	c.logger.Info("Data collection completed successfully",
		"monthly", len(data.Monthly),
		"daily", len(data.Daily),
	)

	return data, nil
}

// CollectHourly fetches the 15-minute interval collection for one day
func (c *Collector) CollectHourly(day string) ([]EnergyRecord, error) {
	cacheKey := fmt.Sprintf("usage_hourly_%s", day)
	records, err := c.fetchCached(cacheKey, HourlyCacheTTL, func() ([]UsageRecord, error) {
		return c.client.FetchHourlyUsage(day)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly usage for %s: %w", day, err)
	}

	return ParseRecords(records, GranularityHourly, c.logger), nil
}

// fetchCached serves a usage collection from the response cache when a
// fresh entry exists, fetching and caching it otherwise. Cache failures are
// never fatal; the fetch result wins.
func (c *Collector) fetchCached(key string, ttl time.Duration, fetch func() ([]UsageRecord, error)) ([]UsageRecord, error) {
	if c.storage != nil {
		var records []UsageRecord
		cached, err := c.storage.LoadCache(key, &records)
		if err != nil {
			c.logger.Warn("Failed to load usage from cache", "key", key, "error", err)
		}
		if cached {
			c.logger.Debug("Loaded usage from cache", "key", key, "count", len(records))
			return records, nil
		}
	}

	records, err := fetch()
	if err != nil {
		return nil, err
	}

	if c.storage != nil {
		if err := c.storage.SaveCache(key, records, ttl); err != nil {
			c.logger.Warn("Failed to cache usage", "key", key, "error", err)
		}
	}

	return records, nil
}
