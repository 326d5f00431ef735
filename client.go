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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// UsageClient handles communication with the usage REST API
type UsageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *Logger
}

// NewUsageClient creates a new usage API client
func NewUsageClient(baseURL, apiKey string, logger *Logger) *UsageClient {
	return &UsageClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchMonthlyUsage fetches the ordered monthly usage collection
func (c *UsageClient) FetchMonthlyUsage() ([]UsageRecord, error) {
	records, err := c.fetchUsage(c.baseURL+MonthlyUsagePath, GranularityMonthly)
	if err != nil {
		return nil, err
	}

	c.logger.LogDataCollection(string(GranularityMonthly), len(records))
	return records, nil
}

// FetchDailyUsage fetches the ordered daily usage collection
func (c *UsageClient) FetchDailyUsage() ([]UsageRecord, error) {
	records, err := c.fetchUsage(c.baseURL+DailyUsagePath, GranularityDaily)
	if err != nil {
		return nil, err
	}

	c.logger.LogDataCollection(string(GranularityDaily), len(records))
	return records, nil
}

// FetchHourlyUsage fetches the 15-minute interval collection for one
// calendar day, identified by its normalized YYYY-MM-DD string
func (c *UsageClient) FetchHourlyUsage(day string) ([]UsageRecord, error) {
	if _, err := NormalizeDate(day); err != nil {
		return nil, &ValidationError{
			Field:   "date",
			Value:   day,
			Message: "must be a YYYY-MM-DD calendar day",
		}
	}

	endpoint := fmt.Sprintf("%s%s?date=%s", c.baseURL, HourlyUsagePath, url.QueryEscape(day))
	records, err := c.fetchUsage(endpoint, GranularityHourly)
	if err != nil {
		return nil, err
	}

	c.logger.LogDataCollection(string(GranularityHourly), len(records))
	return records, nil
}

// fetchUsage is the shared GET helper for every usage endpoint
func (c *UsageClient) fetchUsage(endpoint string, granularity Granularity) ([]UsageRecord, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, "")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", GetUserAgent())

	c.logger.LogAPIRequest("GET", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			Endpoint: endpoint,
			Message:  fmt.Sprintf("failed to fetch %s usage", granularity),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.LogAPIError(endpoint, resp.StatusCode, fmt.Errorf("%s", string(bodyBytes)))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(bodyBytes),
		}
	}

	var envelope UsageResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s usage response: %w", granularity, err)
	}

	return envelope.Data, nil
}
