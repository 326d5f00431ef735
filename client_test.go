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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageHandler(t *testing.T, path string, records []UsageRecord) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UsageResponse{Data: records})
	}
}

func TestFetchMonthlyUsage(t *testing.T) {
	records := []UsageRecord{
		{FromDate: "2025-02-01", ToDate: "2025-02-28", TotalConsumption: "80", TotalCharges: "18"},
		{FromDate: "2025-01-01", ToDate: "2025-01-31", TotalConsumption: "100", TotalCharges: "20"},
	}

	server := httptest.NewServer(usageHandler(t, MonthlyUsagePath, records))
	defer server.Close()

	client := NewUsageClient(server.URL, "", NewLogger(false))
	fetched, err := client.FetchMonthlyUsage()
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, "2025-02-01", fetched[0].FromDate)
	assert.Equal(t, "80", fetched[0].TotalConsumption)
}

func TestFetchDailyUsage(t *testing.T) {
	records := []UsageRecord{
		{FromDate: "2025-05-11", TotalConsumption: "6.0", TotalCharges: "1.5"},
	}

	server := httptest.NewServer(usageHandler(t, DailyUsagePath, records))
	defer server.Close()

	client := NewUsageClient(server.URL, "", NewLogger(false))
	fetched, err := client.FetchDailyUsage()
	require.NoError(t, err)
	require.Len(t, fetched, 1)
}

func TestFetchHourlyUsage(t *testing.T) {
	t.Run("passes the day as a query parameter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, HourlyUsagePath, r.URL.Path)
			assert.Equal(t, "2025-05-11", r.URL.Query().Get("date"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(UsageResponse{Data: []UsageRecord{
				{FromDate: "2025-05-11T00:00:00Z", TotalConsumption: "0.4", TotalCharges: "0.1", IntervalLength: 15},
			}})
		}))
		defer server.Close()

		client := NewUsageClient(server.URL, "", NewLogger(false))
		fetched, err := client.FetchHourlyUsage("2025-05-11")
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		assert.Equal(t, 15, fetched[0].IntervalLength)
	})

	t.Run("rejects malformed days before any request", func(t *testing.T) {
		client := NewUsageClient("http://unreachable.invalid", "", NewLogger(false))
		_, err := client.FetchHourlyUsage("not-a-day")
		require.Error(t, err)

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})
}

func TestFetchUsageAuthentication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_key", user)

		json.NewEncoder(w).Encode(UsageResponse{})
	}))
	defer server.Close()

	client := NewUsageClient(server.URL, "sk_test_key", NewLogger(false))
	_, err := client.FetchMonthlyUsage()
	require.NoError(t, err)
}

func TestFetchUsageErrors(t *testing.T) {
	t.Run("non-200 becomes an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewUsageClient(server.URL, "", NewLogger(false))
		_, err := client.FetchMonthlyUsage()
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})

	t.Run("transport failure becomes an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewUsageClient(server.URL, "", NewLogger(false))
		_, err := client.FetchDailyUsage()
		require.Error(t, err)

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
	})

	t.Run("malformed envelope is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}))
		defer server.Close()

		client := NewUsageClient(server.URL, "", NewLogger(false))
		_, err := client.FetchMonthlyUsage()
		assert.Error(t, err)
	})
}
