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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir(), NewLogger(false))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStorageCache(t *testing.T) {
	storage := testStorage(t)

	records := []UsageRecord{
		{FromDate: "2025-01-01", TotalConsumption: "100", TotalCharges: "20"},
	}

	require.NoError(t, storage.SaveCache("usage_monthly", records, time.Hour))

	var loaded []UsageRecord
	hit, err := storage.LoadCache("usage_monthly", &loaded)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, records, loaded)

	t.Run("miss on unknown key", func(t *testing.T) {
		var target []UsageRecord
		hit, err := storage.LoadCache("usage_hourly_2025-05-11", &target)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		require.NoError(t, storage.SaveCache("short_lived", records, -time.Second))

		var target []UsageRecord
		hit, err := storage.LoadCache("short_lived", &target)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, storage.ClearCache())

		var target []UsageRecord
		hit, err := storage.LoadCache("usage_monthly", &target)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}

func TestStorageCachePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(false)

	first, err := NewStorage(dir, logger)
	require.NoError(t, err)
	records := []UsageRecord{{FromDate: "2025-05-11", TotalConsumption: "6.0", TotalCharges: "1.5"}}
	require.NoError(t, first.SaveCache("usage_daily", records, time.Hour))
	require.NoError(t, first.Close())

	second, err := NewStorage(dir, logger)
	require.NoError(t, err)
	defer second.Close()

	var loaded []UsageRecord
	hit, err := second.LoadCache("usage_daily", &loaded)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, records, loaded)
}

func TestSaveSnapshot(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir, NewLogger(false))
	require.NoError(t, err)
	defer storage.Close()

	view := BuildMonthlyView([]EnergyRecord{record(t, "2025-01-01", 100, 20)}, NewSelection())
	generatedAt := time.Date(2025, time.May, 11, 9, 30, 0, 0, time.UTC)
	require.NoError(t, storage.SaveSnapshot(view, generatedAt))

	path := filepath.Join(dir, "dashboard_2025-05-11_09-30-00.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "January 2025")
}
