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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPageSize, config.PageSize)
		assert.NotEmpty(t, config.StoragePath)
		assert.False(t, config.Debug)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `api_base_url: https://usage.example.com
api_key: sk_test_key
page_size: 12
debug: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://usage.example.com", config.APIBaseURL)
		assert.Equal(t, "sk_test_key", config.APIKey)
		assert.Equal(t, 12, config.PageSize)
		assert.True(t, config.Debug)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("environment overrides win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://file.example.com\n"), 0644))

		t.Setenv("GRIDDASH_API_BASE_URL", "https://env.example.com")
		t.Setenv("GRIDDASH_API_KEY", "sk_env_key")
		t.Setenv("GRIDDASH_PAGE_SIZE", "5")
		t.Setenv("GRIDDASH_DEBUG", "1")

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", config.APIBaseURL)
		assert.Equal(t, "sk_env_key", config.APIKey)
		assert.Equal(t, 5, config.PageSize)
		assert.True(t, config.Debug)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		config := &Config{APIBaseURL: "https://usage.example.com", PageSize: 8}
		assert.NoError(t, config.Validate())
	})

	t.Run("base url required", func(t *testing.T) {
		config := &Config{PageSize: 8}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_base_url is required")
	})

	t.Run("base url scheme", func(t *testing.T) {
		config := &Config{APIBaseURL: "usage.example.com", PageSize: 8}
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http://")
	})

	t.Run("page size outside the selectable set", func(t *testing.T) {
		config := &Config{APIBaseURL: "https://usage.example.com", PageSize: 7}
		assert.Error(t, config.Validate())
	})

	t.Run("zero page size falls back to the default", func(t *testing.T) {
		config := &Config{APIBaseURL: "https://usage.example.com"}
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultPageSize, config.PageSize)
	})
}
