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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Usage API
	APIBaseURL string `yaml:"api_base_url"`
	APIKey     string `yaml:"api_key"`

	// Dashboard settings
	PageSize int `yaml:"page_size"`

	// Storage
	StoragePath string `yaml:"storage_path"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		PageSize:    DefaultPageSize,
		StoragePath: getDefaultStoragePath(),
		Debug:       false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// getDefaultStoragePath returns the default storage path
func getDefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".griddash"
	}
	return filepath.Join(home, ".config", "griddash")
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("GRIDDASH_API_BASE_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("GRIDDASH_API_KEY"); val != "" {
		c.APIKey = val
	}
	if val := os.Getenv("GRIDDASH_PAGE_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.PageSize = size
		}
	}
	if val := os.Getenv("GRIDDASH_STORAGE_PATH"); val != "" {
		c.StoragePath = val
	}
	if val := os.Getenv("GRIDDASH_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if c.APIBaseURL == "" {
		errors = append(errors, "api_base_url is required")
	} else if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		errors = append(errors, "api_base_url must start with http:// or https://")
	}

	// Validate page size against the selectable set
	if c.PageSize != 0 {
		allowed := false
		for _, option := range PageSizeOptions {
			if c.PageSize == option {
				allowed = true
				break
			}
		}
		if !allowed {
			errors = append(errors, fmt.Sprintf("page_size must be one of %v", PageSizeOptions))
		}
	} else {
		c.PageSize = DefaultPageSize
	}

	// Set default storage path if empty
	if c.StoragePath == "" {
		c.StoragePath = getDefaultStoragePath()
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
