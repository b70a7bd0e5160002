/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The Command Center Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the YAML configuration of the command center.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all command center configuration.
type Config struct {
	Title   string        `yaml:"title"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Data    DataConfig    `yaml:"data"`
	Grid    GridConfig    `yaml:"grid"`
	TUI     TUIConfig     `yaml:"tui"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects where column widths are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, memory
	Path   string `yaml:"path"`
}

// DataConfig locates the dataset override files.
type DataConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// GridConfig holds the defaults shared by every grid.
type GridConfig struct {
	Locale       string `yaml:"locale"` // BCP 47 tag for string collation
	EmptyMessage string `yaml:"empty_message"`
	RowHeight    int    `yaml:"row_height"` // Virtual row height in pixels
	Overscan     int    `yaml:"overscan"`
}

// TUIConfig configures the terminal surface.
type TUIConfig struct {
	CellPx         int `yaml:"cell_px"`
	CardBreakpoint int `yaml:"card_breakpoint"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
	File     string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Title: "Command Center",
		Server: ServerConfig{
			Addr: "127.0.0.1:8097",
		},
		Storage: StorageConfig{
			Driver: StorageSQLite,
			Path:   filepath.Join(".commandcenter", "commandcenter.db"),
		},
		Data: DataConfig{
			Dir:   "data",
			Watch: true,
		},
		Grid: GridConfig{
			Locale:    "en",
			RowHeight: 48,
			Overscan:  4,
		},
		TUI: TUIConfig{
			CellPx:         8,
			CardBreakpoint: 60,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the sqlite driver"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q: want %s or %s", c.Storage.Driver, StorageSQLite, StorageMemory))
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.encoding %q: want console or json", c.Logging.Encoding))
	}
	if c.Grid.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("grid.row_height must be positive, got %d", c.Grid.RowHeight))
	}
	if c.Grid.Overscan < 0 {
		errs = append(errs, fmt.Errorf("grid.overscan must not be negative, got %d", c.Grid.Overscan))
	}
	if c.TUI.CellPx <= 0 {
		errs = append(errs, fmt.Errorf("tui.cell_px must be positive, got %d", c.TUI.CellPx))
	}
	return errors.Join(errs...)
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("COMMANDCENTER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("COMMANDCENTER_DB"); path != "" {
		c.Storage.Driver = StorageSQLite
		c.Storage.Path = path
	}
	if level := os.Getenv("COMMANDCENTER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("COMMANDCENTER_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
}
