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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"COMMANDCENTER_ADDR", "COMMANDCENTER_DB", "COMMANDCENTER_LOG_LEVEL", "COMMANDCENTER_DATA_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
grid:
  locale: es
  empty_message: No se encontraron datos
tui:
  cell_px: 10
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "es", cfg.Grid.Locale)
	assert.Equal(t, "No se encontraron datos", cfg.Grid.EmptyMessage)
	assert.Equal(t, 10, cfg.TUI.CellPx)
	assert.Equal(t, 60, cfg.TUI.CardBreakpoint)
	assert.Equal(t, 48, cfg.Grid.RowHeight)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMMANDCENTER_ADDR", ":7000")
	t.Setenv("COMMANDCENTER_DB", "/tmp/cc.db")
	t.Setenv("COMMANDCENTER_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/cc.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "server: [\n"},
		{"bad driver", "storage:\n  driver: redis\n"},
		{"bad encoding", "logging:\n  encoding: xml\n"},
		{"zero row height", "grid:\n  row_height: 0\n"},
		{"zero cell px", "tui:\n  cell_px: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Driver = StorageMemory
	cfg.Data.Watch = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
