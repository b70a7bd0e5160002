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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retail360/commandcenter/core/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file keeping all state under a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "commandcenter.yaml")
	content := fmt.Sprintf(`storage:
  driver: sqlite
  path: %s
data:
  dir: %s
  watch: false
logging:
  level: error
`, filepath.Join(dir, "widths.db"), filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		for _, name := range []string{"sort", "file"} {
			_ = printCmd.Flags().Set(name, "")
		}
		_ = printCmd.Flags().Set("cards", "false")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrintListsTables(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := execute(t, "print", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "campaigns")
	assert.Contains(t, out, "Rate Card (6 rows)")
	assert.Contains(t, out, "Transactions (5000 rows)")
}

func TestPrintUnknownTable(t *testing.T) {
	cfgPath := writeConfig(t)

	_, err := execute(t, "print", "nope", "--config", cfgPath)
	require.ErrorIs(t, err, server.ErrUnknownTable)
}

func TestPrintFileSorted(t *testing.T) {
	cfgPath := writeConfig(t)
	csvPath := filepath.Join(t.TempDir(), "vendors.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,name,score\n1,Beacon,3\n2,Atlas,9\n3,Nova,5\n"), 0o644))

	out, err := execute(t, "print", "--config", cfgPath, "--file", csvPath, "--sort", "score:desc")
	require.NoError(t, err)
	atlas, nova, beacon := strings.Index(out, "Atlas"), strings.Index(out, "Nova"), strings.Index(out, "Beacon")
	require.True(t, atlas >= 0 && nova >= 0 && beacon >= 0, out)
	assert.Less(t, atlas, nova)
	assert.Less(t, nova, beacon)
}

func TestWidthsListAndReset(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := execute(t, "widths", "reset", "campaigns", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "reset campaigns\n", out)

	out, err = execute(t, "widths", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "campaigns\n")
	assert.Contains(t, out, "260px")

	_, err = execute(t, "widths", "reset", "nope", "--config", cfgPath)
	require.ErrorIs(t, err, server.ErrUnknownTable)
}

func TestConfigInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "127.0.0.1:8097")
}
