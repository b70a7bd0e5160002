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

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "col-widths-campaigns")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report ok=false")

	require.NoError(t, kv.Set(ctx, "col-widths-campaigns", []byte(`{"name":"200px"}`)))
	require.NoError(t, kv.Set(ctx, "col-widths-suppliers", []byte(`{}`)))
	require.NoError(t, kv.Set(ctx, "other", []byte(`x`)))

	v, ok, err := kv.Get(ctx, "col-widths-campaigns")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"200px"}`, string(v))

	// Last write wins.
	require.NoError(t, kv.Set(ctx, "col-widths-campaigns", []byte(`{"name":"220px"}`)))
	v, _, err = kv.Get(ctx, "col-widths-campaigns")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"220px"}`, string(v))

	keys, err := kv.Keys(ctx, "col-widths-")
	require.NoError(t, err)
	assert.Equal(t, []string{"col-widths-campaigns", "col-widths-suppliers"}, keys)

	require.NoError(t, kv.Delete(ctx, "col-widths-suppliers"))
	_, ok, err = kv.Get(ctx, "col-widths-suppliers")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'z'
	v, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "grid.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	exerciseKV(t, s)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "grid.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "col-widths-quotes", []byte(`{"total":"140px"}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, "col-widths-quotes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"total":"140px"}`, string(v))
}
