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

package datasources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sink struct {
	mu    sync.Mutex
	loads [][]byte
	err   error
}

func (s *sink) reload(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.loads = append(s.loads, data)
	return nil
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loads)
}

func (s *sink) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.loads) == 0 {
		return ""
	}
	return string(s.loads[len(s.loads)-1])
}

func TestRegister(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	s := &sink{}

	require.NoError(t, m.Register("campaigns", "campaigns.yaml", s.reload))
	err := m.Register("campaigns", "other.yaml", s.reload)
	assert.ErrorIs(t, err, ErrDuplicateSource)
	assert.Error(t, m.Register("", "x.yaml", s.reload))
	assert.Error(t, m.Register("x", "x.yaml", nil))

	path, ok := m.Path("campaigns")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "campaigns.yaml"), path)

	require.NoError(t, m.Register("abs", "/srv/data/abs.yaml", s.reload))
	path, _ = m.Path("abs")
	assert.Equal(t, "/srv/data/abs.yaml", path)
	assert.Equal(t, []string{"abs", "campaigns"}, m.SourceNames())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	s := &sink{}
	require.NoError(t, m.Register("suppliers", "suppliers.yaml", s.reload))

	err := m.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownSource)

	err = m.Load(context.Background(), "suppliers")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, m.IsLoaded("suppliers"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "suppliers.yaml"), []byte("- id: 1\n"), 0644))
	require.NoError(t, m.Load(context.Background(), "suppliers"))
	assert.True(t, m.IsLoaded("suppliers"))
	assert.Equal(t, "- id: 1\n", s.last())

	s.err = errors.New("bad rows")
	err = m.Load(context.Background(), "suppliers")
	assert.ErrorContains(t, err, "bad rows")
}

func TestLoadAllSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	present, missing, broken := &sink{}, &sink{}, &sink{err: errors.New("boom")}
	require.NoError(t, m.Register("present", "present.yaml", present.reload))
	require.NoError(t, m.Register("missing", "missing.yaml", missing.reload))
	require.NoError(t, m.Register("broken", "broken.yaml", broken.reload))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.yaml"), []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("[]"), 0644))

	err := m.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken")
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, present.count())
	assert.Equal(t, 0, missing.count())
}

func TestWatchReloadsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	m := NewManager(dir, nil)
	m.SetDebounce(20 * time.Millisecond)
	s := &sink{}
	require.NoError(t, m.Register("quotes", "quotes.yaml", s.reload))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// Writes before the watch is registered are lost, so keep writing.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("- id: 7\n"), 0644); err != nil {
			return false
		}
		return s.last() == "- id: 7\n"
	}, 5*time.Second, 50*time.Millisecond)
	assert.True(t, m.IsLoaded("quotes"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatchIgnoresUnregisteredFiles(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)
	m.SetDebounce(10 * time.Millisecond)
	s := &sink{}
	require.NoError(t, m.Register("quotes", "quotes.yaml", s.reload))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
			time.Sleep(20 * time.Millisecond)
		}
	}()
	require.NoError(t, m.Watch(ctx))
	wg.Wait()
	assert.Equal(t, 0, s.count())
}
