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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must be quiet before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

var (
	ErrUnknownSource   = errors.New("unknown source")
	ErrDuplicateSource = errors.New("source already registered")
)

// ReloadFunc receives the contents of a source file.
type ReloadFunc func(ctx context.Context, data []byte) error

type source struct {
	name     string
	path     string
	reload   ReloadFunc
	loadedAt time.Time
}

// Manager tracks named dataset files and feeds their contents to the
// components that own the data.
type Manager struct {
	mu sync.RWMutex

	sources map[string]*source

	// Base directory for resolving relative paths
	baseDir  string
	debounce time.Duration
	logger   *zap.Logger
}

// NewManager creates a manager resolving relative paths against baseDir.
func NewManager(baseDir string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sources:  make(map[string]*source),
		baseDir:  baseDir,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// SetDebounce changes the quiet period Watch waits before reloading.
func (m *Manager) SetDebounce(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debounce = d
}

// Register adds a named source file. Relative paths are resolved against the
// base directory.
func (m *Manager) Register(name, path string, reload ReloadFunc) error {
	if name == "" || path == "" || reload == nil {
		return fmt.Errorf("source %q: name, path and reload are required", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[name]; ok {
		return fmt.Errorf("source %q: %w", name, ErrDuplicateSource)
	}
	if !filepath.IsAbs(path) && m.baseDir != "" {
		path = filepath.Join(m.baseDir, path)
	}
	m.sources[name] = &source{name: name, path: filepath.Clean(path), reload: reload}
	return nil
}

// SourceNames returns the registered source names in sorted order.
func (m *Manager) SourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Path returns the resolved file path of a source.
func (m *Manager) Path(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sources[name]
	if !ok {
		return "", false
	}
	return s.path, true
}

// IsLoaded returns whether a source has been loaded successfully.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sources[name]
	return ok && !s.loadedAt.IsZero()
}

// Load reads a source file and hands it to its reload function. A missing
// file yields an error matching fs.ErrNotExist.
func (m *Manager) Load(ctx context.Context, name string) error {
	m.mu.RLock()
	s, ok := m.sources[name]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("source %q: %w", name, ErrUnknownSource)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read source %q: %w", name, err)
	}
	if err := s.reload(ctx, data); err != nil {
		return fmt.Errorf("failed to load source %q: %w", name, err)
	}

	m.mu.Lock()
	s.loadedAt = time.Now()
	m.mu.Unlock()
	m.logger.Debug("source loaded", zap.String("source", name), zap.String("path", s.path))
	return nil
}

// LoadAll loads every source whose file exists. Missing files are skipped;
// other failures are joined.
func (m *Manager) LoadAll(ctx context.Context) error {
	var errs []error
	for _, name := range m.SourceNames() {
		err := m.Load(ctx, name)
		switch {
		case errors.Is(err, os.ErrNotExist):
			m.logger.Debug("source file not present", zap.String("source", name))
		case err != nil:
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sourceFor returns the source registered for a file path.
func (m *Manager) sourceFor(path string) (string, bool) {
	path = filepath.Clean(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for name, s := range m.sources {
		if s.path == path {
			return name, true
		}
	}
	return "", false
}

func (m *Manager) dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var dirs []string
	for _, s := range m.sources {
		if dir := filepath.Dir(s.path); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// Watch reloads sources whose files are written or created, once they have
// been quiet for the debounce period. The directories holding the sources
// are watched. It blocks until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range m.dirs() {
		if err := w.Add(dir); err != nil {
			m.logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		m.logger.Debug("watching directory", zap.String("dir", dir))
	}

	m.mu.RLock()
	debounce := m.debounce
	m.mu.RUnlock()
	ticker := time.NewTicker(max(debounce/2, 10*time.Millisecond))
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if name, ok := m.sourceFor(event.Name); ok {
				pending[name] = time.Now()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			for name, at := range pending {
				if now.Sub(at) < debounce {
					continue
				}
				delete(pending, name)
				if err := m.Load(ctx, name); err != nil {
					m.logger.Warn("failed to reload source", zap.String("source", name), zap.Error(err))
					continue
				}
				m.logger.Info("source reloaded", zap.String("source", name))
			}
		}
	}
}
