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

// Package widths persists per-table column widths and runs drag-resize
// sessions against them.
package widths

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/storage"
	"go.uber.org/zap"
)

// KeyPrefix namespaces width entries in the key-value store.
const KeyPrefix = "col-widths-"

// Key returns the storage key for a table's widths.
func Key(tableName string) string {
	return KeyPrefix + tableName
}

// Store is the width map of one table. It is the single writer of its key.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	table  string
	widths map[string]string
	logger *zap.Logger
}

// Open loads the persisted widths of tableName. A missing or null entry
// starts empty; an unreadable entry is logged and ignored.
func Open(ctx context.Context, kv storage.KV, tableName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:     kv,
		table:  tableName,
		widths: make(map[string]string),
		logger: logger,
	}
	raw, ok, err := kv.Get(ctx, Key(tableName))
	if err != nil {
		return nil, fmt.Errorf("failed to load widths for %q: %w", tableName, err)
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.widths); err != nil {
		logger.Warn("ignoring unreadable column widths",
			zap.String("table", tableName), zap.Error(err))
		s.widths = make(map[string]string)
	}
	if s.widths == nil {
		s.widths = make(map[string]string)
	}
	return s, nil
}

// Table returns the table name the store is keyed by.
func (s *Store) Table() string {
	return s.table
}

// Widths returns a copy of the current width map.
func (s *Store) Widths() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.widths)
}

// Width returns the width stored for accessor.
func (s *Store) Width(accessor string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widths[accessor]
	return w, ok
}

// Seed fills in hints for accessors that have no entry yet. Existing entries
// are never overwritten. It reports whether anything changed; when nothing
// did, no write is issued.
func (s *Store) Seed(ctx context.Context, hints []columns.Hint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, h := range hints {
		if h.Accessor == "" || h.Width == "" {
			continue
		}
		if _, ok := s.widths[h.Accessor]; ok {
			continue
		}
		s.widths[h.Accessor] = h.Width
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, s.persistLocked(ctx)
}

// Set commits one width.
func (s *Store) Set(ctx context.Context, accessor, px string) error {
	if accessor == "" {
		return columns.ErrEmptyAccessor
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.widths[accessor] == px {
		return nil
	}
	s.widths[accessor] = px
	return s.persistLocked(ctx)
}

// Reset forgets every width of the table, in memory and in storage.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widths = make(map[string]string)
	if err := s.kv.Delete(ctx, Key(s.table)); err != nil {
		return fmt.Errorf("failed to reset widths for %q: %w", s.table, err)
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.widths)
	if err != nil {
		return fmt.Errorf("failed to encode widths: %w", err)
	}
	if err := s.kv.Set(ctx, Key(s.table), raw); err != nil {
		return fmt.Errorf("failed to persist widths for %q: %w", s.table, err)
	}
	return nil
}

// List returns the persisted widths of every table found in kv.
func List(ctx context.Context, kv storage.KV) (map[string]map[string]string, error) {
	keys, err := kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string, len(keys))
	for _, k := range keys {
		raw, ok, err := kv.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		w := make(map[string]string)
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("invalid widths under %q: %w", k, err)
		}
		if w == nil {
			w = make(map[string]string)
		}
		out[strings.TrimPrefix(k, KeyPrefix)] = w
	}
	return out, nil
}
