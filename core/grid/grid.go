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

// Package grid implements the sortable, selectable, resizable data grid over
// caller-owned rows. A Grid keeps its derived state (sorted order, anchor,
// drag session) consistent under one lock and proposes selection changes to
// its caller instead of owning them.
package grid

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/selection"
	"github.com/retail360/commandcenter/core/sorting"
	"github.com/retail360/commandcenter/core/storage"
	"github.com/retail360/commandcenter/core/widths"
	"go.uber.org/zap"
)

// DefaultTableName namespaces widths of grids created without a name.
const DefaultTableName = "default-table"

// ContextMenuEvent carries the pointer position of a secondary click.
type ContextMenuEvent struct {
	X, Y float64
}

// Options configures a grid. Data and SelectedIDs are owned by the caller;
// the grid only reads them.
type Options[T rows.Row] struct {
	TableName         string
	Title             string
	Columns           []columns.Column[T]
	Data              []T
	EnableSelection   bool
	SelectedIDs       []rows.ID
	HighlightedID     rows.ID
	OnRowClick        func(row T)
	OnRowContextMenu  func(ev ContextMenuEvent, row T)
	OnSelectionChange func(ids []rows.ID)
	EmptyMessage      string
	// ResizeIdleTimeout detaches a column drag that received no events for
	// this long. Zero uses widths.DefaultIdleTimeout.
	ResizeIdleTimeout time.Duration
}

// RowRef addresses a row in the displayed order. A valid ID wins; otherwise
// Index is used.
type RowRef struct {
	ID    rows.ID
	Index int
}

// RefByID addresses a row by identifier.
func RefByID(id rows.ID) RowRef {
	return RowRef{ID: id, Index: -1}
}

// RefByIndex addresses a row by its position in the displayed order.
func RefByIndex(i int) RowRef {
	return RowRef{ID: rows.None, Index: i}
}

// Result reports what an interaction did.
type Result struct {
	// Selection is the set proposed to OnSelectionChange.
	Selection  selection.Set
	Proposed   bool
	RowClicked bool
}

// Grid is the data grid component.
type Grid[T rows.Row] struct {
	mu sync.Mutex

	name         string
	title        string
	emptyMessage string
	cols         []columns.Column[T]
	data         []T
	sorted       []T
	sortCfg      sorting.Config
	enabled      bool
	selected     selection.Set
	highlighted  rows.ID
	engine       selection.Engine

	sorter  *sorting.Sorter
	widths  *widths.Store
	resizer *widths.Resizer
	logger  *zap.Logger

	onRowClick        func(T)
	onRowContextMenu  func(ContextMenuEvent, T)
	onSelectionChange func([]rows.ID)
}

// New creates a grid, loading and seeding the persisted widths of its table.
// Invalid columns are logged and degrade instead of failing.
func New[T rows.Row](ctx context.Context, opts Options[T], kv storage.KV, sorter *sorting.Sorter, logger *zap.Logger) (*Grid[T], error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sorter == nil {
		var err error
		if sorter, err = sorting.NewSorter(""); err != nil {
			return nil, err
		}
	}
	if kv == nil {
		kv = storage.NewMemory()
	}
	name := opts.TableName
	if name == "" {
		name = DefaultTableName
	}
	logger = logger.With(zap.String("table", name))

	store, err := widths.Open(ctx, kv, name, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid %q: %w", name, err)
	}

	g := &Grid[T]{
		name:              name,
		title:             opts.Title,
		emptyMessage:      opts.EmptyMessage,
		enabled:           opts.EnableSelection,
		selected:          selection.NewSet(opts.SelectedIDs...),
		highlighted:       opts.HighlightedID,
		sorter:            sorter,
		widths:            store,
		resizer:           widths.NewResizer(store),
		logger:            logger,
		onRowClick:        opts.OnRowClick,
		onRowContextMenu:  opts.OnRowContextMenu,
		onSelectionChange: opts.OnSelectionChange,
	}
	g.resizer.SetIdleTimeout(opts.ResizeIdleTimeout)
	if g.title == "" {
		g.title = name
	}
	g.data = opts.Data
	g.sorted = g.data
	g.SetColumns(ctx, opts.Columns)
	return g, nil
}

// Name returns the table name.
func (g *Grid[T]) Name() string {
	return g.name
}

// Title returns the display title.
func (g *Grid[T]) Title() string {
	return g.title
}

// SetData replaces the rows and re-derives the sorted order.
func (g *Grid[T]) SetData(data []T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = data
	g.resortLocked()
}

// SetColumns replaces the column list and fills in width hints for new
// columns. Persisted widths are never reset.
func (g *Grid[T]) SetColumns(ctx context.Context, cols []columns.Column[T]) {
	if err := columns.Validate(cols); err != nil {
		g.logger.Warn("column list is degraded", zap.Error(err))
	}
	if _, err := g.widths.Seed(ctx, columns.Hints(cols)); err != nil {
		g.logger.Warn("failed to persist seeded widths", zap.Error(err))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cols = slices.Clone(cols)
	g.resortLocked()
}

// SetSelected replaces the selection with the caller's state.
func (g *Grid[T]) SetSelected(ids []rows.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = selection.NewSet(ids...)
}

// Selected returns the current selection.
func (g *Grid[T]) Selected() selection.Set {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.selected)
}

// SetHighlighted changes the id passed to cell renderers as highlighted.
func (g *Grid[T]) SetHighlighted(id rows.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.highlighted = id
}

// Highlighted returns the highlighted id.
func (g *Grid[T]) Highlighted() rows.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.highlighted
}

// SortConfig returns the active sort.
func (g *Grid[T]) SortConfig() sorting.Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortCfg
}

// ToggleSort handles a click on a column header. Unknown and non-sortable
// columns are ignored.
func (g *Grid[T]) ToggleSort(accessor string) sorting.Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := columns.Find(g.cols, accessor)
	if !ok || !c.Sortable || accessor == "" {
		return g.sortCfg
	}
	g.sortCfg = g.sortCfg.Toggle(accessor)
	g.resortLocked()
	return g.sortCfg
}

// SetSort applies a sort configuration directly, as restored from a URL.
func (g *Grid[T]) SetSort(cfg sorting.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cfg.Active() {
		if c, ok := columns.Find(g.cols, cfg.Key); !ok || !c.Sortable {
			return
		}
	}
	g.sortCfg = cfg
	g.resortLocked()
}

func (g *Grid[T]) resortLocked() {
	g.sorted = sorting.Sort(g.sorter, g.data, g.sortCfg)
}

// Len returns the number of rows in the data set.
func (g *Grid[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.data)
}

// SelectedCount returns the size of the selection.
func (g *Grid[T]) SelectedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.selected)
}

// Sorted returns the rows in displayed order.
func (g *Grid[T]) Sorted() []T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.sorted)
}

func (g *Grid[T]) rowLocked(ref RowRef) (T, bool) {
	var zero T
	if ref.ID.Valid() {
		i := rows.IndexOf(g.sorted, ref.ID)
		if i < 0 {
			return zero, false
		}
		return g.sorted[i], true
	}
	if ref.Index < 0 || ref.Index >= len(g.sorted) {
		return zero, false
	}
	return g.sorted[ref.Index], true
}

func (g *Grid[T]) orderLocked() []rows.ID {
	order := make([]rows.ID, len(g.sorted))
	for i, r := range g.sorted {
		order[i] = r.RowID()
	}
	return order
}

// ClickRow resolves a click on a row with the given modifiers.
func (g *Grid[T]) ClickRow(ref RowRef, mods selection.Modifiers) Result {
	g.mu.Lock()
	row, ok := g.rowLocked(ref)
	if !ok {
		g.mu.Unlock()
		g.logger.Debug("click on unknown row", zap.Stringer("id", ref.ID), zap.Int("index", ref.Index))
		return Result{}
	}
	out := g.engine.Click(mods, row.RowID(), g.selected, g.orderLocked(), g.enabled, g.onRowClick != nil)
	onRowClick, onChange := g.onRowClick, g.onSelectionChange
	g.mu.Unlock()

	return dispatch(out, row, onRowClick, onChange)
}

// ClickCheckbox toggles one row's membership regardless of modifiers.
func (g *Grid[T]) ClickCheckbox(ref RowRef) Result {
	g.mu.Lock()
	if !g.enabled {
		g.mu.Unlock()
		return Result{}
	}
	row, ok := g.rowLocked(ref)
	if !ok {
		g.mu.Unlock()
		return Result{}
	}
	out := g.engine.Checkbox(row.RowID(), g.selected)
	onChange := g.onSelectionChange
	g.mu.Unlock()

	return dispatch(out, row, nil, onChange)
}

// ActivateCheckbox is the keyboard path of ClickCheckbox.
func (g *Grid[T]) ActivateCheckbox(ref RowRef, key string) Result {
	if !selection.IsActivationKey(key) {
		return Result{}
	}
	return g.ClickCheckbox(ref)
}

// ToggleSelectAll handles the header checkbox over the full data set.
func (g *Grid[T]) ToggleSelectAll() Result {
	g.mu.Lock()
	if !g.enabled {
		g.mu.Unlock()
		return Result{}
	}
	out := selection.SelectAll(g.selected, len(g.data), rows.IDs(g.data))
	onChange := g.onSelectionChange
	g.mu.Unlock()

	var zero T
	return dispatch(out, zero, nil, onChange)
}

// ActivateSelectAll is the keyboard path of ToggleSelectAll.
func (g *Grid[T]) ActivateSelectAll(key string) Result {
	if !selection.IsActivationKey(key) {
		return Result{}
	}
	return g.ToggleSelectAll()
}

// ContextMenu forwards a secondary click on a row. It reports whether a
// callback was invoked.
func (g *Grid[T]) ContextMenu(ref RowRef, ev ContextMenuEvent) bool {
	g.mu.Lock()
	row, ok := g.rowLocked(ref)
	cb := g.onRowContextMenu
	g.mu.Unlock()
	if !ok || cb == nil {
		return false
	}
	cb(ev, row)
	return true
}

func dispatch[T rows.Row](out selection.Outcome, row T, onRowClick func(T), onChange func([]rows.ID)) Result {
	res := Result{Selection: out.Selection, Proposed: out.Propose}
	if out.RowClick && onRowClick != nil {
		onRowClick(row)
		res.RowClicked = true
	}
	if out.Propose && onChange != nil {
		onChange(slices.Clone(out.Selection))
	}
	return res
}

// Close tears down any active drag.
func (g *Grid[T]) Close() error {
	return g.resizer.Close()
}
