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

package grid

import (
	"context"
	"slices"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/selection"
	"github.com/retail360/commandcenter/core/sorting"
	"github.com/retail360/commandcenter/core/views"
)

// Frame is a consistent snapshot of everything a renderer needs.
type Frame[T rows.Row] struct {
	Columns          []columns.Column[T]
	Sorted           []T
	Sort             sorting.Config
	Selected         selection.Set
	Highlighted      rows.ID
	Widths           map[string]string
	SelectionEnabled bool
}

// Frame takes a snapshot of the grid under its lock.
func (g *Grid[T]) Frame() Frame[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Frame[T]{
		Columns:          slices.Clone(g.cols),
		Sorted:           slices.Clone(g.sorted),
		Sort:             g.sortCfg,
		Selected:         slices.Clone(g.selected),
		Highlighted:      g.highlighted,
		Widths:           g.widths.Widths(),
		SelectionEnabled: g.enabled,
	}
}

// ViewOptions selects how a frame is presented.
type ViewOptions struct {
	Viewport  views.Viewport
	Layout    views.Layout
	Virtual   bool
	RowHeight int
	Overscan  int
}

// View builds the view model of the current frame.
func (g *Grid[T]) View(opts ViewOptions) views.GridViewModel {
	f := g.Frame()
	return views.Build(views.Input[T]{
		Table:            g.name,
		Title:            g.title,
		Columns:          f.Columns,
		Sorted:           f.Sorted,
		Widths:           f.Widths,
		Selected:         f.Selected,
		HighlightedID:    f.Highlighted,
		Sort:             f.Sort,
		SelectionEnabled: f.SelectionEnabled,
		Viewport:         opts.Viewport,
		Layout:           opts.Layout,
		Virtual:          opts.Virtual,
		RowHeight:        opts.RowHeight,
		Overscan:         opts.Overscan,
		EmptyMessage:     g.emptyMessage,
	})
}

// Controller is the row-type independent surface of a grid, used by the
// HTTP and terminal front ends.
type Controller interface {
	Name() string
	Title() string
	Len() int
	SelectedCount() int
	View(opts ViewOptions) views.GridViewModel
	SortConfig() sorting.Config
	SetSort(cfg sorting.Config)
	ToggleSort(accessor string) sorting.Config
	ClickRow(ref RowRef, mods selection.Modifiers) Result
	ClickCheckbox(ref RowRef) Result
	ActivateCheckbox(ref RowRef, key string) Result
	ToggleSelectAll() Result
	ActivateSelectAll(key string) Result
	ContextMenu(ref RowRef, ev ContextMenuEvent) bool
	BeginResize(accessor string, startX, startWidth float64) (string, error)
	MoveResize(ctx context.Context, token string, x float64) (string, bool)
	EndResize(token string) (accessor, px string, ok bool)
	CancelResize(token string)
	Resizing() (string, bool)
	ResizeBy(ctx context.Context, accessor string, delta float64) (string, error)
	Widths() map[string]string
	ResetWidths(ctx context.Context) error
	Close() error
}

var _ Controller = (*Grid[rows.Record])(nil)
