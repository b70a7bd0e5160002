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

package views

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/selection"
	"github.com/retail360/commandcenter/core/sorting"
)

// DefaultEmptyMessage is shown in place of rows when a table has no data.
const DefaultEmptyMessage = "No data found"

// DefaultRowHeight is the fixed height of a virtual row in pixels.
const DefaultRowHeight = 48

// Layout selects the presentation of a grid.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// ParseLayout returns the layout named s, defaulting to the table layout.
func ParseLayout(s string) Layout {
	if Layout(s) == LayoutCards {
		return LayoutCards
	}
	return LayoutTable
}

// GridViewModel contains a grid formatted for template and terminal consumption
type GridViewModel struct {
	Table   string
	Title   string
	Layout  Layout
	Virtual bool

	Headers []HeaderCell
	Rows    []RowViewModel // Rows to draw, in displayed order (a window when Virtual)
	Cards   []Card         // Card layout only

	// Selection
	SelectionEnabled bool
	AllSelected      bool // State of the header checkbox
	SelectedCount    int
	SelectedIDs      []string

	// Pagination and virtualization
	TotalRows   int          // Rows in the full data set
	Window      VisibleRange // Slice of the sorted rows being drawn
	RowHeight   int
	SpacerStyle safehtml.Style // Full scroll height of a virtual body

	// Rendered is false while the viewport is unmeasured; nothing is drawn.
	Rendered     bool
	Empty        bool
	EmptyMessage string

	SortKey       string
	SortDirection sorting.Direction

	CurrentURL safehtml.URL
}

// HeaderCell describes one column header.
type HeaderCell struct {
	Accessor  string
	Label     string
	Width     string  // CSS width ("180px")
	Flex      bool    // Column grows to fill remaining space
	MinWidth  float64 // Resize floor in pixels
	Sortable  bool
	Sorted    sorting.Direction // Empty when the grid is not sorted by this column
	Resizable bool
	ClassName string
	Style     safehtml.Style // Width for the HTML surface
	Action    safehtml.URL   // Relative reference ("?col=name") read by the page script
}

// SortIndicator returns an arrow for the header's sort state.
func (h HeaderCell) SortIndicator() string {
	switch h.Sorted {
	case sorting.Ascending:
		return "▲"
	case sorting.Descending:
		return "▼"
	}
	return ""
}

// Cell is one rendered value.
type Cell struct {
	Accessor  string
	Text      string
	Width     string
	Flex      bool
	ClassName string
	Style     safehtml.Style
}

// RowViewModel is one row in displayed order.
type RowViewModel struct {
	Index       int // Position in the sorted rows
	ID          rows.ID
	Ref         string // ID text, or empty when the row has no id
	Cells       []Cell
	Selected    bool
	Highlighted bool
	Selectable  bool
	Top         int // Offset in pixels when virtualized
	Style       safehtml.Style
	Action      safehtml.URL
}

// Input gathers everything needed to build a GridViewModel from one
// consistent snapshot of grid state.
type Input[T rows.Row] struct {
	Table            string
	Title            string
	Columns          []columns.Column[T]
	Sorted           []T
	Widths           map[string]string
	Selected         selection.Set
	HighlightedID    rows.ID
	Sort             sorting.Config
	SelectionEnabled bool
	Viewport         Viewport
	Layout           Layout
	Virtual          bool
	RowHeight        int
	Overscan         int
	EmptyMessage     string
}

// Build creates the view model. Plain mode draws every sorted row; virtual
// mode draws only the rows intersecting the viewport. An unmeasured viewport
// in virtual mode draws nothing.
func Build[T rows.Row](in Input[T]) GridViewModel {
	vm := GridViewModel{
		Table:            in.Table,
		Title:            in.Title,
		Layout:           in.Layout,
		Virtual:          in.Virtual,
		SelectionEnabled: in.SelectionEnabled,
		AllSelected:      selection.AllSelected(in.Selected, len(in.Sorted)),
		SelectedCount:    len(in.Selected),
		SelectedIDs:      in.Selected.Strings(),
		TotalRows:        len(in.Sorted),
		RowHeight:        in.RowHeight,
		EmptyMessage:     in.EmptyMessage,
		SortKey:          in.Sort.Key,
		SortDirection:    in.Sort.Direction,
	}
	if vm.Layout == "" {
		vm.Layout = LayoutTable
	}
	if vm.RowHeight <= 0 {
		vm.RowHeight = DefaultRowHeight
	}
	if vm.EmptyMessage == "" {
		vm.EmptyMessage = DefaultEmptyMessage
	}
	vm.Headers = buildHeaders(in.Columns, in.Widths, in.Sort)

	if in.Virtual && !in.Viewport.Measured() {
		return vm
	}
	vm.Rendered = true
	if len(in.Sorted) == 0 {
		vm.Empty = true
		return vm
	}

	vm.Window = VisibleRange{Start: 0, End: len(in.Sorted), TotalHeight: len(in.Sorted) * vm.RowHeight}
	if in.Virtual {
		vm.Window = Window(len(in.Sorted), vm.RowHeight, in.Viewport.Height, in.Viewport.ScrollTop, in.Overscan)
		vm.SpacerStyle = safehtml.StyleFromProperties(safehtml.StyleProperties{Height: px(vm.Window.TotalHeight)})
	}

	if vm.Layout == LayoutCards {
		vm.Cards = buildCards(in, vm.Window)
		return vm
	}
	vm.Rows = make([]RowViewModel, 0, vm.Window.Len())
	for i := vm.Window.Start; i < vm.Window.End; i++ {
		r := buildRow(in, i, vm.Headers, vm.RowHeight)
		if in.Virtual {
			r.Style = safehtml.StyleFromProperties(safehtml.StyleProperties{Top: px(r.Top), Height: px(vm.RowHeight)})
		}
		vm.Rows = append(vm.Rows, r)
	}
	return vm
}

// ColumnWidth returns the width a column is drawn at and whether it flexes:
// the persisted width, else the column's hint, else DefaultWidth. Columns
// without a hint flex.
func ColumnWidth(persisted map[string]string, accessor, hint string) (string, bool) {
	flex := hint == ""
	if w, ok := persisted[accessor]; ok && w != "" && accessor != "" {
		return w, flex
	}
	if hint != "" {
		return hint, flex
	}
	return columns.DefaultWidth, flex
}

func buildHeaders[T rows.Row](cols []columns.Column[T], widths map[string]string, cfg sorting.Config) []HeaderCell {
	headers := make([]HeaderCell, len(cols))
	for i, c := range cols {
		w, flex := ColumnWidth(widths, c.Accessor, c.Width)
		h := HeaderCell{
			Accessor:  c.Accessor,
			Label:     c.HeaderText(),
			Width:     w,
			Flex:      flex,
			MinWidth:  columns.MinWidth(c.HeaderText()),
			Sortable:  c.Sortable && c.Accessor != "",
			Resizable: c.Accessor != "",
			ClassName: c.ClassName,
			Style:     widthStyle(w),
			Action:    safehtml.URLSanitized("?" + url.Values{"col": {c.Accessor}}.Encode()),
		}
		if cfg.Active() && cfg.Key == c.Accessor && c.Accessor != "" {
			h.Sorted = cfg.Direction
		}
		headers[i] = h
	}
	return headers
}

func buildRow[T rows.Row](in Input[T], i int, headers []HeaderCell, rowHeight int) RowViewModel {
	row := in.Sorted[i]
	id := row.RowID()
	selected := id.Valid() && in.Selected.Contains(id)
	ctx := columns.RenderContext{HighlightedID: in.HighlightedID, Selected: selected}

	cells := make([]Cell, len(in.Columns))
	for j, c := range in.Columns {
		cells[j] = Cell{
			Accessor:  c.Accessor,
			Text:      columns.CellValue(row, c, ctx),
			Width:     headers[j].Width,
			Flex:      headers[j].Flex,
			ClassName: c.ClassName,
			Style:     headers[j].Style,
		}
	}
	return RowViewModel{
		Index:       i,
		ID:          id,
		Ref:         id.Text(),
		Cells:       cells,
		Selected:    selected,
		Highlighted: id.Valid() && id == in.HighlightedID,
		Selectable:  in.SelectionEnabled && id.Valid(),
		Top:         i * rowHeight,
		Action:      RowAction(id, i),
	}
}

// RowAction is the relative reference of row i used by the page script.
func RowAction(id rows.ID, i int) safehtml.URL {
	v := url.Values{"index": {strconv.Itoa(i)}}
	if id.Valid() {
		v.Set("row", id.Text())
	}
	return safehtml.URLSanitized("?" + v.Encode())
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func widthStyle(w string) safehtml.Style {
	return safehtml.StyleFromProperties(safehtml.StyleProperties{Width: w})
}
