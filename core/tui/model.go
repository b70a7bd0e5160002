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

// Package tui is the terminal surface of the grids: a bubbletea model that
// maps mouse and keyboard input onto grid interactions.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/selection"
	"github.com/retail360/commandcenter/core/views"
	"go.uber.org/zap"
)

const (
	DefaultCellPx         = 8
	DefaultCardBreakpoint = 60

	gutterWidth = 4 // "[x] "
	bodyTop     = 2 // tabs and header lines
	chrome      = 4 // tabs, header, status and help lines
	wheelStep   = 3
	resizeStep  = 2 // cells per +/- press
	minCells    = 3
)

// Options configures the terminal model.
type Options struct {
	// CellPx is the number of pixels one terminal cell stands for when
	// mapping stored widths to columns.
	CellPx int
	// CardBreakpoint is the terminal width, in cells, below which rows are
	// stacked as cards.
	CardBreakpoint int
	Keys           *KeyMap
	Styles         *Styles
	Logger         *zap.Logger
}

// Model is the bubbletea model of the grid browser.
type Model struct {
	ctx    context.Context
	grids  []grid.Controller
	active int

	width, height int
	cursor        int // Row index in displayed order
	scroll        int // First visible row
	focus         int // Focused column

	cellPx         int
	cardBreakpoint int
	dragToken      string // Resize session of the column being dragged
	status         string

	keys   KeyMap
	help   help.Model
	styles Styles
	logger *zap.Logger
}

// New creates a model browsing grids. Nothing is drawn until the first
// tea.WindowSizeMsg reports a non-zero size.
func New(ctx context.Context, grids []grid.Controller, opts Options) Model {
	m := Model{
		ctx:            ctx,
		grids:          grids,
		cellPx:         opts.CellPx,
		cardBreakpoint: opts.CardBreakpoint,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		styles:         DefaultStyles(),
		logger:         opts.Logger,
	}
	if m.cellPx <= 0 {
		m.cellPx = DefaultCellPx
	}
	if m.cardBreakpoint <= 0 {
		m.cardBreakpoint = DefaultCardBreakpoint
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Cursor returns the row index under the keyboard cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// Active returns the grid being browsed.
func (m Model) Active() grid.Controller {
	if len(m.grids) == 0 {
		return nil
	}
	return m.grids[m.active]
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clamp()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) cards() bool {
	return m.width < m.cardBreakpoint
}

func (m Model) bodyHeight() int {
	return max(0, m.height-chrome)
}

// frame is one view of the active grid plus the geometry needed to map
// screen positions back to rows.
type frame struct {
	vm     views.GridViewModel
	unit   int // Lines per row
	widths []int
	starts []int
	gutter int
}

func (m Model) frame(g grid.Controller) frame {
	layout := views.LayoutTable
	unit := 1
	if m.cards() {
		layout = views.LayoutCards
		probe := g.View(grid.ViewOptions{Virtual: true, Layout: layout})
		unit = views.CardHeight(probe.Headers)
	}
	vm := g.View(grid.ViewOptions{
		Viewport:  views.Viewport{Width: m.width, Height: m.bodyHeight(), ScrollTop: m.scroll * unit},
		Layout:    layout,
		Virtual:   true,
		RowHeight: unit,
	})
	f := frame{vm: vm, unit: unit}
	if vm.SelectionEnabled {
		f.gutter = gutterWidth
	}
	f.widths = m.columnCells(vm.Headers, f.gutter)
	x := f.gutter
	for _, w := range f.widths {
		f.starts = append(f.starts, x)
		x += w + 1
	}
	return f
}

// columnCells maps header widths to terminal cells. Flex columns share the
// cells left over by the fixed ones.
func (m Model) columnCells(headers []views.HeaderCell, gutter int) []int {
	cells := make([]int, len(headers))
	used, flex := gutter, 0
	for i, h := range headers {
		px, err := columns.ParsePx(h.Width)
		if err != nil {
			px, _ = columns.ParsePx(columns.DefaultWidth)
		}
		cells[i] = max(minCells, int(px)/m.cellPx)
		used += cells[i] + 1
		if h.Flex {
			flex++
		}
	}
	if spare := m.width - used; spare > 0 && flex > 0 {
		for i, h := range headers {
			if h.Flex {
				cells[i] += spare / flex
			}
		}
	}
	return cells
}

// rowAt returns the row index drawn at screen line y and the line offset
// within that row.
func (f frame) rowAt(y int) (int, int, bool) {
	if y < bodyTop || !f.vm.Rendered || f.vm.Empty {
		return 0, 0, false
	}
	i := f.vm.Window.Start + (y-bodyTop)/f.unit
	if i >= f.vm.Window.End {
		return 0, 0, false
	}
	return i, (y - bodyTop) % f.unit, true
}

// columnAt returns the column under x and whether x is on its right border.
func (f frame) columnAt(x int) (int, bool, bool) {
	for i, start := range f.starts {
		end := start + f.widths[i]
		switch {
		case x >= start && x < end:
			return i, false, true
		case x == end:
			return i, true, true
		}
	}
	return 0, false, false
}

func (m *Model) clamp() {
	g := m.Active()
	if g == nil {
		return
	}
	total := g.Len()
	m.cursor = min(max(m.cursor, 0), max(total-1, 0))

	visible := m.visibleRows()
	m.scroll = min(max(m.scroll, 0), max(total-visible, 0))
	m.scroll = views.ScrollToRow(m.cursor, 1, visible, m.scroll)
}

func (m Model) visibleRows() int {
	unit := 1
	if m.cards() && m.Active() != nil {
		unit = views.CardHeight(m.Active().View(grid.ViewOptions{Virtual: true}).Headers)
	}
	return max(1, m.bodyHeight()/unit)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) switchTable(delta int) {
	if len(m.grids) == 0 {
		return
	}
	if g := m.Active(); g != nil {
		g.CancelResize(m.dragToken)
	}
	m.dragToken = ""
	m.active = (m.active + delta + len(m.grids)) % len(m.grids)
	m.cursor, m.scroll, m.focus = 0, 0, 0
	m.status = ""
	m.clamp()
}

func (m Model) focusedColumn(g grid.Controller) (views.HeaderCell, bool) {
	headers := g.View(grid.ViewOptions{Virtual: true}).Headers
	if m.focus < 0 || m.focus >= len(headers) {
		return views.HeaderCell{}, false
	}
	return headers[m.focus], true
}

func (m *Model) report(res grid.Result, row int) {
	switch {
	case res.RowClicked:
		m.status = fmt.Sprintf("row %d clicked", row+1)
	case res.Proposed:
		m.status = fmt.Sprintf("%d selected", len(res.Selection))
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	g := m.Active()
	if g == nil {
		return m, nil
	}
	headerCount := len(g.View(grid.ViewOptions{Virtual: true}).Headers)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clamp()
	case key.Matches(msg, m.keys.End):
		m.cursor = g.Len() - 1
		m.clamp()
	case key.Matches(msg, m.keys.Activate):
		if g.Len() > 0 {
			m.report(g.ClickRow(grid.RefByIndex(m.cursor), selection.Modifiers{}), m.cursor)
		}
	case key.Matches(msg, m.keys.Toggle):
		if g.Len() > 0 {
			m.report(g.ActivateCheckbox(grid.RefByIndex(m.cursor), msg.String()), m.cursor)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.report(g.ToggleSelectAll(), -1)
	case key.Matches(msg, m.keys.NextColumn):
		if headerCount > 0 {
			m.focus = (m.focus + 1) % headerCount
		}
	case key.Matches(msg, m.keys.PrevColumn):
		if headerCount > 0 {
			m.focus = (m.focus - 1 + headerCount) % headerCount
		}
	case key.Matches(msg, m.keys.Sort):
		if h, ok := m.focusedColumn(g); ok && h.Sortable {
			cfg := g.ToggleSort(h.Accessor)
			m.status = "sorted by " + cfg.String()
		}
	case key.Matches(msg, m.keys.Wider), key.Matches(msg, m.keys.Narrower):
		h, ok := m.focusedColumn(g)
		if !ok || !h.Resizable {
			break
		}
		delta := float64(resizeStep * m.cellPx)
		if key.Matches(msg, m.keys.Narrower) {
			delta = -delta
		}
		px, err := g.ResizeBy(m.ctx, h.Accessor, delta)
		if err != nil {
			m.status = err.Error()
			break
		}
		m.status = fmt.Sprintf("%s: %s", h.Accessor, px)
	case key.Matches(msg, m.keys.ResetWidths):
		if err := g.ResetWidths(m.ctx); err != nil {
			m.logger.Warn("failed to reset widths", zap.String("table", g.Name()), zap.Error(err))
			m.status = err.Error()
			break
		}
		m.status = "widths reset"
	case key.Matches(msg, m.keys.NextTable):
		m.switchTable(1)
	case key.Matches(msg, m.keys.PrevTable):
		m.switchTable(-1)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	g := m.Active()
	if g == nil || m.width <= 0 || m.height <= 0 {
		return m
	}

	if m.dragToken != "" {
		switch msg.Action {
		case tea.MouseActionMotion:
			if px, ok := g.MoveResize(m.ctx, m.dragToken, float64(msg.X*m.cellPx)); ok {
				acc, _ := g.Resizing()
				m.status = fmt.Sprintf("%s: %s", acc, px)
			}
			return m
		case tea.MouseActionRelease:
			token := m.dragToken
			m.dragToken = ""
			if acc, px, ok := g.EndResize(token); ok && px != "" {
				m.status = fmt.Sprintf("%s: %s", acc, px)
			}
			return m
		}
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= wheelStep
		m.clampScroll()
		return m
	case tea.MouseButtonWheelDown:
		m.scroll += wheelStep
		m.clampScroll()
		return m
	}
	if msg.Action != tea.MouseActionPress {
		return m
	}

	f := m.frame(g)
	switch {
	case msg.Y == 0:
		m.pressTab(msg.X)
	case msg.Y == 1:
		m.pressHeader(g, f, msg)
	case msg.Button == tea.MouseButtonRight:
		if i, _, ok := f.rowAt(msg.Y); ok {
			ev := grid.ContextMenuEvent{X: float64(msg.X * m.cellPx), Y: float64(msg.Y * m.cellPx)}
			if g.ContextMenu(grid.RefByIndex(i), ev) {
				m.status = fmt.Sprintf("context menu on row %d", i+1)
			}
		}
	case msg.Button == tea.MouseButtonLeft:
		i, line, ok := f.rowAt(msg.Y)
		if !ok || (f.unit > 1 && line == f.unit-1) {
			break
		}
		m.cursor = i
		if f.gutter > 0 && msg.X < f.gutter && line == 0 {
			m.report(g.ClickCheckbox(grid.RefByIndex(i)), i)
			break
		}
		mods := selection.Modifiers{Ctrl: msg.Ctrl, Meta: msg.Alt, Shift: msg.Shift}
		m.report(g.ClickRow(grid.RefByIndex(i), mods), i)
	}
	return m
}

// clampScroll bounds the scroll offset without following the cursor.
func (m *Model) clampScroll() {
	total := m.Active().Len()
	m.scroll = min(max(m.scroll, 0), max(total-m.visibleRows(), 0))
}

func (m *Model) pressHeader(g grid.Controller, f frame, msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	if f.gutter > 0 && msg.X < f.gutter {
		m.report(g.ToggleSelectAll(), -1)
		return
	}
	if m.cards() {
		return
	}
	i, border, ok := f.columnAt(msg.X)
	if !ok {
		return
	}
	h := f.vm.Headers[i]
	m.focus = i
	if border {
		if !h.Resizable {
			return
		}
		px, err := columns.ParsePx(h.Width)
		if err != nil {
			px = 0
		}
		token, err := g.BeginResize(h.Accessor, float64(msg.X*m.cellPx), px)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.dragToken = token
		return
	}
	if h.Sortable {
		cfg := g.ToggleSort(h.Accessor)
		m.status = "sorted by " + cfg.String()
	}
}
