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

package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

type recorder struct {
	grid    *grid.Grid[rows.Record]
	clicked []rows.ID
	menus   []rows.ID
}

// newGrid builds a controlled grid: id 80px (10 cells), name 160px (20 cells)
// and rating 80px (10 cells), drawn after a 4 cell checkbox gutter.
func newGrid(t *testing.T, name string, n int) *recorder {
	t.Helper()
	names := []string{"Nova Print", "Atlas Media", "Beacon"}
	data := make([]rows.Record, n)
	for i := range data {
		label := fmt.Sprintf("Supplier %d", i+1)
		if i < len(names) {
			label = names[i]
		}
		data[i] = rows.Record{"id": i + 1, "name": label, "rating": float64(i%5) + 0.5}
	}
	r := &recorder{}
	g, err := grid.New(context.Background(), grid.Options[rows.Record]{
		TableName: name,
		Title:     strings.ToUpper(name[:1]) + name[1:],
		Columns: []columns.Column[rows.Record]{
			{Accessor: "id", Header: "ID", Width: "80px"},
			{Accessor: "name", Header: "Name", Width: "160px", Sortable: true},
			{Accessor: "rating", Header: "Rating", Width: "80px", Sortable: true},
		},
		Data:              data,
		EnableSelection:   true,
		OnRowClick:        func(row rows.Record) { r.clicked = append(r.clicked, row.RowID()) },
		OnRowContextMenu:  func(_ grid.ContextMenuEvent, row rows.Record) { r.menus = append(r.menus, row.RowID()) },
		OnSelectionChange: func(ids []rows.ID) { r.grid.SetSelected(ids) },
	}, nil, nil, nil)
	require.NoError(t, err)
	r.grid = g
	return r
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, grids ...grid.Controller) Model {
	t.Helper()
	return New(context.Background(), grids, Options{})
}

func TestNothingRendersUntilSized(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := newModel(t, r.grid)
	assert.Empty(t, m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.Empty(t, m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 10})
	out := stripANSI(m.View())
	assert.Contains(t, out, "Suppliers (3)")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Nova Print")
	assert.Contains(t, out, "[ ] 1")
	assert.Contains(t, out, "3 rows · 0 selected")
}

func TestEmptyGridShowsMessage(t *testing.T) {
	r := newGrid(t, "suppliers", 0)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})
	assert.Contains(t, stripANSI(m.View()), "No data found")
}

func TestHeaderPressSorts(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	m = update(t, m, press(16, 1))
	assert.Equal(t, "name:asc", r.grid.SortConfig().String())
	assert.Contains(t, stripANSI(m.View()), "Name ▲")

	m = update(t, m, press(16, 1))
	assert.Equal(t, "name:desc", r.grid.SortConfig().String())

	// The id column is not sortable.
	update(t, m, press(5, 1))
	assert.Equal(t, "name:desc", r.grid.SortConfig().String())
}

func TestRowPressesCarryModifiers(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	ctrl := press(20, 2)
	ctrl.Ctrl = true
	m = update(t, m, ctrl)
	assert.Equal(t, []rows.ID{rows.Int(1)}, []rows.ID(r.grid.Selected()))
	assert.Empty(t, r.clicked)

	shift := press(20, 4)
	shift.Shift = true
	m = update(t, m, shift)
	assert.ElementsMatch(t, []rows.ID{rows.Int(1), rows.Int(2), rows.Int(3)}, []rows.ID(r.grid.Selected()))
	assert.Equal(t, 2, m.Cursor())

	m = update(t, m, press(20, 3))
	assert.Equal(t, []rows.ID{rows.Int(2)}, r.clicked)
	assert.Equal(t, 3, r.grid.SelectedCount())
	assert.Equal(t, "row 2 clicked", m.Status())
}

func TestGutterPresses(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	m = update(t, m, press(1, 3))
	assert.Equal(t, []rows.ID{rows.Int(2)}, []rows.ID(r.grid.Selected()))
	assert.Empty(t, r.clicked)
	assert.Contains(t, stripANSI(m.View()), "[x] 2")

	m = update(t, m, press(1, 1))
	assert.Equal(t, 3, r.grid.SelectedCount())
	m = update(t, m, press(1, 1))
	assert.Equal(t, 0, r.grid.SelectedCount())
	assert.Contains(t, stripANSI(m.View()), "[ ] ID")
}

func TestBorderDragResizesColumn(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	// The name column spans cells 15-34; its border is cell 35.
	m = update(t, m, press(35, 1))
	acc, active := r.grid.Resizing()
	require.True(t, active)
	assert.Equal(t, "name", acc)
	assert.Equal(t, "", r.grid.SortConfig().String())

	m = update(t, m, tea.MouseMsg{X: 40, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.Equal(t, "200px", r.grid.Widths()["name"])

	m = update(t, m, tea.MouseMsg{X: 0, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.Equal(t, "88px", r.grid.Widths()["name"])

	m = update(t, m, tea.MouseMsg{X: 0, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	_, active = r.grid.Resizing()
	assert.False(t, active)
	assert.Equal(t, "name: 88px", m.Status())
}

func TestRightPressOpensContextMenu(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	m = update(t, m, tea.MouseMsg{X: 20, Y: 4, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	assert.Equal(t, []rows.ID{rows.Int(3)}, r.menus)
	assert.Equal(t, "context menu on row 3", m.Status())
	assert.Equal(t, 0, r.grid.SelectedCount())
}

func TestWheelScrollsWindow(t *testing.T) {
	r := newGrid(t, "suppliers", 10)
	// Three body lines.
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 7})
	assert.NotContains(t, stripANSI(m.View()), "Supplier 4")

	m = update(t, m, tea.MouseMsg{X: 20, Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Contains(t, stripANSI(m.View()), "Supplier 4")

	m = update(t, m, press(20, 2))
	assert.Equal(t, []rows.ID{rows.Int(4)}, r.clicked)

	for range 5 {
		m = update(t, m, tea.MouseMsg{X: 20, Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	assert.Contains(t, stripANSI(m.View()), "Supplier 10")
}

func TestKeyboard(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 100, Height: 10})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []rows.ID{rows.Int(2)}, r.clicked)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []rows.ID{rows.Int(2)}, []rows.ID(r.grid.Selected()))

	m = update(t, m, runes("a"))
	assert.Equal(t, 3, r.grid.SelectedCount())
	m = update(t, m, runes("a"))
	assert.Equal(t, 0, r.grid.SelectedCount())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, runes("s"))
	assert.Equal(t, "name:asc", r.grid.SortConfig().String())
	assert.Equal(t, "sorted by name:asc", m.Status())

	m = update(t, m, runes("+"))
	assert.Equal(t, "176px", r.grid.Widths()["name"])
	m = update(t, m, runes("-"))
	m = update(t, m, runes("-"))
	assert.Equal(t, "144px", r.grid.Widths()["name"])

	m = update(t, m, runes("R"))
	assert.Equal(t, "160px", r.grid.Widths()["name"])

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, runes("s"))
	assert.Equal(t, "name:asc", r.grid.SortConfig().String(), "id column is not sortable")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 2, m.Cursor())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Cursor())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNarrowTerminalStacksCards(t *testing.T) {
	r := newGrid(t, "suppliers", 3)
	m := update(t, newModel(t, r.grid), tea.WindowSizeMsg{Width: 40, Height: 20})

	out := stripANSI(m.View())
	assert.Contains(t, out, "[ ] Nova Print")
	assert.Contains(t, out, "Rating: 0.5")
	assert.NotContains(t, out, "│")

	// Cards are three lines tall: title, rating, blank.
	m = update(t, m, press(10, 5))
	assert.Equal(t, []rows.ID{rows.Int(2)}, r.clicked)

	m = update(t, m, press(1, 8))
	assert.Equal(t, []rows.ID{rows.Int(3)}, []rows.ID(r.grid.Selected()))

	update(t, m, press(10, 4))
	assert.Len(t, r.clicked, 1, "the blank separator line is inert")
}

func TestSwitchingTables(t *testing.T) {
	a := newGrid(t, "suppliers", 3)
	b := newGrid(t, "quotes", 2)
	m := update(t, newModel(t, a.grid, b.grid), tea.WindowSizeMsg{Width: 100, Height: 10})
	assert.Equal(t, "suppliers", m.Active().Name())

	m = update(t, m, runes("]"))
	assert.Equal(t, "quotes", m.Active().Name())
	assert.Contains(t, stripANSI(m.View()), "2 rows")

	m = update(t, m, runes("]"))
	assert.Equal(t, "suppliers", m.Active().Name())

	// "Suppliers (3)" plus padding spans cells 0-14.
	m = update(t, m, press(16, 0))
	assert.Equal(t, "quotes", m.Active().Name())
	m = update(t, m, press(3, 0))
	assert.Equal(t, "suppliers", m.Active().Name())
}
