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

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the grid.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Activate    key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	NextColumn  key.Binding
	PrevColumn  key.Binding
	Sort        key.Binding
	Wider       key.Binding
	Narrower    key.Binding
	ResetWidths key.Binding
	NextTable   key.Binding
	PrevTable   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Activate:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "click row")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle row")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		NextColumn:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		PrevColumn:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev column")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Wider:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "widen column")),
		Narrower:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow column")),
		ResetWidths: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset widths")),
		NextTable:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next table")),
		PrevTable:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev table")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Toggle, k.SelectAll, k.Sort, k.Wider, k.Narrower, k.NextTable, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Activate, k.Toggle, k.SelectAll},
		{k.NextColumn, k.PrevColumn, k.Sort, k.Wider, k.Narrower, k.ResetWidths},
		{k.NextTable, k.PrevTable, k.Quit},
	}
}
