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

import "github.com/charmbracelet/lipgloss"

// Palette of the terminal grid. Mirrors the colors of the HTML surface.
var (
	Foreground  = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#f2f2f2"}
	Muted       = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#94a3b8"}
	Accent      = lipgloss.Color("#38bdf8")
	Highlight   = lipgloss.Color("#FFC107")
	SelectionBg = lipgloss.AdaptiveColor{Light: "#e1e4e8", Dark: "#1e2a3d"}
)

// Styles holds the lipgloss styles of the grid.
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Header    lipgloss.Style
	Focused   lipgloss.Style
	Border    lipgloss.Style
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	CardTitle lipgloss.Style
	Label     lipgloss.Style
	Footer    lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultStyles returns the standard grid styles.
func DefaultStyles() Styles {
	return Styles{
		Tab:       lipgloss.NewStyle().Foreground(Muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(Accent).Bold(true).Padding(0, 1),
		Header:    lipgloss.NewStyle().Foreground(Foreground).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(Accent).Bold(true).Underline(true),
		Border:    lipgloss.NewStyle().Foreground(Muted),
		Row:       lipgloss.NewStyle().Foreground(Foreground),
		Cursor:    lipgloss.NewStyle().Foreground(Foreground).Reverse(true),
		Selected:  lipgloss.NewStyle().Foreground(Foreground).Background(SelectionBg),
		Highlight: lipgloss.NewStyle().Foreground(Highlight).Bold(true),
		CardTitle: lipgloss.NewStyle().Foreground(Foreground).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(Muted),
		Footer:    lipgloss.NewStyle().Foreground(Muted),
		Empty:     lipgloss.NewStyle().Foreground(Muted).Italic(true),
	}
}
