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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/retail360/commandcenter/core/rendering"
	"github.com/retail360/commandcenter/core/views"
)

// View implements tea.Model. Nothing is drawn until the terminal size is
// known.
func (m Model) View() string {
	g := m.Active()
	if g == nil || m.width <= 0 || m.height <= 0 {
		return ""
	}
	f := m.frame(g)
	if !f.vm.Rendered {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTabs(), m.renderHeader(f))
	lines = append(lines, m.renderBody(f)...)
	status := fmt.Sprintf("%d rows · %d selected", f.vm.TotalRows, f.vm.SelectedCount)
	if m.status != "" {
		status += " · " + m.status
	}
	lines = append(lines, m.styles.Footer.Render(fit(status, m.width)), m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) tabLabels() []string {
	labels := make([]string, len(m.grids))
	for i, g := range m.grids {
		labels[i] = fmt.Sprintf("%s (%d)", g.Title(), g.Len())
	}
	return labels
}

func (m Model) renderTabs() string {
	var b strings.Builder
	for i, label := range m.tabLabels() {
		if i == m.active {
			b.WriteString(m.styles.ActiveTab.Render(label))
		} else {
			b.WriteString(m.styles.Tab.Render(label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

// pressTab activates the tab under x. Tabs are padded by one cell on each
// side.
func (m *Model) pressTab(x int) {
	start := 0
	for i, label := range m.tabLabels() {
		end := start + runewidth.StringWidth(label) + 2
		if x >= start && x < end {
			if i != m.active {
				m.switchTable(i - m.active)
			}
			return
		}
		start = end
	}
}

func (m Model) renderHeader(f frame) string {
	var b strings.Builder
	if f.gutter > 0 {
		b.WriteString(m.styles.Header.Render(rendering.Checkbox(f.vm.AllSelected) + " "))
	}
	if m.cards() {
		label := f.vm.Title
		if f.vm.SortKey != "" {
			label = fmt.Sprintf("sorted by %s %s", f.vm.SortKey, f.vm.SortDirection)
		}
		b.WriteString(m.styles.Header.Render(label))
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	sep := m.styles.Border.Render("│")
	for i, h := range f.vm.Headers {
		label := h.Label
		if ind := h.SortIndicator(); ind != "" {
			label += " " + ind
		}
		style := m.styles.Header
		if i == m.focus {
			style = m.styles.Focused
		}
		b.WriteString(style.Render(fit(label, f.widths[i])))
		b.WriteString(sep)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m Model) renderBody(f frame) []string {
	height := m.bodyHeight()
	lines := make([]string, 0, height)
	switch {
	case f.vm.Empty:
		lines = append(lines, m.styles.Empty.Render(fit(f.vm.EmptyMessage, m.width)))
	case m.cards():
		for _, c := range f.vm.Cards {
			lines = append(lines, m.renderCard(f, c)...)
		}
	default:
		for _, r := range f.vm.Rows {
			lines = append(lines, m.renderRow(f, r))
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func (m Model) rowStyle(index int, selected, highlighted bool) lipgloss.Style {
	switch {
	case index == m.cursor:
		return m.styles.Cursor
	case highlighted:
		return m.styles.Highlight
	case selected:
		return m.styles.Selected
	}
	return m.styles.Row
}

func (m Model) gutter(f frame, selectable, selected bool) string {
	switch {
	case f.gutter == 0:
		return ""
	case selectable:
		return rendering.Checkbox(selected) + " "
	}
	return strings.Repeat(" ", f.gutter)
}

func (m Model) renderRow(f frame, r views.RowViewModel) string {
	var b strings.Builder
	b.WriteString(m.gutter(f, r.Selectable, r.Selected))
	for i, c := range r.Cells {
		if i >= len(f.widths) {
			break
		}
		b.WriteString(fit(c.Text, f.widths[i]))
		b.WriteString("│")
	}
	line := runewidth.Truncate(b.String(), m.width, "")
	return m.rowStyle(r.Index, r.Selected, r.Highlighted).Render(line)
}

func (m Model) renderCard(f frame, c views.Card) []string {
	lines := make([]string, 0, f.unit)
	title := m.gutter(f, c.Selectable, c.Selected) + c.Title
	lines = append(lines, m.rowStyle(c.Index, c.Selected, c.Highlighted).Render(fit(title, m.width)))
	indent := strings.Repeat(" ", gutterWidth)
	for _, field := range c.Fields {
		text := field.Value
		if field.Label != "" {
			text = m.styles.Label.Render(field.Label+":") + " " + field.Value
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(m.width).Render(indent+text))
	}
	return append(lines, "")
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}
