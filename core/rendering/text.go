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

package rendering

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/retail360/commandcenter/core/views"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle    = cellStyle.Reverse(true)
	highlightedStyle = cellStyle.Bold(true)
	emptyStyle       = lipgloss.NewStyle().Faint(true).Padding(1, 2)
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle       = lipgloss.NewStyle().Faint(true)
)

// Checkbox returns the text form of a checkbox.
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// RenderText renders a grid view model as a plain-text table, or as stacked
// cards for the card layout.
func RenderText(vm views.GridViewModel) string {
	if !vm.Rendered {
		return ""
	}
	if vm.Layout == views.LayoutCards {
		return renderCards(vm)
	}

	headers := make([]string, 0, len(vm.Headers)+1)
	if vm.SelectionEnabled {
		headers = append(headers, Checkbox(vm.AllSelected))
	}
	for _, h := range vm.Headers {
		label := h.Label
		if ind := h.SortIndicator(); ind != "" {
			label += " " + ind
		}
		headers = append(headers, label)
	}

	data := make([][]string, 0, len(vm.Rows))
	for _, r := range vm.Rows {
		line := make([]string, 0, len(r.Cells)+1)
		if vm.SelectionEnabled {
			if r.Selectable {
				line = append(line, Checkbox(r.Selected))
			} else {
				line = append(line, "")
			}
		}
		for _, c := range r.Cells {
			line = append(line, c.Text)
		}
		data = append(data, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(vm.Rows) {
				return cellStyle
			}
			switch {
			case vm.Rows[row].Selected:
				return selectedStyle
			case vm.Rows[row].Highlighted:
				return highlightedStyle
			}
			return cellStyle
		})

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	if vm.Empty {
		sb.WriteString(emptyStyle.Render(vm.EmptyMessage))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%d rows, %d selected\n", vm.TotalRows, vm.SelectedCount)
	return sb.String()
}

func renderCards(vm views.GridViewModel) string {
	if vm.Empty {
		return emptyStyle.Render(vm.EmptyMessage) + "\n"
	}
	blocks := make([]string, 0, len(vm.Cards))
	for _, c := range vm.Cards {
		var sb strings.Builder
		if c.Selectable {
			sb.WriteString(Checkbox(c.Selected) + " ")
		}
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title))
		for _, f := range c.Fields {
			sb.WriteString("\n")
			sb.WriteString(labelStyle.Render(strings.ToUpper(f.Label)))
			sb.WriteString("  ")
			sb.WriteString(f.Value)
		}
		blocks = append(blocks, cardStyle.Render(sb.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}
