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
	"github.com/google/safehtml"
	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
)

// Card is the stacked presentation of a row used on narrow viewports.
type Card struct {
	Index       int
	ID          rows.ID
	Ref         string
	Title       string
	Fields      []CardField
	Selected    bool
	Highlighted bool
	Selectable  bool // Checkbox shown; only rows with an id get one
	Action      safehtml.URL
}

// CardField is one label/value pair on a card.
type CardField struct {
	Label string
	Value string
}

// CardTitleColumn returns the index of the column promoted to card title:
// the first column, or the second when the first is the id column.
func CardTitleColumn[T rows.Row](cols []columns.Column[T]) int {
	if len(cols) > 0 && cols[0].Accessor == "id" {
		return 1
	}
	return 0
}

// CardFieldColumns returns the columns shown as card fields: the columns
// other than id, skipping the first, bounded by the length of the full
// column list minus one. The last column is dropped only when no id column
// was removed.
func CardFieldColumns[T rows.Row](cols []columns.Column[T]) []columns.Column[T] {
	withoutID := make([]columns.Column[T], 0, len(cols))
	for _, c := range cols {
		if c.Accessor != "id" {
			withoutID = append(withoutID, c)
		}
	}
	end := cardFieldEnd(len(cols), len(withoutID))
	if end <= 1 {
		return nil
	}
	return withoutID[1:end]
}

func cardFieldEnd(total, withoutID int) int {
	return min(total-1, withoutID)
}

// CardHeight returns the number of lines a card occupies in the terminal:
// the title line, one line per field and a blank separator.
func CardHeight(headers []HeaderCell) int {
	withoutID := 0
	for _, h := range headers {
		if h.Accessor != "id" {
			withoutID++
		}
	}
	fields := 0
	if end := cardFieldEnd(len(headers), withoutID); end > 1 {
		fields = end - 1
	}
	return 2 + fields
}

func buildCards[T rows.Row](in Input[T], window VisibleRange) []Card {
	titleIdx := CardTitleColumn(in.Columns)
	fieldCols := CardFieldColumns(in.Columns)

	cards := make([]Card, 0, window.Len())
	for i := window.Start; i < window.End; i++ {
		row := in.Sorted[i]
		id := row.RowID()
		selected := id.Valid() && in.Selected.Contains(id)
		ctx := columns.RenderContext{HighlightedID: in.HighlightedID, Selected: selected}

		card := Card{
			Index:       i,
			ID:          id,
			Ref:         id.Text(),
			Selected:    selected,
			Highlighted: id.Valid() && id == in.HighlightedID,
			Selectable:  in.SelectionEnabled && id.Valid(),
			Action:      RowAction(id, i),
		}
		if titleIdx < len(in.Columns) {
			card.Title = columns.CellValue(row, in.Columns[titleIdx], ctx)
		}
		for _, c := range fieldCols {
			label := ""
			if c.HasStringHeader() {
				label = c.Header
			}
			card.Fields = append(card.Fields, CardField{Label: label, Value: columns.CellValue(row, c, ctx)})
		}
		cards = append(cards, card)
	}
	return cards
}
