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

package columns

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/retail360/commandcenter/core/rows"
)

// DefaultWidth is used for columns that have neither a stored width nor a hint.
const DefaultWidth = "150px"

// Resize limits. The minimum width of a column grows with its header text so
// narrow numeric columns never collapse below their own label.
const (
	MinColumnWidth  = 80
	PxPerHeaderRune = 10
	HeaderPadding   = 48
)

var (
	ErrEmptyAccessor     = errors.New("column accessor is empty")
	ErrDuplicateAccessor = errors.New("duplicate column accessor")
)

// RenderContext is the extra data handed to cell renderers.
type RenderContext struct {
	HighlightedID rows.ID
	Selected      bool
}

// Column describes one rendering slot of a grid over rows of type T.
type Column[T rows.Row] struct {
	// Accessor is the key into the row. It must not contain any of the
	// following characters: & = : , and must be unique within a column list
	// since it also keys stored widths and sort targets.
	Accessor string
	Header   string
	// HeaderFunc renders a header node instead of the plain label. Stacked
	// card layouts show an empty label for such columns.
	HeaderFunc func() string
	Width      string // initial size hint, e.g. "180px"
	Sortable   bool
	Render     func(row T, ctx RenderContext) string
	ClassName  string
}

// HeaderText returns the text shown in the header cell.
func (c Column[T]) HeaderText() string {
	if c.HeaderFunc != nil {
		return c.HeaderFunc()
	}
	return c.Header
}

// HasStringHeader reports whether the header is a plain label.
func (c Column[T]) HasStringHeader() bool {
	return c.HeaderFunc == nil
}

// Hint is the width hint of a column, detached from the row type.
type Hint struct {
	Accessor string
	Width    string
}

// Hints returns the width hints of cols in order. Columns without an
// accessor are skipped since their width cannot be stored.
func Hints[T rows.Row](cols []Column[T]) []Hint {
	hints := make([]Hint, 0, len(cols))
	for _, c := range cols {
		if c.Accessor == "" {
			continue
		}
		hints = append(hints, Hint{Accessor: c.Accessor, Width: c.Width})
	}
	return hints
}

// Accessors returns the accessors of cols in order.
func Accessors[T rows.Row](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Accessor
	}
	return out
}

// Find returns the column with the given accessor.
func Find[T rows.Row](cols []Column[T], accessor string) (Column[T], bool) {
	if accessor == "" {
		return Column[T]{}, false
	}
	for _, c := range cols {
		if c.Accessor == accessor {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Validate checks that every accessor is present and unique.
func Validate[T rows.Row](cols []Column[T]) error {
	var errs []error
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Accessor == "" {
			errs = append(errs, fmt.Errorf("column %d: %w", i, ErrEmptyAccessor))
			continue
		}
		if prev, ok := seen[c.Accessor]; ok {
			errs = append(errs, fmt.Errorf("columns %d and %d share %q: %w", prev, i, c.Accessor, ErrDuplicateAccessor))
			continue
		}
		seen[c.Accessor] = i
	}
	return errors.Join(errs...)
}

// MinWidth returns the smallest width a column may be resized to, derived
// from its header text.
func MinWidth(headerText string) float64 {
	return math.Max(MinColumnWidth, float64(utf8.RuneCountInString(headerText)*PxPerHeaderRune+HeaderPadding))
}

// FormatPx formats a pixel width as a CSS length ("180px").
func FormatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// ParsePx parses a CSS pixel length. Bare numbers are accepted as pixels.
func ParsePx(s string) (float64, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "px")
	px, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pixel width %q: %w", s, err)
	}
	if px < 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, fmt.Errorf("invalid pixel width %q", s)
	}
	return px, nil
}

// CellValue returns the rendered content of a cell: the column's render
// function when present, otherwise the formatted field value.
func CellValue[T rows.Row](row T, col Column[T], ctx RenderContext) string {
	if col.Render != nil {
		return col.Render(row, ctx)
	}
	if col.Accessor == "" {
		return ""
	}
	return FormatValue(row.Field(col.Accessor))
}

// FormatValue formats a raw field value for display. nil renders empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return FormatFloat64(x)
	case float32:
		return FormatFloat64(float64(x))
	case rows.ID:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat64 formats a float in plain decimal notation without trailing zeros.
func FormatFloat64(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "+Inf"
	}
	if math.IsInf(v, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
