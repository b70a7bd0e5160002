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

package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/selection"
)

// DefaultLimit is the number of rows shown by the plain grid when the URL
// does not say otherwise.
const DefaultLimit = 0

// Query represents the parsed state of a grid view URL
type Query struct {
	// Base path (e.g., "/table")
	Path string

	// Core parameters
	Table   string // The table being viewed
	Sort    string // Sort configuration ("name:asc"), empty when unsorted
	Limit   int    // Number of rows to display (0 = show all)
	Layout  string // "table" or "cards"
	Virtual bool   // Render only the rows in the viewport

	// Viewport of the virtualized body, as measured by the page
	Scroll int // Scroll offset in pixels
	Width  int // Viewport width in pixels
	Height int // Viewport height in pixels
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:  u.Path,
		Limit: DefaultLimit,
	}

	q := u.Query()

	state.Table = q.Get("table")
	state.Sort = q.Get("sort")
	state.Layout = q.Get("layout")

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 0 {
		state.Limit = limit
	}
	if scroll, err := strconv.Atoi(q.Get("scroll")); err == nil && scroll >= 0 {
		state.Scroll = scroll
	}
	if width, err := strconv.Atoi(q.Get("width")); err == nil && width >= 0 {
		state.Width = width
	}
	if height, err := strconv.Atoi(q.Get("height")); err == nil && height >= 0 {
		state.Height = height
	}
	if v, err := strconv.ParseBool(q.Get("virtual")); err == nil {
		state.Virtual = v
	}

	return state
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if s.Sort != "" {
		q.Set("sort", s.Sort)
	}
	if s.Layout != "" {
		q.Set("layout", s.Layout)
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.Virtual {
		q.Set("virtual", "true")
		if s.Width > 0 {
			q.Set("width", strconv.Itoa(s.Width))
		}
		if s.Height > 0 {
			q.Set("height", strconv.Itoa(s.Height))
		}
		if s.Scroll > 0 {
			q.Set("scroll", strconv.Itoa(s.Scroll))
		}
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithTable returns a URL viewing another table with the same presentation
func (s *Query) WithTable(table string) safehtml.URL {
	newState := s.Clone()
	newState.Table = table
	newState.Sort = ""
	newState.Scroll = 0
	return newState.ToSafeURL()
}

// WithLimit returns a URL with a different row limit
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}

// WithLayout returns a URL with a different layout
func (s *Query) WithLayout(layout string) safehtml.URL {
	newState := s.Clone()
	newState.Layout = layout
	return newState.ToSafeURL()
}

// WithVirtual returns a URL switching virtualization on or off
func (s *Query) WithVirtual(virtual bool) safehtml.URL {
	newState := s.Clone()
	newState.Virtual = virtual
	newState.Scroll = 0
	return newState.ToSafeURL()
}

// WithScroll returns a URL for the virtual body scrolled to offset
func (s *Query) WithScroll(offset int) safehtml.URL {
	newState := s.Clone()
	newState.Scroll = max(offset, 0)
	return newState.ToSafeURL()
}

// WithSort returns a URL sorted by cfg ("key:dir")
func (s *Query) WithSort(cfg string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = cfg
	return newState.ToSafeURL()
}

// Action is one interaction posted by the page script.
type Action struct {
	Table   string
	Row     rows.ID
	Index   int // -1 when absent
	Mods    selection.Modifiers
	Column  string
	X, Y    float64
	Width   float64 // Rendered header width at drag start
	Text    string  // Header text
	Key     string  // Keyboard key for activations
	Phase   string  // Resize phase: down, move, up or cancel
	Session string  // Resize session token returned by the down phase
}

// ParseAction decodes an interaction from form values.
func ParseAction(values url.Values) (Action, error) {
	a := Action{
		Table:   values.Get("table"),
		Index:   -1,
		Column:  values.Get("col"),
		Text:    values.Get("text"),
		Key:     values.Get("key"),
		Phase:   strings.ToLower(values.Get("phase")),
		Session: values.Get("session"),
	}

	id, err := rows.Parse(values.Get("row"))
	if err != nil {
		return a, err
	}
	a.Row = id

	if s := values.Get("index"); s != "" {
		i, err := strconv.Atoi(s)
		if err != nil || i < 0 {
			return a, fmt.Errorf("invalid row index %q", s)
		}
		a.Index = i
	}

	for name, dst := range map[string]*bool{"ctrl": &a.Mods.Ctrl, "meta": &a.Mods.Meta, "shift": &a.Mods.Shift} {
		if s := values.Get(name); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return a, fmt.Errorf("invalid %s flag %q: %w", name, s, err)
			}
			*dst = b
		}
	}

	for name, dst := range map[string]*float64{"x": &a.X, "y": &a.Y, "width": &a.Width} {
		if s := values.Get(name); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return a, fmt.Errorf("invalid %s %q: %w", name, s, err)
			}
			*dst = f
		}
	}
	return a, nil
}
