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
	"net/url"
	"testing"

	"github.com/retail360/commandcenter/core/rows"
	"github.com/retail360/commandcenter/core/selection"
)

func TestNewQuery(t *testing.T) {
	u, _ := url.Parse("/table?table=campaigns&sort=name:desc&limit=10&layout=cards&virtual=true&height=480&scroll=96")
	q := NewQuery(u)

	if q.Path != "/table" || q.Table != "campaigns" {
		t.Errorf("Expected /table campaigns, got %s %s", q.Path, q.Table)
	}
	if q.Sort != "name:desc" {
		t.Errorf("Expected sort name:desc, got %q", q.Sort)
	}
	if q.Limit != 10 || q.Layout != "cards" || !q.Virtual || q.Height != 480 || q.Scroll != 96 {
		t.Errorf("Unexpected query state %+v", q)
	}
}

func TestNewQueryIgnoresInvalidNumbers(t *testing.T) {
	u, _ := url.Parse("/table?table=quotes&limit=-3&scroll=abc&virtual=maybe")
	q := NewQuery(u)
	if q.Limit != DefaultLimit || q.Scroll != 0 || q.Virtual {
		t.Errorf("Expected defaults, got %+v", q)
	}
}

func TestURLRoundTrip(t *testing.T) {
	// Test 1: Every parameter survives
	t.Run("Full state", func(t *testing.T) {
		u, _ := url.Parse("/table?table=suppliers&sort=rating:asc&virtual=true&width=900&height=300&scroll=40&layout=cards&limit=5")
		q := NewQuery(u)
		parsed, _ := url.Parse(q.ToURL())
		again := NewQuery(parsed)
		if *again != *q {
			t.Errorf("Expected %+v, got %+v", q, again)
		}
	})

	// Test 2: Scroll is dropped outside virtual mode
	t.Run("Plain mode drops viewport", func(t *testing.T) {
		q := &Query{Path: "/table", Table: "quotes", Scroll: 40, Height: 300}
		if got := q.ToURL(); got != "/table?table=quotes" {
			t.Errorf("Expected /table?table=quotes, got %s", got)
		}
	})

	// Test 3: Builders do not mutate the receiver
	t.Run("Builders clone", func(t *testing.T) {
		q := &Query{Path: "/table", Table: "quotes", Virtual: true, Scroll: 100}
		next, _ := url.Parse(q.WithTable("campaigns").String())
		if got := NewQuery(next); got.Table != "campaigns" || got.Scroll != 0 {
			t.Errorf("Expected campaigns without scroll, got %+v", got)
		}
		if q.Table != "quotes" || q.Scroll != 100 {
			t.Errorf("Receiver was modified: %+v", q)
		}
		scrolled, _ := url.Parse(q.WithScroll(-5).String())
		if NewQuery(scrolled).Scroll != 0 {
			t.Errorf("Expected negative scroll to clamp to 0")
		}
	})
}

func TestParseAction(t *testing.T) {
	values := url.Values{
		"table":   {"campaigns"},
		"row":     {"i:42"},
		"index":   {"3"},
		"ctrl":    {"true"},
		"shift":   {"1"},
		"col":     {"budget"},
		"x":       {"120.5"},
		"width":   {"180"},
		"phase":   {"MOVE"},
		"key":     {"Enter"},
		"session": {"5f0c"},
	}
	a, err := ParseAction(values)
	if err != nil {
		t.Fatalf("ParseAction failed: %v", err)
	}
	if a.Row != rows.Int(42) || a.Index != 3 {
		t.Errorf("Expected row i:42 at 3, got %v at %d", a.Row, a.Index)
	}
	if a.Mods != (selection.Modifiers{Ctrl: true, Shift: true}) {
		t.Errorf("Unexpected modifiers %+v", a.Mods)
	}
	if a.Column != "budget" || a.X != 120.5 || a.Width != 180 || a.Phase != "move" || a.Key != "Enter" || a.Session != "5f0c" {
		t.Errorf("Unexpected action %+v", a)
	}
}

func TestParseActionErrors(t *testing.T) {
	tests := []url.Values{
		{"row": {"i:nope"}},
		{"index": {"-1"}},
		{"ctrl": {"sometimes"}},
		{"x": {"left"}},
	}
	for _, values := range tests {
		if _, err := ParseAction(values); err == nil {
			t.Errorf("Expected error for %v", values)
		}
	}

	a, err := ParseAction(url.Values{})
	if err != nil {
		t.Fatalf("Empty action failed: %v", err)
	}
	if a.Row.Valid() || a.Index != -1 {
		t.Errorf("Expected no row reference, got %+v", a)
	}
}
