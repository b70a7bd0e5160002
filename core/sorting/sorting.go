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

// Package sorting derives the displayed row order of a grid from a single
// sort key and direction.
package sorting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/retail360/commandcenter/core/rows"
)

// Direction is the sort direction of the active key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Config is the sort state of a grid. An empty Key means the caller-supplied
// order is shown unchanged.
type Config struct {
	Key       string
	Direction Direction
}

// Active reports whether a sort key is set.
func (c Config) Active() bool {
	return c.Key != ""
}

// Toggle returns the config after a click on the header of key: the same
// ascending key flips to descending, anything else starts ascending.
func (c Config) Toggle(key string) Config {
	direction := Ascending
	if c.Key == key && c.Direction == Ascending {
		direction = Descending
	}
	return Config{Key: key, Direction: direction}
}

// DirectionFor returns the direction shown on the header of key, or "" when
// key is not the active sort key.
func (c Config) DirectionFor(key string) Direction {
	if !c.Active() || c.Key != key {
		return ""
	}
	return c.Direction
}

// String formats the config as "key:dir"; the inactive config is "".
func (c Config) String() string {
	if !c.Active() {
		return ""
	}
	return c.Key + ":" + string(c.Direction)
}

// ParseConfig parses "key", "key:asc" or "key:desc".
func ParseConfig(s string) (Config, error) {
	if s == "" {
		return Config{}, nil
	}
	key, dir, found := strings.Cut(s, ":")
	if key == "" {
		return Config{}, fmt.Errorf("sort %q: missing key", s)
	}
	if !found || dir == "" {
		return Config{Key: key, Direction: Ascending}, nil
	}
	switch Direction(dir) {
	case Ascending, Descending:
		return Config{Key: key, Direction: Direction(dir)}, nil
	}
	return Config{}, fmt.Errorf("sort %q: unknown direction %q", s, dir)
}

// Sorter compares row values. Strings are compared with the collation rules
// of its locale.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a sorter for the given BCP 47 locale. An empty locale
// uses the root collation.
func NewSorter(locale string) (*Sorter, error) {
	if locale == "" {
		return &Sorter{tag: language.Und}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid sort locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

// Locale returns the collation locale.
func (s *Sorter) Locale() language.Tag {
	if s == nil {
		return language.Und
	}
	return s.tag
}

// Sort returns data ordered by cfg. When cfg has no key the input slice is
// returned as is. Otherwise a sorted copy is returned and data is untouched.
//
// The sort is stable: rows whose keys compare equal keep their relative input
// order in both directions. Values that are neither strings nor numbers
// (nil, bool, structs) compare as equal to each other and to numbers, so such
// columns keep input order. Next to strings they collate by their text form.
func Sort[T rows.Row](s *Sorter, data []T, cfg Config) []T {
	if !cfg.Active() {
		return data
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(s.Locale())

	sorted := make([]T, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := Compare(c, sorted[i].Field(cfg.Key), sorted[j].Field(cfg.Key))
		if cfg.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

// Compare compares two field values. When either side is a string both
// collate by their text form, so Compare(a, b) == -Compare(b, a). Two numbers
// subtract and any other pair compares equal.
func Compare(c *collate.Collator, a, b any) int {
	_, as := a.(string)
	_, bs := b.(string)
	if as || bs {
		return c.CompareString(textOf(a), textOf(b))
	}
	af, ok := toFloat64(a)
	if !ok {
		return 0
	}
	bf, ok := toFloat64(b)
	if !ok {
		return 0
	}
	return compareFloat64s(af, bf)
}

// compareFloat64s returns the sign of a - b. NaN differences compare equal.
func compareFloat64s(a, b float64) int {
	d := a - b
	switch {
	case math.IsNaN(d):
		return 0
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
