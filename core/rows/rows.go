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

// Package rows defines the identity of grid rows. Rows themselves are owned
// by the caller; the grid only reads them through the Row interface.
package rows

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells which variant an ID holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindString
)

// ID identifies a row. It holds either an integer or a string; the zero value
// means the row has no identifier. IDs are comparable and compare strictly:
// Int(1) and String("1") are different identifiers.
type ID struct {
	kind Kind
	n    int64
	s    string
}

// None is the missing identifier.
var None = ID{}

// Int returns an integer identifier.
func Int(n int64) ID {
	return ID{kind: KindInt, n: n}
}

// String returns a string identifier.
func String(s string) ID {
	return ID{kind: KindString, s: s}
}

// Kind returns the variant held by the identifier.
func (id ID) Kind() Kind {
	return id.kind
}

// Valid reports whether the identifier can be used for selection and range
// lookups. Empty strings and the integer 0 count as missing.
func (id ID) Valid() bool {
	switch id.kind {
	case KindInt:
		return id.n != 0
	case KindString:
		return id.s != ""
	default:
		return false
	}
}

// Int64 returns the integer value and whether the ID holds one.
func (id ID) Int64() (int64, bool) {
	return id.n, id.kind == KindInt
}

// Str returns the string value and whether the ID holds one.
func (id ID) Str() (string, bool) {
	return id.s, id.kind == KindString
}

// Value returns the identifier as a plain Go value (int64, string or nil).
func (id ID) Value() any {
	switch id.kind {
	case KindInt:
		return id.n
	case KindString:
		return id.s
	default:
		return nil
	}
}

// String returns the display form of the identifier.
func (id ID) String() string {
	switch id.kind {
	case KindInt:
		return strconv.FormatInt(id.n, 10)
	case KindString:
		return id.s
	default:
		return ""
	}
}

// Text returns the typed text form ("i:12", "s:abc") used in URLs and JSON.
// The missing identifier encodes as the empty string.
func (id ID) Text() string {
	switch id.kind {
	case KindInt:
		return "i:" + strconv.FormatInt(id.n, 10)
	case KindString:
		return "s:" + id.s
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse decodes the typed text form. Bare digits are accepted as integers and
// any other untyped text as a string, so hand-written URLs keep working.
func Parse(text string) (ID, error) {
	switch {
	case text == "":
		return None, nil
	case strings.HasPrefix(text, "i:"):
		n, err := strconv.ParseInt(text[2:], 10, 64)
		if err != nil {
			return None, fmt.Errorf("invalid integer id %q: %w", text, err)
		}
		return Int(n), nil
	case strings.HasPrefix(text, "s:"):
		return String(text[2:]), nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(n), nil
	}
	return String(text), nil
}

// FromValue converts a decoded value (YAML, JSON, map field) to an ID.
// Unsupported types yield None.
func FromValue(v any) ID {
	switch x := v.(type) {
	case ID:
		return x
	case string:
		return String(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Int(int64(x))
	case float64:
		if x == float64(int64(x)) {
			return Int(int64(x))
		}
		return String(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return None
	}
}

// Row is the only structural requirement the grid places on caller records.
type Row interface {
	RowID() ID
	// Field returns the value stored under accessor, or nil.
	Field(accessor string) any
}

// Record is a map-backed row. The "id" field, when present, is its identifier.
type Record map[string]any

// RowID implements Row.
func (r Record) RowID() ID {
	return FromValue(r["id"])
}

// Field implements Row.
func (r Record) Field(accessor string) any {
	return r[accessor]
}

// IDs returns the valid identifiers of rs in order.
func IDs[T Row](rs []T) []ID {
	ids := make([]ID, 0, len(rs))
	for _, r := range rs {
		if id := r.RowID(); id.Valid() {
			ids = append(ids, id)
		}
	}
	return ids
}

// IndexOf returns the position of the row with the given id, or -1.
func IndexOf[T Row](rs []T, id ID) int {
	if !id.Valid() {
		return -1
	}
	for i, r := range rs {
		if r.RowID() == id {
			return i
		}
	}
	return -1
}
