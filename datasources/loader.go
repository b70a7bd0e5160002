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

// Package datasources loads the dataset files behind the grids and reloads
// them when they change on disk.
package datasources

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/rows"
	"gopkg.in/yaml.v3"
)

// ColumnType represents the data type inferred for a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
	TypeBool
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Table is an untyped dataset: ordered column names and map-backed rows.
type Table struct {
	Columns []string
	Types   []ColumnType
	Records []rows.Record
}

// GridColumns returns sortable grid columns for every column of the table.
// The id column gets a narrow width hint; the others flex.
func (t *Table) GridColumns() []columns.Column[rows.Record] {
	cols := make([]columns.Column[rows.Record], len(t.Columns))
	for i, name := range t.Columns {
		c := columns.Column[rows.Record]{Accessor: name, Header: headerLabel(name), Sortable: true}
		if name == "id" {
			c.Width = "80px"
		}
		cols[i] = c
	}
	return cols
}

func headerLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		if w == "id" {
			words[i] = "ID"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DecodeYAML decodes a YAML (or JSON) list into typed rows. Unknown fields
// are rejected. An empty document decodes to no rows.
func DecodeYAML[T any](data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out []T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return out, nil
}

// DecodeTable decodes a dataset file into a Table. The format follows the
// file extension: .csv and .tsv are delimited text, anything else is YAML.
func DecodeTable(path string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(bytes.NewReader(data), CSVOptions{})
	case ".tsv":
		return ReadCSV(bytes.NewReader(data), CSVOptions{Delimiter: '\t'})
	}
	records, err := DecodeYAML[map[string]any](data)
	if err != nil {
		return nil, err
	}
	t := &Table{Records: make([]rows.Record, len(records))}
	seen := make(map[string]bool)
	for i, r := range records {
		t.Records[i] = rows.Record(r)
		for k := range r {
			if !seen[k] {
				seen[k] = true
				t.Columns = append(t.Columns, k)
			}
		}
	}
	slices.SortFunc(t.Columns, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "id":
			return -1
		case b == "id":
			return 1
		}
		return strings.Compare(a, b)
	})
	t.Types = make([]ColumnType, len(t.Columns))
	for i, name := range t.Columns {
		t.Types[i] = valueType(t.Records, name)
	}
	return t, nil
}

func valueType(records []rows.Record, name string) ColumnType {
	typ := ColumnType(-1)
	for _, r := range records {
		var got ColumnType
		switch r[name].(type) {
		case nil:
			continue
		case int, int64:
			got = TypeInt64
		case float64:
			got = TypeFloat64
		case bool:
			got = TypeBool
		default:
			return TypeString
		}
		switch {
		case typ == -1:
			typ = got
		case typ == TypeInt64 && got == TypeFloat64, typ == TypeFloat64 && got == TypeInt64:
			typ = TypeFloat64
		case typ != got:
			return TypeString
		}
	}
	if typ == -1 {
		return TypeString
	}
	return typ
}
