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

package datasources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retail360/commandcenter/core/rows"
)

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	Delimiter rune // Defaults to ','
	NoHeader  bool // Columns are named col_0, col_1, ...
}

// inferSample is the number of rows inspected to infer column types.
const inferSample = 100

// ReadCSV reads delimited text into a Table, inferring int64, float64 and
// bool columns from a sample of the rows. Empty cells become nil.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV has no rows")
	}

	var names []string
	if opts.NoHeader {
		for i := range records[0] {
			names = append(names, fmt.Sprintf("col_%d", i))
		}
	} else {
		for _, h := range records[0] {
			names = append(names, strings.TrimSpace(h))
		}
		records = records[1:]
	}

	t := &Table{Columns: names, Types: make([]ColumnType, len(names))}
	for i := range names {
		t.Types[i] = inferColumnType(i, records)
	}
	t.Records = make([]rows.Record, len(records))
	for i, rec := range records {
		row := make(rows.Record, len(names))
		for j, name := range names {
			if j >= len(rec) || rec[j] == "" {
				row[name] = nil
				continue
			}
			row[name] = parseCell(rec[j], t.Types[j])
		}
		t.Records[i] = row
	}
	return t, nil
}

func parseCell(s string, typ ColumnType) any {
	switch typ {
	case TypeInt64:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case TypeFloat64:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	case TypeBool:
		switch s {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return s
}

func inferColumnType(colIdx int, records [][]string) ColumnType {
	sampleSize := min(len(records), inferSample)

	isInt := true
	isFloat := true
	isBool := true
	seen := false

	for i := 0; i < sampleSize; i++ {
		if colIdx >= len(records[i]) {
			continue
		}
		val := records[i][colIdx]
		if val == "" {
			continue
		}
		seen = true

		if isInt {
			if _, err := strconv.ParseInt(val, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if val != "true" && val != "false" && val != "yes" && val != "no" {
				isBool = false
			}
		}
	}

	switch {
	case !seen:
		return TypeString
	case isInt:
		return TypeInt64
	case isFloat:
		return TypeFloat64
	case isBool:
		return TypeBool
	}
	return TypeString
}
