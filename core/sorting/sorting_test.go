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

package sorting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/retail360/commandcenter/core/rows"
)

func newSorter(t *testing.T) *Sorter {
	t.Helper()
	s, err := NewSorter("en")
	if err != nil {
		t.Fatalf("NewSorter: %v", err)
	}
	return s
}

func ids(rs []rows.Record) []rows.ID {
	out := make([]rows.ID, len(rs))
	for i, r := range rs {
		out[i] = r.RowID()
	}
	return out
}

func TestToggle(t *testing.T) {
	var c Config
	c = c.Toggle("name")
	if c != (Config{Key: "name", Direction: Ascending}) {
		t.Fatalf("first click = %+v", c)
	}
	c = c.Toggle("name")
	if c != (Config{Key: "name", Direction: Descending}) {
		t.Fatalf("second click = %+v", c)
	}
	c = c.Toggle("name")
	if c.Direction != Ascending {
		t.Fatalf("third click = %+v, want asc", c)
	}
	c = c.Toggle("name").Toggle("amount")
	if c != (Config{Key: "amount", Direction: Ascending}) {
		t.Fatalf("switching key = %+v, want amount asc", c)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		in      string
		want    Config
		wantErr bool
	}{
		{"", Config{}, false},
		{"name", Config{Key: "name", Direction: Ascending}, false},
		{"name:desc", Config{Key: "name", Direction: Descending}, false},
		{"name:sideways", Config{}, true},
		{":asc", Config{}, true},
	}
	for _, tt := range tests {
		got, err := ParseConfig(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConfig(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConfig(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && tt.in != got.Key && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestSortWithoutKeyReturnsInput(t *testing.T) {
	data := []rows.Record{{"id": 2}, {"id": 1}}
	got := Sort(newSorter(t), data, Config{})
	if &got[0] != &data[0] || len(got) != len(data) {
		t.Fatal("inactive sort must return the input slice itself")
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	data := []rows.Record{{"id": 1, "n": 3}, {"id": 2, "n": 1}, {"id": 3, "n": 2}}
	_ = Sort(newSorter(t), data, Config{Key: "n", Direction: Ascending})
	if diff := cmp.Diff([]rows.ID{rows.Int(1), rows.Int(2), rows.Int(3)}, ids(data), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
}

func TestSortNumbers(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "amount": 5},
		{"id": 2, "amount": 9.5},
		{"id": 3, "amount": int64(-2)},
		{"id": 4, "amount": uint32(7)},
	}
	s := newSorter(t)
	asc := Sort(s, data, Config{Key: "amount", Direction: Ascending})
	want := []rows.ID{rows.Int(3), rows.Int(1), rows.Int(4), rows.Int(2)}
	if diff := cmp.Diff(want, ids(asc), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("asc (-want +got):\n%s", diff)
	}

	// Sorting ascending then descending reverses all-distinct keys.
	desc := Sort(s, asc, Config{Key: "amount", Direction: Descending})
	for i := range asc {
		if asc[i].RowID() != desc[len(desc)-1-i].RowID() {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", ids(asc), ids(desc))
		}
	}
}

func TestSortIsIdempotent(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "name": "Charlie"},
		{"id": 2, "name": "alpha"},
		{"id": 3, "name": "Bravo"},
		{"id": 4, "name": "bravo"},
	}
	s := newSorter(t)
	for _, dir := range []Direction{Ascending, Descending} {
		cfg := Config{Key: "name", Direction: dir}
		once := Sort(s, data, cfg)
		twice := Sort(s, once, cfg)
		if diff := cmp.Diff(ids(once), ids(twice), cmp.AllowUnexported(rows.ID{})); diff != "" {
			t.Errorf("%s: resort changed order (-once +twice):\n%s", dir, diff)
		}
	}
}

func TestSortStringsUseCollation(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "name": "zebra"},
		{"id": 2, "name": "éclair"},
		{"id": 3, "name": "Banana"},
		{"id": 4, "name": "apple"},
	}
	got := Sort(newSorter(t), data, Config{Key: "name", Direction: Ascending})
	want := []rows.ID{rows.Int(4), rows.Int(3), rows.Int(2), rows.Int(1)}
	if diff := cmp.Diff(want, ids(got), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("collated order (-want +got):\n%s", diff)
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "status": "active"},
		{"id": 2, "status": "paused"},
		{"id": 3, "status": "active"},
		{"id": 4, "status": "active"},
	}
	s := newSorter(t)
	asc := Sort(s, data, Config{Key: "status", Direction: Ascending})
	wantAsc := []rows.ID{rows.Int(1), rows.Int(3), rows.Int(4), rows.Int(2)}
	if diff := cmp.Diff(wantAsc, ids(asc), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("asc (-want +got):\n%s", diff)
	}

	// Equal keys keep input order when descending too; they are not reversed.
	desc := Sort(s, data, Config{Key: "status", Direction: Descending})
	wantDesc := []rows.ID{rows.Int(2), rows.Int(1), rows.Int(3), rows.Int(4)}
	if diff := cmp.Diff(wantDesc, ids(desc), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("desc (-want +got):\n%s", diff)
	}
}

func TestSortIncomparableValuesKeepOrder(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "flag": true},
		{"id": 2, "flag": nil},
		{"id": 3, "flag": false},
		{"id": 4, "flag": map[string]int{"a": 1}},
	}
	got := Sort(newSorter(t), data, Config{Key: "flag", Direction: Descending})
	want := []rows.ID{rows.Int(1), rows.Int(2), rows.Int(3), rows.Int(4)}
	if diff := cmp.Diff(want, ids(got), cmp.AllowUnexported(rows.ID{})); diff != "" {
		t.Errorf("incomparable values reordered (-want +got):\n%s", diff)
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	c := collate.New(language.English)
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"string against nil", "b", nil, 1},
		{"string against number", "b", 3, 1},
		{"number text against string", 10, "9", -1},
		{"strings", "apple", "Banana", -1},
		{"numbers", 2, 10.5, -1},
		{"nils", nil, nil, 0},
		{"bools", true, false, 0},
		{"bool against number", true, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(c, tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(c, tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestSortHeaderClicks(t *testing.T) {
	data := []rows.Record{
		{"id": 1, "name": "B", "amount": 5},
		{"id": 2, "name": "A", "amount": 9},
	}
	s := newSorter(t)
	var cfg Config

	steps := []struct {
		click string
		want  []rows.ID
	}{
		{"name", []rows.ID{rows.Int(2), rows.Int(1)}},
		{"name", []rows.ID{rows.Int(1), rows.Int(2)}},
		{"amount", []rows.ID{rows.Int(1), rows.Int(2)}},
	}
	for i, step := range steps {
		cfg = cfg.Toggle(step.click)
		got := Sort(s, data, cfg)
		if diff := cmp.Diff(step.want, ids(got), cmp.AllowUnexported(rows.ID{})); diff != "" {
			t.Errorf("step %d (%s, %s) (-want +got):\n%s", i, step.click, cfg.Direction, diff)
		}
	}
}

func TestNewSorterRejectsBadLocale(t *testing.T) {
	if _, err := NewSorter("not a locale!"); err == nil {
		t.Error("expected error for malformed locale")
	}
}
