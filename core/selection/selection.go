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

// Package selection resolves pointer and keyboard interactions into proposed
// selection sets. It never owns the selection: callers pass the current set
// in and decide whether to accept the proposal.
package selection

import (
	"slices"

	"github.com/retail360/commandcenter/core/rows"
)

// Set is an ordered list of unique row identifiers. Order is incidental.
type Set []rows.ID

// NewSet builds a set from ids, dropping duplicates and invalid ids.
func NewSet(ids ...rows.ID) Set {
	s := make(Set, 0, len(ids))
	return s.Union(ids...)
}

// Contains reports whether id is a member. Comparison is strict.
func (s Set) Contains(id rows.ID) bool {
	return slices.Contains(s, id)
}

// Toggle returns a new set with id's membership flipped and whether id was
// added.
func (s Set) Toggle(id rows.ID) (Set, bool) {
	if s.Contains(id) {
		return slices.DeleteFunc(slices.Clone(s), func(x rows.ID) bool { return x == id }), false
	}
	return append(slices.Clone(s), id), true
}

// Union returns a new set holding s followed by the ids it did not contain.
func (s Set) Union(ids ...rows.ID) Set {
	out := slices.Clone(s)
	seen := make(map[rows.ID]struct{}, len(s)+len(ids))
	for _, id := range s {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if out == nil {
		out = Set{}
	}
	return out
}

// Equal reports whether both sets have the same members, ignoring order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for _, id := range s {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

// Strings returns the typed text form of every member.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, id := range s {
		out[i] = id.Text()
	}
	return out
}

// Modifiers are the keys held during a click.
type Modifiers struct {
	Ctrl  bool
	Meta  bool
	Shift bool
}

// Toggles reports whether the click toggles membership (ctrl or cmd).
func (m Modifiers) Toggles() bool {
	return m.Ctrl || m.Meta
}

// Outcome is the result of resolving one interaction.
type Outcome struct {
	// Selection is the proposed set. Only meaningful when Propose is set.
	Selection Set
	// Propose tells the caller to hand Selection to its change callback.
	Propose bool
	// RowClick tells the caller to invoke its row-click callback.
	RowClick bool
}

// Engine holds the shift-click anchor. It is not safe for concurrent use;
// the grid serializes access.
type Engine struct {
	anchor rows.ID
}

// Anchor returns the row a subsequent shift-click ranges from.
func (e *Engine) Anchor() rows.ID {
	return e.anchor
}

// Reset forgets the anchor.
func (e *Engine) Reset() {
	e.anchor = rows.None
}

// Click resolves a row click. order is the currently displayed row order and
// is the only order range selection is computed against.
func (e *Engine) Click(mods Modifiers, id rows.ID, current Set, order []rows.ID, enabled, hasRowClick bool) Outcome {
	if !enabled || !id.Valid() {
		return Outcome{RowClick: hasRowClick}
	}

	switch {
	case mods.Toggles():
		// Deselecting leaves the anchor where it was.
		next, added := current.Toggle(id)
		if added {
			e.anchor = id
		}
		return Outcome{Selection: next, Propose: true}

	case mods.Shift && e.anchor.Valid():
		return Outcome{Selection: current.Union(Range(order, e.anchor, id)...), Propose: true}

	case hasRowClick:
		return Outcome{Selection: current.Union(), Propose: true, RowClick: true}

	default:
		next, added := current.Toggle(id)
		if added {
			e.anchor = id
		}
		return Outcome{Selection: next, Propose: true}
	}
}

// Range returns the ids between from and to in order, inclusive, in display
// order. When either end is not displayed only to is returned.
func Range(order []rows.ID, from, to rows.ID) []rows.ID {
	i, j := slices.Index(order, from), slices.Index(order, to)
	if i < 0 || j < 0 {
		return []rows.ID{to}
	}
	if i > j {
		i, j = j, i
	}
	return slices.Clone(order[i : j+1])
}

// Checkbox resolves a click on a row's checkbox: a direct toggle regardless
// of modifiers. Rows without a valid id propose nothing.
func (e *Engine) Checkbox(id rows.ID, current Set) Outcome {
	if !id.Valid() {
		return Outcome{}
	}
	next, added := current.Toggle(id)
	if added {
		e.anchor = id
	}
	return Outcome{Selection: next, Propose: true}
}

// SelectAll resolves the header checkbox. total is the number of rows in the
// full data set and all their valid ids. A selection as large as the data
// set is cleared; anything else selects every id.
func SelectAll(current Set, total int, all []rows.ID) Outcome {
	if len(current) == total {
		return Outcome{Selection: Set{}, Propose: true}
	}
	return Outcome{Selection: NewSet(all...), Propose: true}
}

// AllSelected reports whether the header checkbox shows as checked.
func AllSelected(current Set, total int) bool {
	return total > 0 && len(current) == total
}

// IsActivationKey reports whether key activates a checkbox.
func IsActivationKey(key string) bool {
	switch key {
	case "Enter", "enter", " ", "space", "Space", "Spacebar":
		return true
	}
	return false
}
