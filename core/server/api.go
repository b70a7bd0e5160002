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

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/query"
	"go.uber.org/zap"
)

// SelectionResponse reports the outcome of a selection interaction.
type SelectionResponse struct {
	Proposed   bool     `json:"proposed"`
	RowClicked bool     `json:"rowClicked"`
	Proposal   []string `json:"proposal"`
	Selected   int      `json:"selected"`
}

// SortResponse reports the sort after a header click.
type SortResponse struct {
	Sort      string `json:"sort"`
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// ResizeResponse reports the committed width of a drag. Session is set by
// the down phase and must be posted back with every later phase.
type ResizeResponse struct {
	Session string `json:"session,omitempty"`
	Column  string `json:"column,omitempty"`
	Width   string `json:"width,omitempty"`
	Active  bool   `json:"active"`
}

// apiRequest parses the posted action and resolves its grid. It writes the
// error response itself and returns ok=false on failure.
func (s *Server) apiRequest(w http.ResponseWriter, r *http.Request) (grid.Controller, query.Action, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, query.Action{}, false
	}
	a, err := query.ParseAction(r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, a, false
	}
	if a.Table == "" {
		http.Error(w, "Table parameter is required", http.StatusBadRequest)
		return nil, a, false
	}
	g, ok := s.registry.Grid(a.Table)
	if !ok {
		http.Error(w, ErrUnknownTable.Error()+": "+a.Table, http.StatusNotFound)
		return nil, a, false
	}
	return g, a, true
}

func rowRef(w http.ResponseWriter, a query.Action) (grid.RowRef, bool) {
	switch {
	case a.Row.Valid():
		return grid.RefByID(a.Row), true
	case a.Index >= 0:
		return grid.RefByIndex(a.Index), true
	}
	http.Error(w, "row or index parameter is required", http.StatusBadRequest)
	return grid.RowRef{}, false
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeSelection(w http.ResponseWriter, g grid.Controller, res grid.Result) {
	s.writeJSON(w, SelectionResponse{
		Proposed:   res.Proposed,
		RowClicked: res.RowClicked,
		Proposal:   res.Selection.Strings(),
		Selected:   g.SelectedCount(),
	})
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	if a.Column == "" {
		http.Error(w, "col parameter is required", http.StatusBadRequest)
		return
	}
	cfg := g.ToggleSort(a.Column)
	s.writeJSON(w, SortResponse{Sort: cfg.String(), Key: cfg.Key, Direction: string(cfg.Direction)})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	ref, ok := rowRef(w, a)
	if !ok {
		return
	}
	s.writeSelection(w, g, g.ClickRow(ref, a.Mods))
}

func (s *Server) handleCheckbox(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	ref, ok := rowRef(w, a)
	if !ok {
		return
	}
	var res grid.Result
	if a.Key != "" {
		res = g.ActivateCheckbox(ref, a.Key)
	} else {
		res = g.ClickCheckbox(ref)
	}
	s.writeSelection(w, g, res)
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	var res grid.Result
	if a.Key != "" {
		res = g.ActivateSelectAll(a.Key)
	} else {
		res = g.ToggleSelectAll()
	}
	s.writeSelection(w, g, res)
}

func (s *Server) handleContextMenu(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	ref, ok := rowRef(w, a)
	if !ok {
		return
	}
	handled := g.ContextMenu(ref, grid.ContextMenuEvent{X: a.X, Y: a.Y})
	s.writeJSON(w, map[string]bool{"handled": handled})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	g, a, ok := s.apiRequest(w, r)
	if !ok {
		return
	}
	switch a.Phase {
	case "down":
		token, err := g.BeginResize(a.Column, a.X, a.Width)
		switch {
		case errors.Is(err, grid.ErrResizeInProgress):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeJSON(w, ResizeResponse{Session: token, Column: a.Column, Active: true})
		return
	case "move", "up", "cancel":
		if a.Session == "" {
			http.Error(w, "session parameter is required", http.StatusBadRequest)
			return
		}
	}

	switch a.Phase {
	case "move":
		px, active := g.MoveResize(r.Context(), a.Session, a.X)
		var col string
		if active {
			col, _ = g.Resizing()
		}
		s.writeJSON(w, ResizeResponse{Column: col, Width: px, Active: active})
	case "up":
		col, px, _ := g.EndResize(a.Session)
		s.writeJSON(w, ResizeResponse{Column: col, Width: px})
	case "cancel":
		g.CancelResize(a.Session)
		s.writeJSON(w, ResizeResponse{})
	default:
		http.Error(w, "phase must be one of down, move, up, cancel", http.StatusBadRequest)
	}
}
