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

// Package server exposes grids over HTTP: server-rendered pages plus a small
// form-encoded API the page script posts interactions to.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/retail360/commandcenter/core/grid"
	"github.com/retail360/commandcenter/core/query"
	"github.com/retail360/commandcenter/core/rendering"
	"github.com/retail360/commandcenter/core/sorting"
	"github.com/retail360/commandcenter/core/views"
	"go.uber.org/zap"
)

// ErrUnknownTable is returned for table names no grid is registered under.
var ErrUnknownTable = errors.New("unknown table")

// Registry lists the grids served.
type Registry interface {
	Grids() []grid.Controller
	Grid(name string) (grid.Controller, bool)
}

// Grids is a fixed Registry.
type Grids []grid.Controller

func (g Grids) Grids() []grid.Controller {
	return g
}

func (g Grids) Grid(name string) (grid.Controller, bool) {
	for _, c := range g {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Server represents the application server with all its dependencies
type Server struct {
	registry Registry
	renderer *rendering.TableRenderer
	logger   *zap.Logger
	title    string
}

// NewServer creates a new server over the grids of registry
func NewServer(registry Registry, title string, logger *zap.Logger) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		registry: registry,
		renderer: renderer,
		logger:   logger,
		title:    title,
	}, nil
}

// Handler returns the routes of the server wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /table", s.handleTable)
	mux.HandleFunc("POST /api/sort", s.handleSort)
	mux.HandleFunc("POST /api/click", s.handleClick)
	mux.HandleFunc("POST /api/checkbox", s.handleCheckbox)
	mux.HandleFunc("POST /api/select-all", s.handleSelectAll)
	mux.HandleFunc("POST /api/contextmenu", s.handleContextMenu)
	mux.HandleFunc("POST /api/resize", s.handleResize)
	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

func (s *Server) tableInfos(current string) []views.TableInfo {
	var infos []views.TableInfo
	for _, g := range s.registry.Grids() {
		q := &query.Query{Path: "/table", Table: g.Name()}
		cards := q.Clone()
		cards.Layout = string(views.LayoutCards)
		virtual := q.Clone()
		virtual.Virtual = true
		infos = append(infos, views.TableInfo{
			Name:          g.Name(),
			Title:         g.Title(),
			RowCount:      g.Len(),
			SelectedCount: g.SelectedCount(),
			Current:       g.Name() == current,
			URL:           q.ToSafeURL(),
			CardsURL:      cards.ToSafeURL(),
			VirtualURL:    virtual.ToSafeURL(),
		})
	}
	return infos
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	vm := views.LandingViewModel{Title: s.title, Tables: s.tableInfos("")}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.logger.Error("failed to render landing page", zap.Error(err))
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res := s.HandleTableRequest(w, r.URL); res != nil {
		http.Error(w, res.Message, res.StatusCode)
	}
}

// HandleTableRequest renders the grid page for requestURL.
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL) *TableHandlerResult {
	q := query.NewQuery(requestURL)
	if q.Table == "" {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "Table parameter is required"}
	}
	g, ok := s.registry.Grid(q.Table)
	if !ok {
		return &TableHandlerResult{
			Error:      ErrUnknownTable,
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("Table '%s' not found", q.Table),
		}
	}
	if q.Sort != "" {
		cfg, err := sorting.ParseConfig(q.Sort)
		if err != nil {
			return &TableHandlerResult{Error: err, StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
		g.SetSort(cfg)
	}

	vm := g.View(grid.ViewOptions{
		Viewport: views.Viewport{Width: q.Width, Height: q.Height, ScrollTop: q.Scroll},
		Layout:   views.ParseLayout(q.Layout),
		Virtual:  q.Virtual,
		Overscan: 4,
	})
	if !q.Virtual && q.Limit > 0 {
		if len(vm.Rows) > q.Limit {
			vm.Rows = vm.Rows[:q.Limit]
		}
		if len(vm.Cards) > q.Limit {
			vm.Cards = vm.Cards[:q.Limit]
		}
	}
	vm.CurrentURL = q.ToSafeURL()

	page := views.GridPage{
		Grid:           vm,
		Tables:         s.tableInfos(q.Table),
		TableLayoutURL: q.WithLayout(string(views.LayoutTable)),
		CardLayoutURL:  q.WithLayout(string(views.LayoutCards)),
		PlainURL:       q.WithVirtual(false),
		VirtualURL:     q.WithVirtual(true),
		Scroll:         q.Scroll,
	}
	if err := s.renderer.Render(w, page); err != nil {
		s.logger.Error("failed to render grid", zap.String("table", q.Table), zap.Error(err))
		return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "render failed"}
	}
	return nil
}
