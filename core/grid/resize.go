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

package grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/retail360/commandcenter/core/columns"
	"github.com/retail360/commandcenter/core/widths"
	"go.uber.org/zap"
)

var (
	// ErrUnknownColumn is returned when an accessor names no column.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrResizeInProgress is returned when a drag starts during another.
	ErrResizeInProgress = widths.ErrResizeInProgress
)

// BeginResize starts a drag on a column's resize handle and returns the
// session token the rest of the drag must carry. startWidth is the rendered
// width of the header cell; when unknown (<= 0) the current width is used.
// Overlapping drags fail with widths.ErrResizeInProgress until the active one
// ends or goes idle.
func (g *Grid[T]) BeginResize(accessor string, startX, startWidth float64) (string, error) {
	g.mu.Lock()
	c, ok := columns.Find(g.cols, accessor)
	g.mu.Unlock()
	if !ok || accessor == "" {
		return "", fmt.Errorf("cannot resize %q: %w", accessor, ErrUnknownColumn)
	}
	if startWidth <= 0 {
		startWidth = g.currentWidth(c)
	}
	return g.resizer.Begin(accessor, startX, startWidth, c.HeaderText())
}

// MoveResize commits the width for pointer position x and returns it.
// Tokens of other or finished drags are ignored.
func (g *Grid[T]) MoveResize(ctx context.Context, token string, x float64) (string, bool) {
	_, px, ok, err := g.resizer.Move(ctx, token, x)
	if err != nil {
		g.logger.Warn("failed to persist column width", zap.Error(err))
	}
	return px, ok
}

// EndResize finishes the drag.
func (g *Grid[T]) EndResize(token string) (accessor, px string, ok bool) {
	return g.resizer.End(token)
}

// CancelResize drops the drag, as on pointercancel or focus loss.
func (g *Grid[T]) CancelResize(token string) {
	g.resizer.Cancel(token)
}

// Resizing returns the accessor of the column being dragged.
func (g *Grid[T]) Resizing() (string, bool) {
	return g.resizer.Active()
}

// ResizeBy widens or narrows a column by delta pixels as one complete drag.
func (g *Grid[T]) ResizeBy(ctx context.Context, accessor string, delta float64) (string, error) {
	token, err := g.BeginResize(accessor, 0, 0)
	if err != nil {
		return "", err
	}
	defer g.resizer.End(token)
	px, _ := g.MoveResize(ctx, token, delta)
	return px, nil
}

// Widths returns the persisted widths of the table.
func (g *Grid[T]) Widths() map[string]string {
	return g.widths.Widths()
}

// ResetWidths forgets the table's widths and re-seeds the column hints.
func (g *Grid[T]) ResetWidths(ctx context.Context) error {
	if err := g.widths.Reset(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	hints := columns.Hints(g.cols)
	g.mu.Unlock()
	_, err := g.widths.Seed(ctx, hints)
	return err
}

func (g *Grid[T]) currentWidth(c columns.Column[T]) float64 {
	w, ok := g.widths.Width(c.Accessor)
	if !ok {
		w = c.Width
	}
	if px, err := columns.ParsePx(w); err == nil && px > 0 {
		return px
	}
	px, _ := columns.ParsePx(columns.DefaultWidth)
	return px
}
