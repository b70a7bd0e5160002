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

package widths

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retail360/commandcenter/core/columns"
	"go.uber.org/zap"
)

// ErrResizeInProgress is returned when a drag starts while another is active.
var ErrResizeInProgress = errors.New("a column resize is already in progress")

// DefaultIdleTimeout is how long a drag without pointer events keeps other
// drags out. A client that never sends its release is detached after it.
const DefaultIdleTimeout = 30 * time.Second

type session struct {
	token      string
	accessor   string
	startX     float64
	startWidth float64
	minWidth   float64
	width      float64
	touched    time.Time
}

// Resizer owns at most one drag session for a Store. Each session is
// addressed by the token Begin returns; calls carrying another token are
// ignored. Sessions end on End, Cancel or Close, or are taken over by a new
// Begin once idle for longer than the idle timeout.
type Resizer struct {
	mu     sync.Mutex
	store  *Store
	active *session
	idle   time.Duration
	now    func() time.Time
}

// NewResizer returns a resizer committing into store.
func NewResizer(store *Store) *Resizer {
	return &Resizer{store: store, idle: DefaultIdleTimeout, now: time.Now}
}

// SetIdleTimeout changes the idle timeout. d <= 0 restores the default.
func (r *Resizer) SetIdleTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultIdleTimeout
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle = d
}

// Begin starts a drag on accessor and returns its session token. startWidth
// is the rendered width of the header cell when the pointer went down.
func (r *Resizer) Begin(accessor string, startX, startWidth float64, headerText string) (string, error) {
	if accessor == "" {
		return "", columns.ErrEmptyAccessor
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if s := r.active; s != nil {
		if now.Sub(s.touched) < r.idle {
			return "", ErrResizeInProgress
		}
		r.store.logger.Info("dropping abandoned column resize",
			zap.String("table", r.store.table),
			zap.String("column", s.accessor),
			zap.Duration("idle", now.Sub(s.touched)))
	}
	r.active = &session{
		token:      uuid.NewString(),
		accessor:   accessor,
		startX:     startX,
		startWidth: startWidth,
		minWidth:   columns.MinWidth(headerText),
		width:      startWidth,
		touched:    now,
	}
	return r.active.token, nil
}

// Active returns the accessor being resized, if any.
func (r *Resizer) Active() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return "", false
	}
	return r.active.accessor, true
}

func (r *Resizer) sessionLocked(token string) *session {
	if r.active == nil || token == "" || r.active.token != token {
		return nil
	}
	return r.active
}

// Move commits the width for pointer position x. Widths below the column's
// minimum are clamped. Without an active session for token Move does nothing
// and returns ok=false.
func (r *Resizer) Move(ctx context.Context, token string, x float64) (accessor, px string, ok bool, err error) {
	r.mu.Lock()
	s := r.sessionLocked(token)
	if s == nil {
		r.mu.Unlock()
		return "", "", false, nil
	}
	s.width = math.Max(s.minWidth, s.startWidth+(x-s.startX))
	s.touched = r.now()
	accessor, px = s.accessor, columns.FormatPx(s.width)
	r.mu.Unlock()

	if err := r.store.Set(ctx, accessor, px); err != nil {
		return accessor, px, true, err
	}
	return accessor, px, true, nil
}

// End finishes the drag of token and returns the last committed width.
func (r *Resizer) End(token string) (accessor, px string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.sessionLocked(token)
	if s == nil {
		return "", "", false
	}
	r.active = nil
	return s.accessor, columns.FormatPx(s.width), true
}

// Cancel drops the drag of token, keeping whatever was already committed.
func (r *Resizer) Cancel(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionLocked(token) != nil {
		r.active = nil
	}
}

// Close ends any active drag.
func (r *Resizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
	return nil
}
