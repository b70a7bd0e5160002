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

package views

// Viewport is the measured size of the scroll container. Units are pixels
// for the HTML surface and cells for the terminal.
type Viewport struct {
	Width     int
	Height    int
	ScrollTop int
}

// Measured reports whether the viewport has a usable size.
func (v Viewport) Measured() bool {
	return v.Width > 0 && v.Height > 0
}

// VisibleRange is the half-open slice [Start, End) of sorted rows to draw.
type VisibleRange struct {
	Start       int
	End         int
	OffsetTop   int // Position of row Start
	TotalHeight int // Height of all rows, for the scroll spacer
}

// Len returns the number of rows in the range.
func (r VisibleRange) Len() int {
	return r.End - r.Start
}

// Window computes the rows of a fixed-height list that intersect a viewport
// scrolled to scrollTop, widened by overscan rows on each side.
func Window(total, rowHeight, viewportHeight, scrollTop, overscan int) VisibleRange {
	if total <= 0 || rowHeight <= 0 {
		return VisibleRange{}
	}
	r := VisibleRange{TotalHeight: total * rowHeight}
	if viewportHeight <= 0 {
		return r
	}

	maxScroll := max(0, r.TotalHeight-viewportHeight)
	scrollTop = min(max(scrollTop, 0), maxScroll)

	start := scrollTop / rowHeight
	end := (scrollTop + viewportHeight + rowHeight - 1) / rowHeight
	overscan = max(overscan, 0)
	r.Start = max(0, start-overscan)
	r.End = min(total, end+overscan)
	r.OffsetTop = r.Start * rowHeight
	return r
}

// ScrollToRow returns the smallest scroll offset change that brings row i
// fully into a viewport currently scrolled to scrollTop.
func ScrollToRow(i, rowHeight, viewportHeight, scrollTop int) int {
	top := i * rowHeight
	if top < scrollTop {
		return top
	}
	if bottom := top + rowHeight; bottom > scrollTop+viewportHeight {
		return bottom - viewportHeight
	}
	return scrollTop
}
