// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package display

import "github.com/novage/novage"

// The drawing API speaks screen space (origin top-left, Y down); the
// renderer speaks render space (origin bottom-left, Y up). Only the Y
// axis and the anchor corner differ, so the mapping is its own inverse
// for a fixed viewport height. It must be applied exactly once per
// primitive: this package is the single owner of the flip, and the
// render.Batch contract states that appends receive render-space
// coordinates. Pre-transformed coordinates are never stored, so a
// viewport change cannot leave stale mappings behind.

// FlipY converts a Y coordinate between screen space and render space
// for a viewport of the given height. The function is self-inverse.
func FlipY(y, viewportHeight float32) float32 {
	return viewportHeight - y
}

// MapPoint converts a point between screen space and render space.
func MapPoint(p novage.Point, viewportHeight float32) novage.Point {
	return novage.Point{X: p.X, Y: viewportHeight - p.Y}
}

// MapRect converts a screen-space rectangle (origin at the top-left
// corner) to a render-space rectangle (origin at the bottom-left
// corner). Width and height are unchanged; the origin row moves from
// the top edge to the bottom edge.
func MapRect(r novage.Rect, viewportHeight float32) novage.Rect {
	return novage.Rect{
		X: r.X,
		Y: viewportHeight - r.Y - r.H,
		W: r.W,
		H: r.H,
	}
}
