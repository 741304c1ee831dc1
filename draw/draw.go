// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package draw provides pygame-style immediate drawing primitives.
//
// Each call targets a surface, takes screen-space coordinates (origin
// top-left, Y down), and appends one or more render-space commands to
// the surface's open batch. Nothing is rasterized until the next
// display.Flip; calls between flips accumulate into a single batch.
//
// Stroked shapes decompose into line segments: a stroked rectangle is
// its four edges, a stroked circle is a segment loop around the
// circumference, a polygon is the edge loop over its vertices.
package draw

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/novage/novage"
	"github.com/novage/novage/display"
)

// ErrPolygonFillUnsupported is returned by Polygon with a non-positive
// stroke width. Filled polygon tessellation is not implemented; callers
// get an explicit error rather than a silently stroked outline.
var ErrPolygonFillUnsupported = errors.New("draw: filled polygons are not supported")

// ErrTooFewPoints is returned by Polygon with fewer than 3 points.
var ErrTooFewPoints = errors.New("draw: polygon needs at least 3 points")

// circleSegments is the resolution Circle uses for stroked outlines.
// Filled circles delegate the choice to the renderer.
const circleSegments = 32

// Rect draws a rectangle on the surface. A width of 0 or less fills the
// rectangle; a positive width strokes its four edges with lines of that
// thickness.
func Rect(s *display.Surface, c novage.RGBA, r novage.Rect, width float32) error {
	batch, vp, err := s.DrawTarget()
	if err != nil {
		return err
	}
	vh := float32(vp.Height)

	if width <= 0 {
		m := display.MapRect(r, vh)
		return batch.AppendFilledRect(m.X, m.Y, m.W, m.H, c)
	}

	// Edge loop: top-left -> top-right -> bottom-right -> bottom-left.
	corners := [4]novage.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	for i := range corners {
		p0 := display.MapPoint(corners[i], vh)
		p1 := display.MapPoint(corners[(i+1)%4], vh)
		if err := batch.AppendLine(p0.X, p0.Y, p1.X, p1.Y, width, c); err != nil {
			return err
		}
	}
	return nil
}

// Circle draws a circle centered at center. A width of 0 or less fills
// the circle; a positive width strokes the circumference.
func Circle(s *display.Surface, c novage.RGBA, center novage.Point, radius, width float32) error {
	return CircleN(s, c, center, radius, width, circleSegments)
}

// CircleN is Circle with an explicit segment count. Filled circles pass
// the count to the renderer; stroked circles draw one line per segment.
// Counts below 3 use the default resolution.
func CircleN(s *display.Surface, c novage.RGBA, center novage.Point, radius, width float32, segments int) error {
	batch, vp, err := s.DrawTarget()
	if err != nil {
		return err
	}
	vh := float32(vp.Height)

	if width <= 0 {
		m := display.MapPoint(center, vh)
		return batch.AppendFilledCircle(m.X, m.Y, radius, segments, c)
	}

	if segments < 3 {
		segments = circleSegments
	}
	// Sample the circumference in screen space and map each endpoint
	// individually, like every other stroked primitive.
	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		a0 := float32(i) * step
		a1 := float32(i+1) * step
		p0 := display.MapPoint(novage.Pt(
			center.X+radius*math32.Cos(a0),
			center.Y+radius*math32.Sin(a0)), vh)
		p1 := display.MapPoint(novage.Pt(
			center.X+radius*math32.Cos(a1),
			center.Y+radius*math32.Sin(a1)), vh)
		if err := batch.AppendLine(p0.X, p0.Y, p1.X, p1.Y, width, c); err != nil {
			return err
		}
	}
	return nil
}

// Line draws a line segment from start to end with the given thickness.
// A thickness of 0 or less draws a hairline.
func Line(s *display.Surface, c novage.RGBA, start, end novage.Point, width float32) error {
	batch, vp, err := s.DrawTarget()
	if err != nil {
		return err
	}
	vh := float32(vp.Height)
	p0 := display.MapPoint(start, vh)
	p1 := display.MapPoint(end, vh)
	return batch.AppendLine(p0.X, p0.Y, p1.X, p1.Y, width, c)
}

// Polygon strokes the closed polygon through the given points, one line
// per edge including the closing edge from the last point back to the
// first. Filling is unsupported and reported as
// ErrPolygonFillUnsupported.
func Polygon(s *display.Surface, c novage.RGBA, points []novage.Point, width float32) error {
	if width <= 0 {
		return ErrPolygonFillUnsupported
	}
	if len(points) < 3 {
		return ErrTooFewPoints
	}
	batch, vp, err := s.DrawTarget()
	if err != nil {
		return err
	}
	vh := float32(vp.Height)
	for i := range points {
		p0 := display.MapPoint(points[i], vh)
		p1 := display.MapPoint(points[(i+1)%len(points)], vh)
		if err := batch.AppendLine(p0.X, p0.Y, p1.X, p1.Y, width, c); err != nil {
			return err
		}
	}
	return nil
}
