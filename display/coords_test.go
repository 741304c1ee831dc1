// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package display

import (
	"testing"

	"github.com/novage/novage"
)

func TestFlipYSelfInverse(t *testing.T) {
	const h = 600
	for _, y := range []float32{0, 1, 42.5, 300, 599, 600} {
		if got := FlipY(FlipY(y, h), h); got != y {
			t.Errorf("FlipY(FlipY(%v)) = %v, want %v", y, got, y)
		}
	}
}

func TestFlipYEndpoints(t *testing.T) {
	if got := FlipY(0, 600); got != 600 {
		t.Errorf("FlipY(0, 600) = %v, want 600", got)
	}
	if got := FlipY(600, 600); got != 0 {
		t.Errorf("FlipY(600, 600) = %v, want 0", got)
	}
}

func TestMapRect(t *testing.T) {
	// A 200x80 rectangle at screen position (100, 50) in an 800x600
	// viewport lands with its bottom-left corner at (100, 470).
	r := MapRect(novage.NewRect(100, 50, 200, 80), 600)
	want := novage.NewRect(100, 470, 200, 80)
	if r != want {
		t.Errorf("MapRect = %+v, want %+v", r, want)
	}
}

func TestMapRectRoundTrip(t *testing.T) {
	const h = 600
	in := novage.NewRect(13.5, 27.25, 64, 48)
	if got := MapRect(MapRect(in, h), h); got != in {
		t.Errorf("MapRect round trip = %+v, want %+v", got, in)
	}
}

func TestMapPoint(t *testing.T) {
	p := MapPoint(novage.Pt(10, 40), 100)
	if p.X != 10 || p.Y != 60 {
		t.Errorf("MapPoint = %+v, want (10, 60)", p)
	}
}
