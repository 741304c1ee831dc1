// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/novage/novage"
)

type vertex struct {
	x, y    float32
	r, g, b float32
	a       float32
}

func decodeVertices(t *testing.T, data []byte) []vertex {
	t.Helper()
	if len(data)%vertexStride != 0 {
		t.Fatalf("vertex data length %d is not a multiple of stride %d", len(data), vertexStride)
	}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	}
	verts := make([]vertex, len(data)/vertexStride)
	for i := range verts {
		o := i * vertexStride
		verts[i] = vertex{
			x: f(o), y: f(o + 4),
			r: f(o + 8), g: f(o + 12), b: f(o + 16), a: f(o + 20),
		}
	}
	return verts
}

func TestTessellateRect(t *testing.T) {
	data := tessellate([]command{{
		kind:  cmdFilledRect,
		v:     [5]float32{10, 20, 30, 40},
		color: novage.RGBA{R: 1, G: 0, B: 0, A: 1},
	}})
	verts := decodeVertices(t, data)
	if len(verts) != 6 {
		t.Fatalf("len(verts) = %d, want 6", len(verts))
	}
	// Both triangles share the bottom-left corner at (10, 20).
	if verts[0].x != 10 || verts[0].y != 20 {
		t.Errorf("verts[0] = (%v, %v), want (10, 20)", verts[0].x, verts[0].y)
	}
	if verts[3].x != 10 || verts[3].y != 20 {
		t.Errorf("verts[3] = (%v, %v), want (10, 20)", verts[3].x, verts[3].y)
	}
	// Opposite corner at (40, 60) appears in both triangles.
	if verts[2].x != 40 || verts[2].y != 60 {
		t.Errorf("verts[2] = (%v, %v), want (40, 60)", verts[2].x, verts[2].y)
	}
	for i, v := range verts {
		if v.r != 1 || v.g != 0 || v.b != 0 || v.a != 1 {
			t.Errorf("verts[%d] color = (%v, %v, %v, %v), want red", i, v.r, v.g, v.b, v.a)
		}
	}
}

func TestTessellateCircle(t *testing.T) {
	const segments = 8
	data := tessellate([]command{{
		kind:     cmdFilledCircle,
		v:        [5]float32{100, 100, 50},
		segments: segments,
		color:    novage.White,
	}})
	verts := decodeVertices(t, data)
	if len(verts) != 3*segments {
		t.Fatalf("len(verts) = %d, want %d", len(verts), 3*segments)
	}
	// Every triangle fans from the center.
	for i := 0; i < segments; i++ {
		c := verts[i*3]
		if c.x != 100 || c.y != 100 {
			t.Errorf("triangle %d apex = (%v, %v), want center (100, 100)", i, c.x, c.y)
		}
	}
	// First rim vertex sits at angle 0.
	if verts[1].x != 150 || verts[1].y != 100 {
		t.Errorf("first rim vertex = (%v, %v), want (150, 100)", verts[1].x, verts[1].y)
	}
	// Rim vertices stay on the circle.
	for i, v := range verts {
		if i%3 == 0 {
			continue
		}
		dx, dy := float64(v.x-100), float64(v.y-100)
		if d := math.Sqrt(dx*dx + dy*dy); math.Abs(d-50) > 1e-3 {
			t.Errorf("verts[%d] radius = %v, want 50", i, d)
		}
	}
}

func TestTessellateLine(t *testing.T) {
	data := tessellate([]command{{
		kind:  cmdLine,
		v:     [5]float32{0, 0, 10, 0, 4},
		color: novage.White,
	}})
	verts := decodeVertices(t, data)
	if len(verts) != 6 {
		t.Fatalf("len(verts) = %d, want 6", len(verts))
	}
	// A horizontal line of thickness 4 expands 2 units above and below.
	for i, v := range verts {
		if v.x != 0 && v.x != 10 {
			t.Errorf("verts[%d].x = %v, want 0 or 10", i, v.x)
		}
		if v.y != 2 && v.y != -2 {
			t.Errorf("verts[%d].y = %v, want 2 or -2", i, v.y)
		}
	}
}

func TestTessellateHairline(t *testing.T) {
	// Thickness 0 draws a one-pixel line.
	data := tessellate([]command{{
		kind:  cmdLine,
		v:     [5]float32{0, 0, 10, 0, 0},
		color: novage.White,
	}})
	verts := decodeVertices(t, data)
	for i, v := range verts {
		if v.y != 0.5 && v.y != -0.5 {
			t.Errorf("verts[%d].y = %v, want 0.5 or -0.5", i, v.y)
		}
	}
}

func TestTessellateZeroLengthLine(t *testing.T) {
	// Degenerate line draws a square of side thickness around the point.
	data := tessellate([]command{{
		kind:  cmdLine,
		v:     [5]float32{5, 5, 5, 5, 2},
		color: novage.White,
	}})
	verts := decodeVertices(t, data)
	if len(verts) != 6 {
		t.Fatalf("len(verts) = %d, want 6", len(verts))
	}
	for i, v := range verts {
		if v.x != 4 && v.x != 6 {
			t.Errorf("verts[%d].x = %v, want 4 or 6", i, v.x)
		}
		if v.y != 4 && v.y != 6 {
			t.Errorf("verts[%d].y = %v, want 4 or 6", i, v.y)
		}
	}
}

func TestTessellateAppendOrder(t *testing.T) {
	data := tessellate([]command{
		{kind: cmdFilledRect, v: [5]float32{0, 0, 1, 1}, color: novage.Red},
		{kind: cmdFilledRect, v: [5]float32{2, 2, 1, 1}, color: novage.Blue},
	})
	verts := decodeVertices(t, data)
	if len(verts) != 12 {
		t.Fatalf("len(verts) = %d, want 12", len(verts))
	}
	if verts[0].r != 1 || verts[0].b != 0 {
		t.Error("first rect vertices should be red")
	}
	if verts[6].b != 1 || verts[6].r != 0 {
		t.Error("second rect vertices should be blue")
	}
}

func TestMakeViewportUniform(t *testing.T) {
	buf := makeViewportUniform(800, 600)
	if len(buf) != viewportUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), viewportUniformSize)
	}
	w := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	h := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	if w != 800 || h != 600 {
		t.Errorf("viewport = (%v, %v), want (800, 600)", w, h)
	}
}
