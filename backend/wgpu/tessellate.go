// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/novage/novage"
)

// vertexStride is the byte stride per vertex in the primitive pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 24 bytes per vertex.
const vertexStride = 24

// tessellate converts accumulated commands into triangle vertex data in
// append order. Coordinates stay in render space; the vertex shader
// maps them to NDC.
func tessellate(cmds []command) []byte {
	total := 0
	for i := range cmds {
		total += cmds[i].vertexCount()
	}
	buf := make([]byte, 0, total*vertexStride)
	for i := range cmds {
		buf = appendCommandVertices(buf, &cmds[i])
	}
	return buf
}

func (c *command) vertexCount() int {
	switch c.kind {
	case cmdFilledRect, cmdLine:
		return 6
	case cmdFilledCircle:
		return 3 * c.segments
	}
	return 0
}

func appendCommandVertices(buf []byte, cmd *command) []byte {
	switch cmd.kind {
	case cmdFilledRect:
		x, y, w, h := cmd.v[0], cmd.v[1], cmd.v[2], cmd.v[3]
		return appendQuad(buf,
			[2]float32{x, y},
			[2]float32{x + w, y},
			[2]float32{x + w, y + h},
			[2]float32{x, y + h},
			cmd.color)

	case cmdFilledCircle:
		// Fan from the center, one triangle per segment.
		cx, cy, r := cmd.v[0], cmd.v[1], cmd.v[2]
		step := 2 * math32.Pi / float32(cmd.segments)
		for i := 0; i < cmd.segments; i++ {
			a0 := float32(i) * step
			a1 := float32(i+1) * step
			buf = appendVertex(buf, cx, cy, cmd.color)
			buf = appendVertex(buf, cx+r*math32.Cos(a0), cy+r*math32.Sin(a0), cmd.color)
			buf = appendVertex(buf, cx+r*math32.Cos(a1), cy+r*math32.Sin(a1), cmd.color)
		}
		return buf

	case cmdLine:
		x0, y0, x1, y1, t := cmd.v[0], cmd.v[1], cmd.v[2], cmd.v[3], cmd.v[4]
		if t <= 0 {
			t = 1
		}
		dx, dy := x1-x0, y1-y0
		length := math32.Hypot(dx, dy)
		if length == 0 {
			half := t / 2
			return appendQuad(buf,
				[2]float32{x0 - half, y0 - half},
				[2]float32{x0 + half, y0 - half},
				[2]float32{x0 + half, y0 + half},
				[2]float32{x0 - half, y0 + half},
				cmd.color)
		}
		nx, ny := -dy/length*t/2, dx/length*t/2
		return appendQuad(buf,
			[2]float32{x0 + nx, y0 + ny},
			[2]float32{x1 + nx, y1 + ny},
			[2]float32{x1 - nx, y1 - ny},
			[2]float32{x0 - nx, y0 - ny},
			cmd.color)
	}
	return buf
}

// appendQuad appends the two triangles of a quad given in winding
// order: (p0, p1, p2) and (p0, p2, p3).
func appendQuad(buf []byte, p0, p1, p2, p3 [2]float32, c novage.RGBA) []byte {
	buf = appendVertex(buf, p0[0], p0[1], c)
	buf = appendVertex(buf, p1[0], p1[1], c)
	buf = appendVertex(buf, p2[0], p2[1], c)
	buf = appendVertex(buf, p0[0], p0[1], c)
	buf = appendVertex(buf, p2[0], p2[1], c)
	buf = appendVertex(buf, p3[0], p3[1], c)
	return buf
}

func appendVertex(buf []byte, x, y float32, c novage.RGBA) []byte {
	var v [vertexStride]byte
	binary.LittleEndian.PutUint32(v[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(v[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(v[8:12], math.Float32bits(float32(c.R)))
	binary.LittleEndian.PutUint32(v[12:16], math.Float32bits(float32(c.G)))
	binary.LittleEndian.PutUint32(v[16:20], math.Float32bits(float32(c.B)))
	binary.LittleEndian.PutUint32(v[20:24], math.Float32bits(float32(c.A)))
	return append(buf, v[:]...)
}

// makeViewportUniform builds the 16-byte viewport uniform: width and
// height in the first two floats, the rest padding.
func makeViewportUniform(w, h uint32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	return buf
}

// viewportUniformSize is the byte size of the viewport uniform buffer.
const viewportUniformSize = 16
