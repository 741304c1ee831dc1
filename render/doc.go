// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package render defines the renderer collaborator interfaces consumed by
// the display layer: frame control, command batching, and render targets.
//
// All batch append operations take render-space coordinates: origin
// bottom-left, Y increasing upward, the renderer-native convention. The
// display layer owns the conversion from screen space and applies it
// exactly once per primitive; renderer implementations must not flip Y
// again. A software implementation that addresses image rows internally
// converts render-space Y to row indices as part of rasterization, which
// is raster addressing, not a second coordinate mapping.
//
// Commands accumulated into a batch are submitted in append order on
// Flush. There is no reordering or depth sorting: 2D primitives are
// painter's-algorithm composited.
package render
