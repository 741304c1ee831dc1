// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package render

// BatchStats tracks batching behavior for performance monitoring.
type BatchStats struct {
	// DrawCalls is the number of submissions issued to the target.
	DrawCalls uint64

	// PrimitivesBatched is the total number of primitives appended.
	PrimitivesBatched uint64

	// BatchesFlushed is the number of batches flushed, including empty
	// ones.
	BatchesFlushed uint64
}

// Reset zeroes all counters.
func (s *BatchStats) Reset() {
	*s = BatchStats{}
}

// AvgPrimitivesPerBatch returns the mean number of primitives per flushed
// batch, or 0 if nothing has been flushed.
func (s BatchStats) AvgPrimitivesPerBatch() float64 {
	if s.BatchesFlushed == 0 {
		return 0
	}
	return float64(s.PrimitivesBatched) / float64(s.BatchesFlushed)
}
