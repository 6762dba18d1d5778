// SPDX-License-Identifier: MIT

// Package sparse defines the matrix storage variants consumed and produced by
// the solver engines.
//
// Formats (all 0-based, pointer arrays have exactly ncol+1 / nrow+1 entries and
// the last pointer equals the stored-entry count):
//
//	CompCol     column-compressed (NC), the canonical input format.
//	CompRow     row-compressed (NR).
//	PermCol     permuted column-compressed (NCP): per-column begin/end
//	             pointers into shared index/value arrays, produced by
//	             column preordering without copying entries.
//	SuperNodal  supernodal column-compressed (SC), the L factor layout.
//	Dense       column-major dense with an explicit leading dimension,
//	             used for right-hand sides and solutions.
//
// Row indices inside a CompCol column need not be sorted or unique; engines
// that care (the ordering engine) normalize on their own. Builders in this
// package (FromTriplets, Transpose) always emit sorted, duplicate-free
// columns.
//
// Errors:
//
//   - ErrBadShape          negative dimensions or mismatched slice lengths.
//   - ErrBadPointers       pointer arrays that are not non-decreasing from 0.
//   - ErrIndexOutOfRange   a stored index outside its dimension.
//   - ErrDimensionMismatch operands whose shapes do not agree.
//   - ErrNilMatrix         a nil receiver or argument.
package sparse
