// SPDX-License-Identifier: MIT

// Package factor computes the supernodal LU factorization Pr·A·Pc = L·U of a
// sparse matrix with threshold partial pivoting.
//
// The input is A·Pc in permuted-column form together with its column
// elimination tree, postordered so that relaxed supernodes (small leaf
// subtrees) are contiguous column ranges. Columns are processed left to
// right, either a whole relaxed supernode at a time or in panels of up to
// PanelSize columns that never cross a relaxed-supernode boundary.
//
// Per panel:
//
//  1. a symbolic depth-first search over the graph of the finished L
//     columns finds the supernodal segments each panel column depends on,
//     in topological order;
//  2. the panel is updated by every earlier supernode at once, with closed
//     forms for segments of one to three columns and dense triangular solve
//     plus matrix-vector product otherwise (row-blocked for wide supernodes);
//  3. each column then finishes its updates from supernodes inside the
//     panel, chooses its pivot, and prunes the searchable row lists of the
//     supernodes that contain the pivot row.
//
// Values are accumulated in a dense sparse accumulator (SPA) per panel
// column that is all-zero again once the column has been stored.
//
// Pivot rule: the preferred row (WithPermR) when it clears the threshold,
// else the diagonal row when it clears the threshold, else the row of
// largest magnitude. A column without any nonzero candidate is reported as
// a *SingularError; factorization still completes so the result exposes a
// maximal partial L·U. A column whose structure holds no candidate row at
// all receives one structural zero row so the search always has a
// candidate.
//
// Storage comes from a lumem.GlobalLU; WithManager selects a fixed
// caller-owned workspace. The returned factors alias that storage.
package factor
