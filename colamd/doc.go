// SPDX-License-Identifier: MIT

// Package colamd computes approximate minimum degree column orderings.
//
// Order finds a column permutation Q of a sparse matrix A such that the LU
// factorization of AQ (equivalently the Cholesky factorization of (AQ)ᵗ(AQ))
// stays sparse. It works on the column pattern of A directly, never forming
// AᵗA, and runs entirely inside one caller-supplied integer workspace:
//
//	a[0 : nnz]          column form of A (input)
//	a[nnz : 2·nnz]      row form of A (built on entry)
//	a[2·nnz : tail]     elbow room for pivot rows
//	a[tail : len(a)]    column and row records
//
// Garbage collection compacts the column and row forms in place when the
// elbow room runs out; it changes only performance, never the result.
//
// Symmetric orders a symmetric pattern (A+Aᵗ) by building the edge-incidence
// matrix M with MᵗM having the pattern of A+Aᵗ and ordering M with Order.
//
// Knobs and Stats are the fixed-size configuration and statistics arrays;
// DefaultKnobs returns the documented defaults.
//
// Errors are reported both as wrapped sentinels and as a negative status
// code in Stats[StatStatus]:
//
//   - ErrNilArray            a, p (or perm) missing or too short.
//   - ErrNegativeDimension   n_row or n_col below zero.
//   - ErrNnzNegative         p[n_col] below zero.
//   - ErrP0Nonzero           p[0] not zero.
//   - ErrWorkspaceTooSmall   len(a) below Minimum(nnz, n_row, n_col).
//   - ErrColLengthNegative   column pointers decrease.
//   - ErrRowIndexOutOfRange  a row index outside [0, n_row).
//
// Unsorted or duplicate row indices are not errors: they are normalized and
// Stats[StatStatus] is set to StatusJumbled.
package colamd
