// SPDX-License-Identifier: MIT

// Package trisolve solves A·X = B and Aᵗ·X = B with the supernodal factors
// Pr·A·Pc = L·U produced by package factor.
//
// The forward solve walks the supernodes of L first to last: each diagonal
// block is a dense unit-lower triangular solve and the rows below it are
// updated with one dense matrix product. The backward solve walks them last
// to first against the non-unit upper triangle stored in the same blocks,
// then subtracts the columns of U kept outside them. Single-column
// supernodes take a scalar path.
//
// The transposed solve applies Pc first, solves against Uᵗ and then Lᵗ one
// right-hand side at a time, and finishes with Pr.
package trisolve
