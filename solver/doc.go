// SPDX-License-Identifier: MIT

// Package solver chains the engines of sparselu into a direct solver for
// A·X = B:
//
//	permC  := column ordering of A (natural, COLAMD, SYMAMD or given)
//	AC, T  := A·Pc and its column elimination tree, postordered
//	L, U   := Pr·A·Pc = L·U with threshold partial pivoting
//	X      := Pc·U⁻¹·L⁻¹·Pr·B
//
// Factorize runs the first three steps and returns a Factorization that
// can solve any number of right-hand sides, plain or transposed. Solve is
// the one-shot form.
//
// Errors follow the numeric status convention through Info: 0 on success,
// the 1-based column of the first zero pivot, bytes needed plus n when the
// factor storage could not grow, and -k when argument k was invalid.
package solver
