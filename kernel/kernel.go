// SPDX-License-Identifier: MIT

// Package kernel exposes the dense Level-2/3 operations the factorization and
// solve engines run on supernodal blocks.
//
// Every routine takes column-major operands with an explicit leading
// dimension, the layout the supernodal storage uses, and forwards to gonum's
// row-major blas64 implementation by reading each column-major block as its
// row-major transpose. Zero-sized calls return immediately.
//
// Operands are caller-owned slices; no routine allocates.
package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

func flipUplo(ul blas.Uplo) blas.Uplo {
	if ul == blas.Upper {
		return blas.Lower
	}
	return blas.Upper
}

func flipTrans(t blas.Transpose) blas.Transpose {
	if t == blas.NoTrans {
		return blas.Trans
	}
	return blas.NoTrans
}

// Trsv solves op(A)·x = b in place, where A is an n×n triangular matrix.
func Trsv(ul blas.Uplo, tA blas.Transpose, d blas.Diag, n int, a []float64, lda int, x []float64, incX int) {
	if n == 0 {
		return
	}
	blas64.Implementation().Dtrsv(flipUplo(ul), flipTrans(tA), d, n, a, lda, x, incX)
}

// Gemv computes y = alpha·op(A)·x + beta·y for an m×n matrix A.
func Gemv(tA blas.Transpose, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	if m == 0 || n == 0 {
		return
	}
	blas64.Implementation().Dgemv(flipTrans(tA), n, m, alpha, a, lda, x, incX, beta, y, incY)
}

// Gemm computes C = alpha·op(A)·op(B) + beta·C, with C m×n and inner
// dimension k.
func Gemm(tA, tB blas.Transpose, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	if m == 0 || n == 0 {
		return
	}
	blas64.Implementation().Dgemm(tB, tA, n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
}

// Trsm solves op(A)·X = alpha·B in place for the m×n matrix B, A being an
// m×m triangular matrix applied from the left.
func Trsm(ul blas.Uplo, tA blas.Transpose, d blas.Diag, m, n int, alpha float64, a []float64, lda int, b []float64, ldb int) {
	if m == 0 || n == 0 {
		return
	}
	blas64.Implementation().Dtrsm(blas.Right, flipUplo(ul), tA, d, n, m, alpha, a, lda, b, ldb)
}

// LSolve overwrites rhs[:ncol] with L⁻¹·rhs for the unit lower-triangular
// leading ncol×ncol block of m.
func LSolve(ncol, lda int, m, rhs []float64) {
	Trsv(blas.Lower, blas.NoTrans, blas.Unit, ncol, m, lda, rhs, 1)
}

// MatVec accumulates y += M·x for the nrow×ncol block M.
func MatVec(nrow, ncol, lda int, m, x, y []float64) {
	Gemv(blas.NoTrans, nrow, ncol, 1, m, lda, x, 1, 1, y, 1)
}
