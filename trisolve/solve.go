// SPDX-License-Identifier: MIT

package trisolve

import (
	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/kernel"
	"github.com/katalvlaran/sparselu/sparse"
)

// Solve overwrites every column of b with the solution of op(A)·x = b,
// where Pr·A·Pc = L·U. ConjTrans is Trans for real data.
//
// permC maps an original column to its position in A·Pc and permR an
// original row to its pivot position, as in factor.Factors.
//
// Errors: ErrNilFactors, ErrDimensionMismatch, ErrBadTranspose (wrapped).
func Solve(tA blas.Transpose, l *sparse.SuperNodal, u *sparse.CompCol, permC, permR []int, b *sparse.Dense) error {
	if err := checkFactors(l, u); err != nil {
		return trisolveErrorf(opSolve, err)
	}
	if b == nil {
		return trisolveErrorf(opSolve, ErrNilFactors)
	}
	n := l.NCol
	if b.NRow != n || len(permC) != n || len(permR) != n {
		return trisolveErrorf(opSolve, ErrDimensionMismatch)
	}

	soln := make([]float64, n)
	switch tA {
	case blas.NoTrans:
		for j := 0; j < b.NCol; j++ {
			col := b.Col(j)
			for k, p := range permR {
				soln[p] = col[k]
			}
			copy(col, soln)
		}
		forward(l, b)
		backward(l, u, b)
		for j := 0; j < b.NCol; j++ {
			col := b.Col(j)
			for k, p := range permC {
				soln[k] = col[p]
			}
			copy(col, soln)
		}
	case blas.Trans, blas.ConjTrans:
		for j := 0; j < b.NCol; j++ {
			col := b.Col(j)
			for k, p := range permC {
				soln[p] = col[k]
			}
			upperTrans(l, u, soln)
			lowerTrans(l, soln)
			for k, p := range permR {
				col[k] = soln[p]
			}
		}
	default:
		return trisolveErrorf(opSolve, ErrBadTranspose)
	}
	return nil
}

func checkFactors(l *sparse.SuperNodal, u *sparse.CompCol) error {
	if l == nil || u == nil {
		return ErrNilFactors
	}
	if l.NRow != l.NCol || u.NCol != l.NCol || len(u.ColPtr) != l.NCol+1 {
		return ErrDimensionMismatch
	}
	return nil
}

// forward solves L·Y = B in place, supernode by supernode.
func forward(l *sparse.SuperNodal, b *sparse.Dense) {
	n, nrhs := l.NCol, b.NCol
	var work []float64
	for k := 0; k < l.NSuper; k++ {
		fsupc := l.SupToCol[k]
		nsupc := l.SupToCol[k+1] - fsupc
		rows, nsupr := l.SuperRows(k)
		nrow := nsupr - nsupc
		lval := l.Val[l.ValPtr[fsupc]:]

		if nsupc == 1 {
			for j := 0; j < nrhs; j++ {
				col := b.Col(j)
				xj := col[fsupc]
				for i, r := range rows[1:] {
					col[r] -= xj * lval[1+i]
				}
			}
			continue
		}

		kernel.Trsm(blas.Lower, blas.NoTrans, blas.Unit, nsupc, nrhs, 1, lval, nsupr, b.Data[fsupc:], b.LD)
		if nrow == 0 {
			continue
		}
		if work == nil {
			work = make([]float64, n*nrhs)
		}
		kernel.Gemm(blas.NoTrans, blas.NoTrans, nrow, nrhs, nsupc, 1, lval[nsupc:], nsupr,
			b.Data[fsupc:], b.LD, 0, work, n)
		for j := 0; j < nrhs; j++ {
			col := b.Col(j)
			w := work[j*n : j*n+nrow]
			for i, r := range rows[nsupc:] {
				col[r] -= w[i]
				w[i] = 0
			}
		}
	}
}

// backward solves U·X = Y in place, supernode by supernode.
func backward(l *sparse.SuperNodal, u *sparse.CompCol, b *sparse.Dense) {
	nrhs := b.NCol
	for k := l.NSuper - 1; k >= 0; k-- {
		fsupc := l.SupToCol[k]
		nsupc := l.SupToCol[k+1] - fsupc
		_, nsupr := l.SuperRows(k)
		lval := l.Val[l.ValPtr[fsupc]:]

		if nsupc == 1 {
			for j := 0; j < nrhs; j++ {
				b.Col(j)[fsupc] /= lval[0]
			}
		} else {
			kernel.Trsm(blas.Upper, blas.NoTrans, blas.NonUnit, nsupc, nrhs, 1, lval, nsupr, b.Data[fsupc:], b.LD)
		}

		for j := 0; j < nrhs; j++ {
			col := b.Col(j)
			for jcol := fsupc; jcol < fsupc+nsupc; jcol++ {
				xj := col[jcol]
				for p := u.ColPtr[jcol]; p < u.ColPtr[jcol+1]; p++ {
					col[u.RowInd[p]] -= xj * u.Val[p]
				}
			}
		}
	}
}
