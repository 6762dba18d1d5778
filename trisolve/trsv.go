// SPDX-License-Identifier: MIT

package trisolve

import (
	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/kernel"
	"github.com/katalvlaran/sparselu/sparse"
)

// LowerSolve overwrites x with the solution of op(L)·y = x for the unit
// lower-triangular factor L. x is indexed by pivot position.
func LowerSolve(tA blas.Transpose, l *sparse.SuperNodal, x []float64) error {
	if l == nil {
		return trisolveErrorf(opLowerSolve, ErrNilFactors)
	}
	if l.NRow != l.NCol || len(x) != l.NCol {
		return trisolveErrorf(opLowerSolve, ErrDimensionMismatch)
	}
	switch tA {
	case blas.NoTrans:
		b := &sparse.Dense{NRow: len(x), NCol: 1, LD: max(1, len(x)), Data: x}
		forward(l, b)
	case blas.Trans, blas.ConjTrans:
		lowerTrans(l, x)
	default:
		return trisolveErrorf(opLowerSolve, ErrBadTranspose)
	}
	return nil
}

// UpperSolve overwrites x with the solution of op(U)·y = x, U being held
// partly in the diagonal blocks of l and partly in u.
func UpperSolve(tA blas.Transpose, l *sparse.SuperNodal, u *sparse.CompCol, x []float64) error {
	if err := checkFactors(l, u); err != nil {
		return trisolveErrorf(opUpperSolve, err)
	}
	if len(x) != l.NCol {
		return trisolveErrorf(opUpperSolve, ErrDimensionMismatch)
	}
	switch tA {
	case blas.NoTrans:
		b := &sparse.Dense{NRow: len(x), NCol: 1, LD: max(1, len(x)), Data: x}
		backward(l, u, b)
	case blas.Trans, blas.ConjTrans:
		upperTrans(l, u, x)
	default:
		return trisolveErrorf(opUpperSolve, ErrBadTranspose)
	}
	return nil
}

// lowerTrans solves Lᵗ·y = x in place, last supernode first.
func lowerTrans(l *sparse.SuperNodal, x []float64) {
	for k := l.NSuper - 1; k >= 0; k-- {
		fsupc := l.SupToCol[k]
		lsupc := l.SupToCol[k+1]
		nsupc := lsupc - fsupc
		rows, nsupr := l.SuperRows(k)
		below := rows[nsupc:]
		for jcol := fsupc; jcol < lsupc; jcol++ {
			lval := l.Val[l.ValPtr[jcol]+nsupc : l.ValPtr[jcol+1]]
			s := x[jcol]
			for i, r := range below {
				s -= x[r] * lval[i]
			}
			x[jcol] = s
		}
		if nsupc > 1 {
			kernel.Trsv(blas.Lower, blas.Trans, blas.Unit, nsupc, l.Val[l.ValPtr[fsupc]:], nsupr, x[fsupc:], 1)
		}
	}
}

// upperTrans solves Uᵗ·y = x in place, first supernode first.
func upperTrans(l *sparse.SuperNodal, u *sparse.CompCol, x []float64) {
	for k := 0; k < l.NSuper; k++ {
		fsupc := l.SupToCol[k]
		lsupc := l.SupToCol[k+1]
		nsupc := lsupc - fsupc
		_, nsupr := l.SuperRows(k)
		for jcol := fsupc; jcol < lsupc; jcol++ {
			s := x[jcol]
			for p := u.ColPtr[jcol]; p < u.ColPtr[jcol+1]; p++ {
				s -= x[u.RowInd[p]] * u.Val[p]
			}
			x[jcol] = s
		}
		lval := l.Val[l.ValPtr[fsupc]:]
		if nsupc == 1 {
			x[fsupc] /= lval[0]
		} else {
			kernel.Trsv(blas.Upper, blas.Trans, blas.NonUnit, nsupc, lval, nsupr, x[fsupc:], 1)
		}
	}
}
