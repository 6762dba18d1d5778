// SPDX-License-Identifier: MIT

package solver

import (
	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/colamd"
	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/sparse"
	"github.com/katalvlaran/sparselu/trisolve"
)

// Factorization holds the factors of one matrix and solves with them.
type Factorization struct {
	*factor.Factors

	// Ordering is the ordering that produced PermC.
	Ordering Ordering
	// Stats are the COLAMD/SYMAMD statistics, zero for Natural and User.
	Stats colamd.Stats
}

// N returns the order of the factored matrix.
func (f *Factorization) N() int { return f.U.NCol }

// Factorize orders, preorders and factors the square matrix a.
//
// A zero pivot returns the complete factorization together with a
// *factor.SingularError; solving with it is refused.
//
// Errors: *ArgError (ErrNilMatrix, ErrNotSquare, ErrNoValues,
// ErrBadOrdering), *factor.SingularError, *lumem.MemoryError, all wrapped.
func Factorize(a *sparse.CompCol, opts ...Option) (*Factorization, error) {
	o := gatherOptions(opts)
	switch {
	case a == nil:
		return nil, solverErrorf(opFactorize, argError(ArgMatrix, ErrNilMatrix))
	case a.NRow != a.NCol:
		return nil, solverErrorf(opFactorize, argError(ArgMatrix, ErrNotSquare))
	case a.Val == nil:
		return nil, solverErrorf(opFactorize, argError(ArgMatrix, ErrNoValues))
	}

	permC, st, err := o.computePermC(a)
	if err != nil {
		return nil, err
	}
	ac, tree, permC, err := Preorder(a, permC, o.symmetric)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("solver: ordered", "ordering", o.ordering.String(), "n", a.NCol, "nnz", a.Nnz())

	// Errors from the engine already carry its operation tag.
	fs, err := factor.Factorize(ac, tree, permC, nil, o.factorOptions()...)
	if fs == nil {
		return nil, err
	}
	f := &Factorization{Factors: fs, Ordering: o.ordering, Stats: st}
	return f, err
}

// Solve overwrites every column of b with the solution of op(A)·x = b.
//
// Errors: *ArgError (ErrNilMatrix, ErrDimensionMismatch), factor.ErrSingular
// when the factorization has a zero pivot, trisolve.ErrBadTranspose.
func (f *Factorization) Solve(b *sparse.Dense, tA blas.Transpose) error {
	switch {
	case b == nil:
		return solverErrorf(opSolve, argError(ArgRHS, ErrNilMatrix))
	case b.NRow != f.N():
		return solverErrorf(opSolve, argError(ArgRHS, ErrDimensionMismatch))
	}
	if col := f.Info(); col != 0 {
		return solverErrorf(opSolve, &factor.SingularError{Col: col})
	}
	return trisolve.Solve(tA, f.L, f.U, f.PermC, f.PermR, b)
}

// Solve factors a and overwrites b with the solution of A·X = B. The
// factorization is returned for reuse, also when it is singular.
func Solve(a *sparse.CompCol, b *sparse.Dense, opts ...Option) (*Factorization, error) {
	if b == nil {
		return nil, solverErrorf(opSolve, argError(ArgRHS, ErrNilMatrix))
	}
	if a != nil && b.NRow != a.NRow {
		return nil, solverErrorf(opSolve, argError(ArgRHS, ErrDimensionMismatch))
	}
	f, err := Factorize(a, opts...)
	if err != nil {
		return f, err
	}
	return f, f.Solve(b, blas.NoTrans)
}
