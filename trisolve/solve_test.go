// SPDX-License-Identifier: MIT

package trisolve_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/sparse"
	"github.com/katalvlaran/sparselu/trisolve"
)

func TestSolveTridiagonal(t *testing.T) {
	for _, relax := range []int{1, 5} {
		f := MustFactor(t, tridiagonal(t, 4), identity(4), factor.WithRelax(relax))
		for _, tA := range []blas.Transpose{blas.NoTrans, blas.Trans} {
			b, err := sparse.NewDenseFrom(4, 1, []float64{1, 1, 1, 1})
			require.NoError(t, err)
			require.NoError(t, trisolve.Solve(tA, f.L, f.U, f.PermC, f.PermR, b))
			assert.InDeltaSlice(t, []float64{0.4, 0.2, 0.2, 0.4}, b.Col(0), 1e-14, "relax %d %c", relax, tA)
		}
	}
}

func TestSolveRandom(t *testing.T) {
	cases := []struct {
		name string
		opts []factor.Option
	}{
		{"Defaults", nil},
		{"Panels", []factor.Option{factor.WithRelax(1), factor.WithPanelSize(4)}},
		{"WideSupernodes", []factor.Option{factor.WithRelax(20)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(5))
			const n, nrhs = 50, 3
			a := randomMatrix(rng, n, 0.1, 4)
			f := MustFactor(t, a, rng.Perm(n), tc.opts...)

			for _, tA := range []blas.Transpose{blas.NoTrans, blas.Trans, blas.ConjTrans} {
				rhs := make([]float64, n*nrhs)
				for i := range rhs {
					rhs[i] = rng.NormFloat64()
				}
				b, err := sparse.NewDenseFrom(n, nrhs, append([]float64(nil), rhs...))
				require.NoError(t, err)
				require.NoError(t, trisolve.Solve(tA, f.L, f.U, f.PermC, f.PermR, b))
				for j := 0; j < nrhs; j++ {
					res := relResidual(t, a, b.Col(j), rhs[j*n:(j+1)*n], tA != blas.NoTrans)
					assert.Less(t, res, 1e-10, "%c rhs %d", tA, j)
				}
			}
		})
	}
}

func TestTriangularSolves(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const n = 30
	f := MustFactor(t, randomMatrix(rng, n, 0.15, 3), identity(n), factor.WithRelax(3))
	l, u := f.Dense()
	lm, um := l.ToMat(), u.ToMat()

	want := make([]float64, n)
	for i := range want {
		want[i] = rng.Float64()
	}
	xv := mat.NewVecDense(n, want)

	cases := []struct {
		name  string
		m     mat.Matrix
		solve func(x []float64) error
	}{
		{"L", lm, func(x []float64) error { return trisolve.LowerSolve(blas.NoTrans, f.L, x) }},
		{"Lt", lm.T(), func(x []float64) error { return trisolve.LowerSolve(blas.Trans, f.L, x) }},
		{"U", um, func(x []float64) error { return trisolve.UpperSolve(blas.NoTrans, f.L, f.U, x) }},
		{"Ut", um.T(), func(x []float64) error { return trisolve.UpperSolve(blas.ConjTrans, f.L, f.U, x) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var bv mat.VecDense
			bv.MulVec(tc.m, xv)
			x := append([]float64(nil), bv.RawVector().Data...)
			require.NoError(t, tc.solve(x))
			assert.InDeltaSlice(t, want, x, 1e-10)
		})
	}
}

func TestSolveErrors(t *testing.T) {
	f := MustFactor(t, tridiagonal(t, 3), identity(3))
	b, err := sparse.NewDense(3, 1)
	require.NoError(t, err)

	err = trisolve.Solve(blas.NoTrans, nil, f.U, f.PermC, f.PermR, b)
	assert.ErrorIs(t, err, trisolve.ErrNilFactors)

	err = trisolve.Solve(blas.NoTrans, f.L, f.U, f.PermC, f.PermR, nil)
	assert.ErrorIs(t, err, trisolve.ErrNilFactors)

	short, err := sparse.NewDense(2, 1)
	require.NoError(t, err)
	err = trisolve.Solve(blas.NoTrans, f.L, f.U, f.PermC, f.PermR, short)
	assert.ErrorIs(t, err, trisolve.ErrDimensionMismatch)

	err = trisolve.Solve(blas.Transpose('X'), f.L, f.U, f.PermC, f.PermR, b)
	assert.ErrorIs(t, err, trisolve.ErrBadTranspose)

	err = trisolve.LowerSolve(blas.NoTrans, f.L, make([]float64, 2))
	assert.ErrorIs(t, err, trisolve.ErrDimensionMismatch)

	err = trisolve.UpperSolve(blas.Transpose('X'), f.L, f.U, make([]float64, 3))
	assert.ErrorIs(t, err, trisolve.ErrBadTranspose)
}
