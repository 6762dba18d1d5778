// SPDX-License-Identifier: MIT

package solver_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/colamd"
	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/lumem"
	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

// OrderingSuite runs the solve contract under one ordering.
type OrderingSuite struct {
	suite.Suite
	opts []solver.Option
}

func (s *OrderingSuite) TestTridiagonal() {
	a := MustTridiagonal(s.T(), 4)
	b, err := sparse.NewDenseFrom(4, 1, []float64{1, 1, 1, 1})
	s.Require().NoError(err)
	f, err := solver.Solve(a, b, s.opts...)
	s.Require().NoError(err)
	s.Zero(f.Info())
	s.InDeltaSlice([]float64{0.4, 0.2, 0.2, 0.4}, b.Col(0), 1e-14)
}

func (s *OrderingSuite) TestRandom() {
	rng := rand.New(rand.NewSource(21))
	const n = 50
	a := randomMatrix(rng, n, 0.1, 2)
	f, err := solver.Factorize(a, s.opts...)
	s.Require().NoError(err)
	s.True(sparse.IsPermutation(f.PermC))
	s.True(sparse.IsPermutation(f.PermR))
	s.Equal(n, f.N())

	for _, tA := range []blas.Transpose{blas.NoTrans, blas.Trans} {
		x := make([]float64, n)
		for i := range x {
			x[i] = float64(i%7) - 3
		}
		rhs := make([]float64, n)
		s.Require().NoError(a.MulVec(rhs, x, tA == blas.Trans))
		b, err := sparse.NewDenseFrom(n, 1, append([]float64(nil), rhs...))
		s.Require().NoError(err)
		s.Require().NoError(f.Solve(b, tA))
		for i := range x {
			s.InDelta(x[i], b.Col(0)[i], 1e-9, "%c x[%d]", tA, i)
		}
	}
}

func TestOrderings(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	user := rng.Perm(50)
	cases := map[string][]solver.Option{
		"Natural":       {solver.WithOrdering(solver.Natural)},
		"ColAMD":        nil,
		"SymAMD":        {solver.WithOrdering(solver.SymAMD)},
		"SymmetricMode": {solver.WithOrdering(solver.SymAMD), solver.WithSymmetricMode()},
		"Panels":        {solver.WithFactorOptions(factor.WithRelax(1), factor.WithPanelSize(3))},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			suite.Run(t, &OrderingSuite{opts: opts})
		})
	}
	t.Run("User", func(t *testing.T) {
		rng := rand.New(rand.NewSource(21))
		a := randomMatrix(rng, 50, 0.1, 2)
		f, err := solver.Factorize(a, solver.WithPermC(user))
		require.NoError(t, err)
		assert.Equal(t, solver.User, f.Ordering)
	})
}

func TestPermC(t *testing.T) {
	a := MustTridiagonal(t, 5)
	p, st, err := solver.PermC(a, solver.Natural)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p)
	assert.Equal(t, colamd.Stats{}, st)

	for _, ord := range []solver.Ordering{solver.ColAMD, solver.SymAMD} {
		p, st, err = solver.PermC(a, ord)
		require.NoError(t, err, ord.String())
		assert.True(t, sparse.IsPermutation(p), ord.String())
		assert.False(t, st.Jumbled())
	}

	_, _, err = solver.PermC(a, solver.User, solver.WithPermC([]int{0, 1}))
	assert.ErrorIs(t, err, solver.ErrBadOrdering)
	assert.Equal(t, -solver.ArgPermC, solver.Info(err, 5))

	_, _, err = solver.PermC(a, solver.Ordering(42))
	assert.ErrorIs(t, err, solver.ErrBadOrdering)

	rect, err := sparse.FromTriplets(3, 2, []int{0, 1}, []int{0, 1}, nil)
	require.NoError(t, err)
	_, _, err = solver.PermC(rect, solver.SymAMD)
	assert.ErrorIs(t, err, solver.ErrNotSquare)
	p, _, err = solver.PermC(rect, solver.ColAMD)
	require.NoError(t, err)
	assert.True(t, sparse.IsPermutation(p))
}

func TestPreorder(t *testing.T) {
	// Column 0 is a root, column 1 feeds column 2: arrow into the last column.
	a, err := sparse.FromTriplets(3, 3,
		[]int{0, 2, 1, 2, 2},
		[]int{0, 0, 1, 1, 2},
		[]float64{1, 1, 1, 1, 1})
	require.NoError(t, err)

	ac, tree, permC, err := solver.Preorder(a, []int{2, 1, 0}, false)
	require.NoError(t, err)
	assert.True(t, sparse.IsPermutation(permC))
	for j, p := range tree {
		assert.Greater(t, p, j, "parent of %d", j)
	}
	for j := 0; j < 3; j++ {
		rows, _ := a.Column(j)
		got, _ := ac.Column(permC[j])
		assert.Equal(t, rows, got)
	}

	_, tree, permC, err = solver.Preorder(a, []int{2, 1, 0}, true)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, permC)
	assert.Len(t, tree, 3)

	_, _, _, err = solver.Preorder(a, []int{0, 0, 1}, false)
	assert.ErrorIs(t, err, sparse.ErrBadPermutation)
	assert.Equal(t, -solver.ArgPermC, solver.Info(err, 3))
}

func TestPreorderSymmetricTree(t *testing.T) {
	// Diagonal plus a full last row: AᵗA couples every column pair through
	// row 3, while A+Aᵗ only joins each column to the hub.
	a, err := sparse.FromTriplets(4, 4,
		[]int{0, 3, 1, 3, 2, 3, 3},
		[]int{0, 0, 1, 1, 2, 2, 3},
		[]float64{4, 1, 4, 1, 4, 1, 4})
	require.NoError(t, err)

	_, tree, _, err := solver.Preorder(a, []int{0, 1, 2, 3}, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, tree)

	_, tree, permC, err := solver.Preorder(a, []int{0, 1, 2, 3}, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, permC)
	assert.Equal(t, []int{3, 3, 3, 4}, tree)

	// Numbering the hub first turns the star into a chain.
	_, tree, permC, err = solver.Preorder(a, []int{1, 2, 3, 0}, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 0}, permC)
	assert.Equal(t, []int{1, 2, 3, 4}, tree)

	rect, err := sparse.FromTriplets(3, 2, []int{0, 1}, []int{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	_, _, _, err = solver.Preorder(rect, []int{0, 1}, true)
	assert.ErrorIs(t, err, solver.ErrNotSquare)
}

func TestSingular(t *testing.T) {
	a, err := sparse.FromTriplets(3, 3,
		[]int{0, 1, 0, 1, 2},
		[]int{0, 0, 1, 1, 2},
		[]float64{1, 2, 2, 4, 1})
	require.NoError(t, err)
	b, err := sparse.NewDenseFrom(3, 1, []float64{1, 2, 3})
	require.NoError(t, err)

	f, err := solver.Solve(a, b, solver.WithOrdering(solver.Natural))
	require.Error(t, err)
	require.NotNil(t, f)
	assert.ErrorIs(t, err, factor.ErrSingular)
	assert.Equal(t, 2, solver.Info(err, 3))
	assert.Equal(t, []float64{1, 2, 3}, b.Col(0))

	err = f.Solve(b, blas.NoTrans)
	assert.ErrorIs(t, err, factor.ErrSingular)
}

func TestArguments(t *testing.T) {
	a := MustTridiagonal(t, 3)
	b, err := sparse.NewDense(3, 1)
	require.NoError(t, err)

	cases := []struct {
		name string
		run  func() error
		want error
		info int
	}{
		{"NilMatrix", func() error { _, err := solver.Factorize(nil); return err }, solver.ErrNilMatrix, -solver.ArgMatrix},
		{"NotSquare", func() error {
			r, _ := sparse.FromTriplets(3, 2, []int{0, 1}, []int{0, 1}, []float64{1, 1})
			_, err := solver.Factorize(r)
			return err
		}, solver.ErrNotSquare, -solver.ArgMatrix},
		{"PatternOnly", func() error {
			p, _ := sparse.FromTriplets(2, 2, []int{0, 1}, []int{0, 1}, nil)
			_, err := solver.Factorize(p)
			return err
		}, solver.ErrNoValues, -solver.ArgMatrix},
		{"NilRHS", func() error { _, err := solver.Solve(a, nil); return err }, solver.ErrNilMatrix, -solver.ArgRHS},
		{"ShortRHS", func() error {
			short, _ := sparse.NewDense(2, 1)
			_, err := solver.Solve(a, short)
			return err
		}, solver.ErrDimensionMismatch, -solver.ArgRHS},
		{"BadUserPerm", func() error {
			_, err := solver.Solve(a, b, solver.WithPermC([]int{1, 1, 0}))
			return err
		}, solver.ErrBadOrdering, -solver.ArgPermC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var ae *solver.ArgError
			assert.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.info, solver.Info(err, 3))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := solver.Factorize(nil)
	assert.EqualError(t, err, "Factorize: argument 1: solver: nil matrix")

	singular, err := sparse.FromTriplets(2, 2, []int{0, 1, 0, 1}, []int{0, 0, 1, 1}, []float64{1, 1, 1, 1})
	require.NoError(t, err)
	_, err = solver.Factorize(singular, solver.WithOrdering(solver.Natural))
	assert.EqualError(t, err, "Factorize: factor: zero pivot in column 2")

	f, err := solver.Factorize(MustTridiagonal(t, 3))
	require.NoError(t, err)
	b, err := sparse.NewDense(3, 1)
	require.NoError(t, err)
	err = f.Solve(b, blas.Transpose(0))
	assert.EqualError(t, err, "Solve: trisolve: invalid transpose mode")
}

func TestMemoryExhaustion(t *testing.T) {
	a := MustTridiagonal(t, 6)
	mgr := lumem.NewManager(lumem.WithLimit(64))
	_, err := solver.Factorize(a, solver.WithFactorOptions(factor.WithManager(mgr)))
	require.Error(t, err)
	assert.ErrorIs(t, err, lumem.ErrOutOfMemory)
	assert.Greater(t, solver.Info(err, 6), 6)
}

func TestParseOrdering(t *testing.T) {
	for o := solver.Natural; o <= solver.User; o++ {
		got, err := solver.ParseOrdering(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := solver.ParseOrdering("metis")
	assert.ErrorIs(t, err, solver.ErrBadOrdering)
	assert.Equal(t, "unknown", solver.Ordering(-1).String())
	assert.Panics(t, func() { solver.WithLogger(nil) })
}

// randomMatrix returns an n×n matrix with about density·n random entries
// per column plus diag·I.
func randomMatrix(rng *rand.Rand, n int, density, diag float64) *sparse.CompCol {
	var rows, cols []int
	var vals []float64
	for j := 0; j < n; j++ {
		rows, cols, vals = append(rows, j), append(cols, j), append(vals, diag)
		for i := 0; i < n; i++ {
			if i != j && rng.Float64() < density {
				rows, cols, vals = append(rows, i), append(cols, j), append(vals, math.Round(100*(2*rng.Float64()-1))/100)
			}
		}
	}
	a, _ := sparse.FromTriplets(n, n, rows, cols, vals)
	return a
}

// MustTridiagonal returns the n×n matrix with 2 on the diagonal and 1 beside it.
func MustTridiagonal(t *testing.T, n int) *sparse.CompCol {
	t.Helper()
	var rows, cols []int
	var vals []float64
	for j := 0; j < n; j++ {
		for i := max(0, j-1); i <= min(n-1, j+1); i++ {
			rows, cols = append(rows, i), append(cols, j)
			if i == j {
				vals = append(vals, 2)
			} else {
				vals = append(vals, 1)
			}
		}
	}
	a, err := sparse.FromTriplets(n, n, rows, cols, vals)
	require.NoError(t, err)
	return a
}
