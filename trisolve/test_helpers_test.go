// SPDX-License-Identifier: MIT

package trisolve_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparselu/etree"
	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/sparse"
)

// randomMatrix returns an n×n matrix with about density·n random entries
// per column and diag added on the diagonal.
func randomMatrix(rng *rand.Rand, n int, density, diag float64) *sparse.CompCol {
	var rows, cols []int
	var vals []float64
	for j := 0; j < n; j++ {
		rows, cols, vals = append(rows, j), append(cols, j), append(vals, diag)
		for i := 0; i < n; i++ {
			if rng.Float64() < density {
				rows, cols, vals = append(rows, i), append(cols, j), append(vals, 2*rng.Float64()-1)
			}
		}
	}
	a, _ := sparse.FromTriplets(n, n, rows, cols, vals)
	return a
}

func tridiagonal(t *testing.T, n int) *sparse.CompCol {
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

// MustFactor orders a by permC, postorders it and factors it.
func MustFactor(t *testing.T, a *sparse.CompCol, permC []int, opts ...factor.Option) *factor.Factors {
	t.Helper()
	ac, err := sparse.PermuteCols(a, permC)
	require.NoError(t, err)
	et, err := etree.Column(ac.ColBeg, ac.ColEnd, ac.RowInd, ac.NRow, ac.NCol)
	require.NoError(t, err)
	post := etree.Postorder(et)
	final := make([]int, a.NCol)
	for j, p := range permC {
		final[j] = post[p]
	}
	ac, err = sparse.PermuteCols(a, final)
	require.NoError(t, err)
	f, err := factor.Factorize(ac, etree.Renumber(et, post), final, nil, opts...)
	require.NoError(t, err)
	return f
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// relResidual returns ‖op(A)·x − b‖∞ / ‖b‖∞.
func relResidual(t *testing.T, a *sparse.CompCol, x, b []float64, trans bool) float64 {
	t.Helper()
	ax := make([]float64, len(b))
	require.NoError(t, a.MulVec(ax, x, trans))
	num, den := 0.0, 0.0
	for i := range b {
		num = math.Max(num, math.Abs(ax[i]-b[i]))
		den = math.Max(den, math.Abs(b[i]))
	}
	return num / den
}
