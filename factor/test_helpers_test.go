// SPDX-License-Identifier: MIT

package factor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparselu/etree"
	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/sparse"
)

// tridiagonal returns the n×n matrix with 2 on the diagonal and 1 beside it.
func tridiagonal(t *testing.T, n int) *sparse.CompCol {
	t.Helper()
	var rows, cols []int
	var vals []float64
	for j := 0; j < n; j++ {
		for i := max(0, j-1); i <= min(n-1, j+1); i++ {
			rows = append(rows, i)
			cols = append(cols, j)
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

// fromRows builds a CompCol from a dense row-major literal.
func fromRows(t *testing.T, rows [][]float64) *sparse.CompCol {
	t.Helper()
	d, err := sparse.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, r := range rows {
		for j, v := range r {
			d.Set(i, j, v)
		}
	}
	return sparse.FromDense(d)
}

// randomMatrix returns an nrow×ncol matrix with about density·nrow entries
// per column plus a diagonal of weight diag (0 leaves the diagonal random).
func randomMatrix(rng *rand.Rand, nrow, ncol int, density, diag float64) *sparse.CompCol {
	var rows, cols []int
	var vals []float64
	for j := 0; j < ncol; j++ {
		for i := 0; i < nrow; i++ {
			if i == j && diag != 0 {
				rows, cols, vals = append(rows, i), append(cols, j), append(vals, diag)
				continue
			}
			if rng.Float64() < density {
				rows, cols, vals = append(rows, i), append(cols, j), append(vals, 2*rng.Float64()-1)
			}
		}
	}
	a, _ := sparse.FromTriplets(nrow, ncol, rows, cols, vals)
	return a
}

// prepare permutes the columns of a by permC, postorders the column
// elimination tree and returns the view, the tree and the final column
// permutation that Factorize expects.
func prepare(t *testing.T, a *sparse.CompCol, permC []int) (*sparse.PermCol, []int, []int) {
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
	return ac, etree.Renumber(et, post), final
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// factorize runs prepare and Factorize with a fresh row permutation.
func factorize(t *testing.T, a *sparse.CompCol, permC []int, opts ...factor.Option) (*factor.Factors, error) {
	t.Helper()
	ac, et, pc := prepare(t, a, permC)
	return factor.Factorize(ac, et, pc, make([]int, a.NRow), opts...)
}

// residual returns max |(Pr·A·Pc - L·U)(i, j)| over max |A(i, j)|.
func residual(a *sparse.CompCol, f *factor.Factors) float64 {
	l, u := f.Dense()
	var lu mat.Dense
	lu.Mul(l.ToMat(), u.ToMat())

	pa := mat.NewDense(a.NRow, a.NCol, nil)
	scale := 0.0
	for j := 0; j < a.NCol; j++ {
		rows, vals := a.Column(j)
		for k, r := range rows {
			pa.Set(f.PermR[r], f.PermC[j], vals[k])
			scale = math.Max(scale, math.Abs(vals[k]))
		}
	}
	pa.Sub(pa, &lu)
	worst := 0.0
	for i := 0; i < a.NRow; i++ {
		for j := 0; j < a.NCol; j++ {
			worst = math.Max(worst, math.Abs(pa.At(i, j)))
		}
	}
	return worst / scale
}
