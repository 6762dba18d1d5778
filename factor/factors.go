// SPDX-License-Identifier: MIT

package factor

import (
	"github.com/katalvlaran/sparselu/lumem"
	"github.com/katalvlaran/sparselu/sparse"
)

// Ops counts floating-point operations per phase.
type Ops struct {
	Trsv int64 // dense triangular solves
	Gemv int64 // dense matrix-vector updates
	Fact int64 // pivot scaling
}

// Total returns the sum over all phases.
func (o Ops) Total() int64 { return o.Trsv + o.Gemv + o.Fact }

// Factors is the result of Factorize.
//
// L holds the unit lower-trapezoidal factor together with the parts of U
// that fall inside the supernodal diagonal blocks; U holds the rest of U.
// Row indices of both are pivot positions, i.e. rows of Pr·A.
type Factors struct {
	L *sparse.SuperNodal
	U *sparse.CompCol

	// PermR maps an original row to its pivot position.
	PermR []int
	// PermC maps an original column to its position in A·Pc.
	PermC []int

	NnzL       int // entries of L, unit diagonal included
	NnzU       int // entries of U, diagonal included
	Expansions int
	Ops        Ops
	Usage      lumem.Usage

	singular int
}

// Info returns 0, or the 1-based column of the first zero pivot.
func (f *Factors) Info() int { return f.singular }

// Supernodes returns the number of supernodes of L.
func (f *Factors) Supernodes() int { return f.L.NSuper }

// Dense expands L (m×k) and U (k×n), k = min(m, n), into dense matrices in
// pivot order, for diagnostics.
func (f *Factors) Dense() (l, u *sparse.Dense) {
	u, _ = sparse.NewDense(f.L.NCol, f.U.NCol)
	l = f.L.ExpandL(u)
	for j := 0; j < f.U.NCol; j++ {
		rows, vals := f.U.Column(j)
		for k, r := range rows {
			u.Set(r, j, vals[k])
		}
	}
	return l, u
}
