// SPDX-License-Identifier: MIT

package factor

import (
	"github.com/katalvlaran/sparselu/kernel"
	"github.com/katalvlaran/sparselu/lumem"
)

// countNZ returns the entry counts of L (diagonal blocks included) and of
// U (diagonal included).
func (s *state) countNZ() (nnzL, nnzU int) {
	g, k := s.g, s.k
	nnzU = g.XUSub[s.n]
	if k == 0 {
		return 0, nnzU
	}
	for sup := 0; sup <= g.Supno[k]; sup++ {
		fsupc := g.XSup[sup]
		jlen := g.XLSub[fsupc+1] - g.XLSub[fsupc]
		for j := fsupc; j < g.XSup[sup+1]; j++ {
			nnzL += jlen
			nnzU += j - fsupc + 1
			jlen--
		}
	}
	return nnzL, nnzU
}

// fixupL compacts the row subscripts to one list per supernode and
// rewrites them in pivot order. Inner columns of a supernode point at the
// end of the compacted list.
func (s *state) fixupL() {
	g, k := s.g, s.k
	if k == 0 {
		return
	}
	nextl := 0
	for sup := 0; sup <= g.Supno[k]; sup++ {
		fsupc := g.XSup[sup]
		jstrt := g.XLSub[fsupc]
		jend := g.XLSub[fsupc+1]
		g.XLSub[fsupc] = nextl
		for j := jstrt; j < jend; j++ {
			g.LSub[nextl] = s.permR[g.LSub[j]]
			nextl++
		}
		for c := fsupc + 1; c < g.XSup[sup+1]; c++ {
			g.XLSub[c] = nextl
		}
	}
	g.XLSub[k] = nextl
}

// trailingU fills the U columns k..n-1 of a wide matrix, which hold no
// pivot: column j is L⁻¹ applied to column j of Pr·A·Pc, kept where
// nonzero. Every row is pivoted by then and the L subscripts are in pivot
// order, so the solve runs on a dense vector of length k.
func (s *state) trailingU() error {
	g, k := s.g, s.k
	if k == s.n {
		return nil
	}
	y := s.dense[:k]
	nextu := g.XUSub[k]
	for j := k; j < s.n; j++ {
		rows, vals := s.a.Column(j)
		for p, r := range rows {
			y[s.permR[r]] += vals[p]
		}
		for sup := 0; sup <= g.Supno[k]; sup++ {
			fsupc := g.XSup[sup]
			nsupc := g.XSup[sup+1] - fsupc
			lptr := g.XLSub[fsupc]
			nsupr := g.XLSub[fsupc+1] - lptr
			luv := g.LUSup[g.XLUSup[fsupc]:]

			kernel.LSolve(nsupc, nsupr, luv, y[fsupc:fsupc+nsupc])
			s.ops.Trsv += int64(nsupc * (nsupc - 1))
			nrow := nsupr - nsupc
			if nrow == 0 {
				continue
			}
			work := s.tempv[:nrow]
			clear(work)
			kernel.MatVec(nrow, nsupc, nsupr, luv[nsupc:], y[fsupc:fsupc+nsupc], work)
			s.ops.Gemv += int64(2 * nrow * nsupc)
			for i, r := range g.LSub[lptr+nsupc : lptr+nsupr] {
				y[r] -= work[i]
			}
		}

		for i, v := range y {
			if v == 0 {
				continue
			}
			if nextu >= g.Size(lumem.UCol) {
				if err := g.Expand(lumem.UCol, j, nextu); err != nil {
					return err
				}
			}
			g.USub[nextu] = i
			g.UCol[nextu] = v
			y[i] = 0
			nextu++
		}
		g.XUSub[j+1] = nextu
	}
	return nil
}
