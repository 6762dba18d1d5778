// SPDX-License-Identifier: MIT

package factor

import (
	"math"

	"github.com/katalvlaran/sparselu/internal/invariant"
)

// pivotL picks the pivot row of column jcol among the rows of its supernode
// not yet pivoted, moves it to the diagonal position and scales the rest of
// the column by its reciprocal.
//
// A row is accepted if its magnitude is nonzero and at least thresh times
// the column maximum. The preferred row under WithPermR is tried first,
// then the diagonal row, then the maximum is taken. A column with no
// nonzero candidate is reported as zero and left unscaled.
func (s *state) pivotL(jcol int) (pivrow int, zero bool) {
	g := s.g
	fsupc := g.XSup[g.Supno[jcol]]
	nsupc := jcol - fsupc
	lptr := g.XLSub[fsupc]
	nsupr := g.XLSub[fsupc+1] - lptr
	lsub := g.LSub[lptr : lptr+nsupr]
	luCol := g.LUSup[g.XLUSup[jcol] : g.XLUSup[jcol]+nsupr]

	preferred := empty
	if s.o.usePermR {
		preferred = s.ipermR[jcol]
	}
	diagRow := s.ipermC[jcol]

	pivmax := 0.0
	pivptr, diag, old := nsupc, empty, empty
	for isub := nsupc; isub < nsupr; isub++ {
		if v := math.Abs(luCol[isub]); v > pivmax {
			pivmax = v
			pivptr = isub
		}
		switch lsub[isub] {
		case preferred:
			old = isub
		case diagRow:
			diag = isub
		}
	}
	if preferred == diagRow {
		diag = old
	}

	if pivmax == 0 {
		pivrow = lsub[pivptr]
		s.permR[pivrow] = jcol
		return pivrow, true
	}

	thresh := s.o.thresh * pivmax
	accept := func(isub int) bool {
		if isub == empty {
			return false
		}
		v := math.Abs(luCol[isub])
		return v != 0 && v >= thresh
	}
	switch {
	case accept(old):
		pivptr = old
	case accept(diag):
		pivptr = diag
	}

	pivrow = lsub[pivptr]
	s.permR[pivrow] = jcol
	if pivptr != nsupc {
		lsub[pivptr], lsub[nsupc] = lsub[nsupc], lsub[pivptr]
		// Swap the row across every column of the supernode so far.
		base := g.XLUSup[fsupc]
		for icol := 0; icol <= nsupc; icol++ {
			a, b := base+pivptr+icol*nsupr, base+nsupc+icol*nsupr
			g.LUSup[a], g.LUSup[b] = g.LUSup[b], g.LUSup[a]
		}
	}

	s.ops.Fact += int64(nsupr - nsupc)
	inv := 1 / luCol[nsupc]
	for k := nsupc + 1; k < nsupr; k++ {
		luCol[k] *= inv
	}
	return pivrow, false
}

// pruneL shortens the row lists of finished supernodes touched by column
// jcol: once pivrow is pivoted, rows already pivoted are moved to the front
// of each list containing pivrow and the search window is cut behind them.
func (s *state) pruneL(jcol, pivrow, off, nseg int) {
	g := s.g
	repfnz := s.repfnz[off : off+s.m]
	jsupno := g.Supno[jcol]

	for i := 0; i < nseg; i++ {
		irep := s.segrep[i]
		irep1 := irep + 1
		if repfnz[irep] == empty {
			continue
		}
		if g.Supno[irep] == g.Supno[irep1] || g.Supno[irep] == jsupno {
			continue
		}
		// Already pruned.
		if s.xprune[irep] < g.XLSub[irep1] {
			continue
		}
		kmin, kmax := g.XLSub[irep], g.XLSub[irep1]-1
		found := false
		for k := kmin; k <= kmax; k++ {
			if g.LSub[k] == pivrow {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		// A single-column supernode has only one copy of its rows, so its
		// values move with them.
		movnum := irep == g.XSup[g.Supno[irep]]
		for kmin <= kmax {
			switch {
			case s.permR[g.LSub[kmax]] == empty:
				kmax--
			case s.permR[g.LSub[kmin]] != empty:
				kmin++
			default:
				g.LSub[kmin], g.LSub[kmax] = g.LSub[kmax], g.LSub[kmin]
				if movnum {
					lo := g.XLUSup[irep] + kmin - g.XLSub[irep]
					hi := g.XLUSup[irep] + kmax - g.XLSub[irep]
					g.LUSup[lo], g.LUSup[hi] = g.LUSup[hi], g.LUSup[lo]
				}
				kmin++
				kmax--
			}
		}
		if invariant.Enabled {
			invariant.Check(kmin <= s.xprune[irep], "factor: prune of %d grows %d to %d", irep, s.xprune[irep], kmin)
		}
		s.xprune[irep] = kmin
	}
}

// resetRep clears the first-nonzero markers of the segments of one column.
func (s *state) resetRep(off, nseg int) {
	for _, rep := range s.segrep[:nseg] {
		s.repfnz[off+rep] = empty
	}
}
