// SPDX-License-Identifier: MIT

package factor

import "github.com/katalvlaran/sparselu/lumem"

// reach explores G(Lᵗ) from the supernode holding pivot position kperm.
// Unpivoted rows met on the way go to onL together with their previous
// mark; each representative is passed to onDone once its subtree is
// exhausted, so onDone sees representatives in topological order.
func (s *state) reach(kperm int, repfnz, mark []int, stamp int,
	onL func(row, oldMark int) error, onDone func(rep int)) error {
	g := s.g
	krep := g.XSup[g.Supno[kperm]+1] - 1
	if fnz := repfnz[krep]; fnz != empty {
		if fnz > kperm {
			repfnz[krep] = kperm
		}
		return nil
	}
	repfnz[krep] = kperm
	stack := append(s.stack[:0], frame{rep: krep, next: g.XLSub[krep], end: s.xprune[krep]})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		descended := false
		for top.next < top.end {
			kchild := g.LSub[top.next]
			top.next++
			chmark := mark[kchild]
			if chmark == stamp {
				continue
			}
			mark[kchild] = stamp
			chperm := s.permR[kchild]
			if chperm == empty {
				if err := onL(kchild, chmark); err != nil {
					s.stack = stack
					return err
				}
				continue
			}
			chrep := g.XSup[g.Supno[chperm]+1] - 1
			if fnz := repfnz[chrep]; fnz != empty {
				if fnz > chperm {
					repfnz[chrep] = chperm
				}
				continue
			}
			repfnz[chrep] = chperm
			stack = append(stack, frame{rep: chrep, next: g.XLSub[chrep], end: s.xprune[chrep]})
			descended = true
			break
		}
		if descended {
			continue
		}
		onDone(top.rep)
		stack = stack[:len(stack)-1]
	}
	s.stack = stack
	return nil
}

// snodeDFS builds the row structure of the relaxed supernode jcol..kcol as
// the union of its columns in A. A relaxed supernode needs one candidate
// row per column; missing ones are filled with structural zero rows.
func (s *state) snodeDFS(jcol, kcol int) error {
	g := s.g
	g.Supno[jcol]++
	nsuper := g.Supno[jcol]
	nextl := g.XLSub[jcol]

	for i := jcol; i <= kcol; i++ {
		rows, _ := s.a.Column(i)
		for _, r := range rows {
			if s.marker[r] == kcol {
				continue
			}
			s.marker[r] = kcol
			if err := s.pushL(jcol, &nextl, r); err != nil {
				return err
			}
		}
		g.Supno[i] = nsuper
	}
	for short := kcol - jcol + 1 - (nextl - g.XLSub[jcol]); short > 0; short-- {
		r := s.freeRow(jcol, kcol, s.marker, kcol)
		s.marker[r] = kcol
		if err := s.pushL(jcol, &nextl, r); err != nil {
			return err
		}
		s.o.logger.Debug("factor: structural zero", "col", jcol, "row", r)
	}

	// A supernode wider than one column keeps a second copy of its
	// subscripts for pruning.
	if jcol < kcol {
		length := nextl - g.XLSub[jcol]
		if need := nextl + length; need > g.Size(lumem.LSub) {
			if err := g.Expand(lumem.LSub, jcol, need-1); err != nil {
				return err
			}
		}
		copy(g.LSub[nextl:nextl+length], g.LSub[g.XLSub[jcol]:nextl])
		for i := jcol + 1; i <= kcol; i++ {
			g.XLSub[i] = nextl
		}
		nextl += length
	}

	g.XSup[nsuper+1] = kcol + 1
	g.Supno[kcol+1] = nsuper
	s.xprune[kcol] = nextl
	g.XLSub[kcol+1] = nextl
	return nil
}

// panelDFS scatters the panel columns jcol..jcol+w-1 into the SPA and finds
// their structure. Unpivoted rows go to panelLsub; the supernodal segments
// of the whole panel are recorded once in segrep, in topological order.
// It returns the number of segments.
func (s *state) panelDFS(jcol, w int) int {
	m := s.m
	nseg := 0
	for jj := jcol; jj < jcol+w; jj++ {
		col := jj - jcol
		off := col * m
		repfnz := s.repfnz[off : off+m]
		spa := s.dense[off : off+m]
		lsub := s.panelLsub[off : off+m]
		count := 0

		onL := func(row, _ int) error {
			lsub[count] = row
			count++
			return nil
		}
		onDone := func(rep int) {
			if s.marker1[rep] < jcol {
				s.segrep[nseg] = rep
				nseg++
				s.marker1[rep] = jj
			}
		}

		rows, vals := s.a.Column(jj)
		for k, krow := range rows {
			spa[krow] += vals[k]
			if s.marker[krow] == jj {
				continue
			}
			s.marker[krow] = jj
			kperm := s.permR[krow]
			if kperm == empty {
				_ = onL(krow, empty)
				continue
			}
			_ = s.reach(kperm, repfnz, s.marker, jj, onL, onDone)
		}
		s.panelCount[col] = count
	}
	return nseg
}

// columnDFS completes the structure of column jcol (panel column col) from
// the rows left unpivoted by the panel search, appends the new segments to
// segrep, and decides whether jcol extends the current supernode.
func (s *state) columnDFS(jcol, col int, nseg *int) error {
	g, m := s.g, s.m
	off := col * m
	repfnz := s.repfnz[off : off+m]
	lsubCol := s.panelLsub[off : off+m]

	nsuper := g.Supno[jcol]
	jsuper := nsuper
	nextl := g.XLSub[jcol]

	onL := func(row, oldMark int) error {
		if err := s.pushL(jcol, &nextl, row); err != nil {
			return err
		}
		if oldMark != jcol-1 {
			jsuper = empty
		}
		return nil
	}
	onDone := func(rep int) {
		s.segrep[*nseg] = rep
		*nseg++
	}

	count := s.panelCount[col]
	for k := 0; k < count; k++ {
		krow := lsubCol[k]
		lsubCol[k] = empty
		kmark := s.marker2[krow]
		if kmark == jcol {
			continue
		}
		s.marker2[krow] = jcol
		kperm := s.permR[krow]
		if kperm == empty {
			if err := onL(krow, kmark); err != nil {
				return err
			}
			continue
		}
		if err := s.reach(kperm, repfnz, s.marker2, jcol, onL, onDone); err != nil {
			return err
		}
	}
	s.panelCount[col] = 0

	if nextl == g.XLSub[jcol] {
		r := s.freeRow(jcol, jcol, s.marker2, jcol)
		kmark := s.marker2[r]
		s.marker2[r] = jcol
		if err := onL(r, kmark); err != nil {
			return err
		}
		s.o.logger.Debug("factor: structural zero", "col", jcol, "row", r)
	}

	if jcol == 0 {
		nsuper = 0
		g.Supno[0] = 0
	} else {
		fsupc := g.XSup[nsuper]
		jptr := g.XLSub[jcol]
		jm1ptr := g.XLSub[jcol-1]
		// jcol joins jcol-1 only if its L structure is that of jcol-1
		// minus the pivot row.
		if nextl-jptr != jptr-jm1ptr-1 {
			jsuper = empty
		}
		if jcol-fsupc >= s.o.maxSuper {
			jsuper = empty
		}
		if jsuper == empty {
			// Only the first and last subscript lists of a finished
			// supernode are kept.
			if fsupc < jcol-2 {
				ito := g.XLSub[fsupc+1]
				g.XLSub[jcol-1] = ito
				istop := ito + jptr - jm1ptr
				s.xprune[jcol-1] = istop
				g.XLSub[jcol] = istop
				copy(g.LSub[ito:], g.LSub[jm1ptr:nextl])
				nextl = ito + nextl - jm1ptr
			}
			nsuper++
			g.Supno[jcol] = nsuper
		}
	}

	g.XSup[nsuper+1] = jcol + 1
	g.Supno[jcol+1] = nsuper
	s.xprune[jcol] = nextl
	g.XLSub[jcol+1] = nextl
	return nil
}
