// SPDX-License-Identifier: MIT

package factor

import (
	"github.com/katalvlaran/sparselu/etree"
	"github.com/katalvlaran/sparselu/internal/invariant"
	"github.com/katalvlaran/sparselu/lumem"
	"github.com/katalvlaran/sparselu/sparse"
)

const empty = -1

// frame is one level of the depth-first search of G(Lᵗ): the supernode
// representative being explored and the window of its pruned row list still
// to visit.
type frame struct {
	rep, next, end int
}

// state is the working set of one factorization.
type state struct {
	m, n int
	k    int // pivot columns, min(m, n)
	a    *sparse.PermCol
	g    *lumem.GlobalLU
	o    *Options

	permR, ipermR, ipermC []int
	relaxEnd              []int

	segrep     []int
	repfnz     []int // first nonzero of each segment, per panel column
	panelLsub  []int // unpivoted rows found by the panel search, per panel column
	panelCount []int
	xprune     []int
	marker     []int // panel search, stamped with the column
	marker1    []int // first panel column that recorded a segment
	marker2    []int // column search, stamped with the column
	stack      []frame

	dense  []float64 // SPA, one column of length m per panel column
	tempv  []float64
	ldTemp int // stride of the 2-D update scratch, per panel column
	tmpSup int // widest triangle the 2-D scratch holds

	ops      Ops
	singular int
}

// Factorize computes Pr·A·Pc = L·U.
//
// For an m×n matrix L is m×k and U is k×n with k = min(m, n). When m < n
// the trailing n-m columns hold no pivot and are stored in U only.
//
// a is A·Pc; etree is its column elimination tree (postordered unless
// WithSymmetric); permC is recorded in the result. permR, when non-nil,
// receives the row permutation and, under WithPermR, supplies the preferred
// pivot sequence (permR[i] = preferred position of row i).
//
// A zero pivot returns the complete factors together with a *SingularError.
// Memory exhaustion returns a *lumem.MemoryError and no factors.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrBadPermutation (wrapped),
// *SingularError, *lumem.MemoryError (wrapped).
func Factorize(a *sparse.PermCol, etree, permC, permR []int, opts ...Option) (*Factors, error) {
	o := gatherOptions(opts)
	if err := validate(a, etree, permC, permR, o.usePermR); err != nil {
		return nil, factorErrorf(opFactorize, err)
	}
	m, n := a.NRow, a.NCol
	if permR == nil {
		permR = make([]int, m)
	}

	g, err := o.manager.Init(m, n, a.Nnz(), o.fill)
	if err != nil {
		return nil, factorErrorf(opFactorize, err)
	}
	s := &state{m: m, n: n, k: min(m, n), a: a, g: g, o: &o, permR: permR}
	if err = s.setup(etree, permC); err != nil {
		g.Release()
		return nil, factorErrorf(opFactorize, err)
	}

	for jcol := 0; jcol < s.k; {
		if kcol := s.relaxEnd[jcol]; kcol != empty && s.independent(jcol, kcol) {
			err = s.factorSnode(jcol, kcol)
			jcol = kcol + 1
		} else {
			w := s.panelWidth(jcol)
			err = s.factorPanel(jcol, w)
			jcol += w
		}
		if err != nil {
			g.Release()
			return nil, factorErrorf(opFactorize, err)
		}
	}

	// Rows never chosen as pivots (m > n) go last, in natural order.
	extra := 0
	for i := range permR {
		if permR[i] == empty {
			permR[i] = n + extra
			extra++
		}
	}

	s.fixupL()
	if err = s.trailingU(); err != nil {
		g.Release()
		return nil, factorErrorf(opFactorize, err)
	}
	nnzL, nnzU := s.countNZ()
	g.FreeWork()
	g.Truncate(lumem.LSub, g.XLSub[s.k])
	g.Truncate(lumem.LUSup, g.XLUSup[s.k])
	g.Truncate(lumem.UCol, g.XUSub[n])
	g.Truncate(lumem.USub, g.XUSub[n])
	g.Compress()

	f := s.result(permC, nnzL, nnzU)
	o.logger.Debug("factor: done",
		"n", n, "supernodes", f.L.NSuper, "nnzL", nnzL, "nnzU", nnzU,
		"expansions", f.Expansions, "singular", s.singular)
	if s.singular != 0 {
		return f, factorErrorf(opFactorize, &SingularError{Col: s.singular})
	}
	return f, nil
}

func validate(a *sparse.PermCol, tree, permC, permR []int, usePermR bool) error {
	if a == nil || a.Val == nil {
		return ErrNilMatrix
	}
	m, n := a.NRow, a.NCol
	if len(a.ColBeg) < n || len(a.ColEnd) < n || len(tree) < n || len(permC) != n {
		return ErrDimensionMismatch
	}
	if permR != nil && len(permR) != m {
		return ErrDimensionMismatch
	}
	if usePermR && permR == nil {
		return ErrDimensionMismatch
	}
	if !sparse.IsPermutation(permC) {
		return ErrBadPermutation
	}
	if usePermR && !sparse.IsPermutation(permR) {
		return ErrBadPermutation
	}
	for j := 0; j < n; j++ {
		if p := tree[j]; p <= j || p > n {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// setup carves the work arrays and initialises permutations, markers and
// the supernode partition.
func (s *state) setup(tree, permC []int) error {
	m, n, g, w := s.m, s.n, s.g, s.o.panelSize
	s.tmpSup = max(s.o.maxSuper, s.o.relax)
	s.ldTemp = s.tmpSup + s.o.rowBlock

	ints := []*[]int{&s.segrep, &s.marker, &s.marker1, &s.marker2, &s.ipermR}
	for _, p := range ints {
		v, err := g.AllocInts(m)
		if err != nil {
			return err
		}
		*p = v
	}
	for _, p := range []*[]int{&s.xprune, &s.ipermC} {
		v, err := g.AllocInts(n)
		if err != nil {
			return err
		}
		*p = v
	}
	var err error
	if s.repfnz, err = g.AllocInts(w * m); err != nil {
		return err
	}
	if s.panelLsub, err = g.AllocInts(w * m); err != nil {
		return err
	}
	if s.panelCount, err = g.AllocInts(w); err != nil {
		return err
	}
	if s.dense, err = g.AllocFloats(w * m); err != nil {
		return err
	}
	if s.tempv, err = g.AllocFloats(numTempv(m, w, s.tmpSup, s.o.rowBlock)); err != nil {
		return err
	}
	s.stack = make([]frame, 0, 16)

	fill(s.repfnz, empty)
	fill(s.panelLsub, empty)
	fill(s.marker, empty)
	fill(s.marker1, empty)
	fill(s.marker2, empty)

	if s.o.usePermR {
		for k := 0; k < m; k++ {
			s.ipermR[s.permR[k]] = k
		}
	}
	fill(s.permR, empty)
	for k := 0; k < n; k++ {
		s.ipermC[permC[k]] = k
	}

	// Relaxed supernodes cover pivot columns only; a parent past them
	// becomes a root.
	pivTree := tree[:n]
	if s.k < n {
		pivTree = make([]int, s.k)
		for j := range pivTree {
			pivTree[j] = min(tree[j], s.k)
		}
	}
	if s.o.symmetric {
		s.relaxEnd = etree.HeapRelax(pivTree, s.o.relax)
	} else {
		s.relaxEnd = etree.Relax(pivTree, s.o.relax)
	}

	g.Supno[0] = empty
	g.XSup[0], g.XLSub[0], g.XUSub[0], g.XLUSup[0] = 0, 0, 0, 0
	return nil
}

func fill(s []int, v int) {
	for i := range s {
		s[i] = v
	}
}

// panelWidth returns the width of the panel starting at jcol: at most the
// panel size, stopping short of the next relaxed supernode.
func (s *state) panelWidth(jcol int) int {
	end := min(jcol+s.o.panelSize, s.k)
	for k := jcol + 1; k < end; k++ {
		if s.relaxEnd[k] != empty {
			return k - jcol
		}
	}
	return end - jcol
}

// independent reports whether no row of columns jcol..kcol is pivoted yet.
// A structural zero row pulled into an earlier column breaks the subtree
// property of a relaxed supernode; such a range is factored as panels.
func (s *state) independent(jcol, kcol int) bool {
	for c := jcol; c <= kcol; c++ {
		rows, _ := s.a.Column(c)
		for _, r := range rows {
			if s.permR[r] != empty {
				s.o.logger.Debug("factor: relaxed supernode split", "first", jcol, "last", kcol, "row", r)
				return false
			}
		}
	}
	return true
}

// factorSnode factors the relaxed supernode jcol..kcol. Its columns depend
// on nothing outside the supernode, so each column is scattered, updated
// from the supernode's own earlier columns and pivoted.
func (s *state) factorSnode(jcol, kcol int) error {
	g := s.g
	if err := s.snodeDFS(jcol, kcol); err != nil {
		return err
	}
	nextu := g.XUSub[jcol]
	nextlu := g.XLUSup[jcol]
	fsupc := g.XSup[g.Supno[jcol]]
	nsupr := g.XLSub[fsupc+1] - g.XLSub[fsupc]
	if need := nextlu + nsupr*(kcol-jcol+1); need > g.Size(lumem.LUSup) {
		if err := g.Expand(lumem.LUSup, jcol, need-1); err != nil {
			return err
		}
	}
	spa := s.dense[:s.m]
	for icol := jcol; icol <= kcol; icol++ {
		g.XUSub[icol+1] = nextu
		rows, vals := s.a.Column(icol)
		for k, r := range rows {
			spa[r] += vals[k]
		}
		s.snodeBmod(icol, fsupc)
		s.pivot(icol)
		if invariant.Enabled {
			checkClean(spa, icol)
		}
	}
	return nil
}

// factorPanel factors the w columns starting at jcol.
func (s *state) factorPanel(jcol, w int) error {
	nseg1 := s.panelDFS(jcol, w)
	s.panelBmod(jcol, w, nseg1)
	for jj := jcol; jj < jcol+w; jj++ {
		off := (jj - jcol) * s.m
		nseg := nseg1
		if err := s.columnDFS(jj, jj-jcol, &nseg); err != nil {
			return err
		}
		if err := s.columnBmod(jj, off, nseg1, nseg, jcol); err != nil {
			return err
		}
		if err := s.copyToUcol(jj, off, nseg); err != nil {
			return err
		}
		pivrow := s.pivot(jj)
		s.pruneL(jj, pivrow, off, nseg)
		s.resetRep(off, nseg)
		if invariant.Enabled {
			checkClean(s.dense[off:off+s.m], jj)
		}
	}
	return nil
}

func checkClean(spa []float64, col int) {
	for i, v := range spa {
		invariant.Check(v == 0, "factor: SPA row %d holds %g after column %d", i, v, col)
	}
}

// pivot chooses the pivot of jcol and records the first zero pivot.
func (s *state) pivot(jcol int) int {
	pivrow, zero := s.pivotL(jcol)
	if zero {
		if s.singular == 0 {
			s.singular = jcol + 1
		}
		s.o.logger.Debug("factor: zero pivot", "col", jcol, "row", pivrow)
	}
	return pivrow
}

// freeRow returns a row that is not yet pivoted and not stamped in mark,
// preferring the diagonal rows of columns lo..hi.
func (s *state) freeRow(lo, hi int, mark []int, stamp int) int {
	for c := lo; c <= hi; c++ {
		if r := s.ipermC[c]; r < s.m && s.permR[r] == empty && mark[r] != stamp {
			return r
		}
	}
	for r := 0; r < s.m; r++ {
		if s.permR[r] == empty && mark[r] != stamp {
			return r
		}
	}
	return empty
}

// pushL appends row to the L subscripts at *nextl, growing LSub on demand.
func (s *state) pushL(jcol int, nextl *int, row int) error {
	g := s.g
	if *nextl >= g.Size(lumem.LSub) {
		if err := g.Expand(lumem.LSub, jcol, *nextl); err != nil {
			return err
		}
	}
	g.LSub[*nextl] = row
	*nextl++
	return nil
}

func (s *state) result(permC []int, nnzL, nnzU int) *Factors {
	g, m, n, k := s.g, s.m, s.n, s.k
	nsuper := g.Supno[k] + 1
	l := &sparse.SuperNodal{
		NRow:     m,
		NCol:     k,
		NSuper:   nsuper,
		Nnz:      g.XLUSup[k],
		Val:      g.LUSup[:g.XLUSup[k]],
		ValPtr:   g.XLUSup[:k+1],
		RowInd:   g.LSub[:g.XLSub[k]],
		RowPtr:   g.XLSub[:k+1],
		ColToSup: g.Supno[:k+1],
		SupToCol: g.XSup[:nsuper+1],
	}
	if invariant.Enabled {
		checkLayout(l)
	}
	u := &sparse.CompCol{
		NRow:   k,
		NCol:   n,
		ColPtr: g.XUSub,
		RowInd: g.USub[:g.XUSub[n]],
		Val:    g.UCol[:g.XUSub[n]],
	}
	return &Factors{
		L:          l,
		U:          u,
		PermR:      s.permR,
		PermC:      permC,
		NnzL:       nnzL,
		NnzU:       nnzU,
		Expansions: g.Expansions(),
		Ops:        s.ops,
		Usage:      g.Usage(),
		singular:   s.singular,
	}
}

// checkLayout verifies that supernode k spans columns SupToCol[k] to
// SupToCol[k+1]-1 and that every column maps back to it.
func checkLayout(l *sparse.SuperNodal) {
	for k := 0; k < l.NSuper; k++ {
		lo, hi := l.SupToCol[k], l.SupToCol[k+1]
		invariant.Check(lo < hi, "factor: supernode %d is empty", k)
		for j := lo; j < hi; j++ {
			invariant.Check(l.ColToSup[j] == k, "factor: column %d maps to %d, not %d", j, l.ColToSup[j], k)
		}
	}
	invariant.Check(l.SupToCol[l.NSuper] == l.NCol, "factor: supernodes end at %d", l.SupToCol[l.NSuper])
}
