// SPDX-License-Identifier: MIT

package lumem

import (
	"fmt"

	"github.com/katalvlaran/sparselu/internal/invariant"
)

// MemType names a GlobalLU array.
type MemType int

// Growable factor arrays, in head order. Index and Work name the fixed
// arrays for error reporting.
const (
	LUSup MemType = iota
	UCol
	LSub
	USub
	Index
	Work
)

func (t MemType) String() string {
	switch t {
	case LUSup:
		return "lusup"
	case UCol:
		return "ucol"
	case LSub:
		return "lsub"
	case USub:
		return "usub"
	case Index:
		return "index arrays"
	case Work:
		return "work arrays"
	}
	return fmt.Sprintf("MemType(%d)", int(t))
}

func (t MemType) word() int {
	if t == LUSup || t == UCol {
		return FloatBytes
	}
	return IntBytes
}

const numIndex = 5

// GlobalLU is the factor storage of one in-flight factorization.
//
// Supernode s spans columns XSup[s]..XSup[s+1]-1 and Supno maps a column to
// its supernode. Row subscripts of the supernode starting at column j are
// LSub[XLSub[j]:XLSub[j+1]]; its values are column-major in
// LUSup[XLUSup[j]:...]. Column j of U outside the diagonal blocks is
// UCol/USub[XUSub[j]:XUSub[j+1]].
type GlobalLU struct {
	XSup, Supno, XLSub, XLUSup, XUSub []int

	LUSup []float64
	UCol  []float64
	LSub  []int
	USub  []int

	M, N int

	mgr        *Manager
	size       [4]int // allocated lengths
	seg        [4]int // arena segment ids in Fixed mode
	workBytes  int
	expansions int
}

func initialSizes(annz, fill int) (nzlu, nzu, nzl int) {
	nzlu = fill * annz
	nzu = nzlu
	nzl = int(max(1, float64(fill)/4) * float64(annz))
	return nzlu, nzu, nzl
}

// Init allocates the index arrays and the initial factor arrays for an
// m×n matrix with annz nonzeros. The factor arrays start at fill·annz
// (L subscripts at max(1, fill/4)·annz); while they cannot be served every
// size is halved, and Init fails once the L values would drop below annz.
//
// Init reclaims everything the Manager holds; a GlobalLU previously
// initialised on the same Manager must no longer be used.
func (m *Manager) Init(rows, n, annz, fill int) (*GlobalLU, error) {
	if rows < 0 || n < 0 || annz < 0 || fill <= 0 {
		return nil, ErrBadSize
	}
	m.reset()
	g := &GlobalLU{M: rows, N: n, mgr: m}

	if err := g.allocIndex(); err != nil {
		return nil, err
	}
	nzlu, nzu, nzl := initialSizes(annz, fill)
	for {
		t, ok := g.allocFactors(nzlu, nzu, nzl)
		if ok {
			break
		}
		nzlu, nzu, nzl = nzlu/2, nzu/2, nzl/2
		if nzlu < annz {
			need := (nzlu+nzu)*FloatBytes + (nzl+nzu)*IntBytes
			m.log.Debug("lumem: init failed", "type", t.String(), "needed", need)
			return nil, &MemoryError{Type: t, Col: -1, Needed: need}
		}
	}
	m.log.Debug("lumem: init",
		"model", m.model.String(),
		"lusup", g.size[LUSup], "ucol", g.size[UCol],
		"lsub", g.size[LSub], "usub", g.size[USub])
	return g, nil
}

func (g *GlobalLU) allocIndex() error {
	m := g.mgr
	k := g.N + 1
	if m.model == System {
		if !m.reserve(numIndex * k * IntBytes) {
			return &MemoryError{Type: Index, Col: -1, Needed: numIndex * k * IntBytes}
		}
		g.XSup, g.Supno = make([]int, k), make([]int, k)
		g.XLSub, g.XLUSup, g.XUSub = make([]int, k), make([]int, k), make([]int, k)
		return nil
	}
	if m.ints.Free() < numIndex*k {
		return &MemoryError{Type: Index, Col: -1, Needed: (numIndex*k - m.ints.Free()) * IntBytes}
	}
	views := [numIndex]*[]int{&g.XSup, &g.Supno, &g.XLSub, &g.XLUSup, &g.XUSub}
	for _, v := range views {
		id, _ := m.ints.PushHead(k)
		*v = m.ints.Seg(id)
	}
	return nil
}

// allocFactors places the four factor arrays or releases every one of them
// and reports the first that did not fit.
func (g *GlobalLU) allocFactors(nzlu, nzu, nzl int) (MemType, bool) {
	m := g.mgr
	want := [4]int{LUSup: nzlu, UCol: nzu, LSub: nzl, USub: nzu}
	if m.model == System {
		held := 0
		for t := LUSup; t <= USub; t++ {
			b := want[t] * t.word()
			if !m.reserve(b) {
				m.release(held)
				return t, false
			}
			held += b
		}
		g.LUSup, g.UCol = make([]float64, nzlu), make([]float64, nzu)
		g.LSub, g.USub = make([]int, nzl), make([]int, nzu)
		g.size = want
		return 0, true
	}
	if nzlu+nzu > m.floats.Free() {
		return LUSup, false
	}
	if nzl+nzu > m.ints.Free() {
		return LSub, false
	}
	g.seg[LUSup], _ = m.floats.PushHead(nzlu)
	g.seg[UCol], _ = m.floats.PushHead(nzu)
	g.seg[LSub], _ = m.ints.PushHead(nzl)
	g.seg[USub], _ = m.ints.PushHead(nzu)
	g.size = want
	g.refresh()
	return 0, true
}

// refresh re-derives the factor views from the arenas after a shift.
func (g *GlobalLU) refresh() {
	m := g.mgr
	g.LUSup = m.floats.Seg(g.seg[LUSup])
	g.UCol = m.floats.Seg(g.seg[UCol])
	g.LSub = m.ints.Seg(g.seg[LSub])
	g.USub = m.ints.Seg(g.seg[USub])
}

// Model returns the backing model of the owning Manager.
func (g *GlobalLU) Model() Model { return g.mgr.model }

// Size returns the allocated length of array t.
func (g *GlobalLU) Size(t MemType) int { return g.size[t] }

// Expansions returns the number of successful growth steps so far.
func (g *GlobalLU) Expansions() int { return g.expansions }

// Expand grows array t until it can hold index next. Growing UCol grows
// USub to the same length, since both share the U column pointers.
// Existing content keeps its indices. col is the column being processed
// and is only used for reporting.
func (g *GlobalLU) Expand(t MemType, col, next int) error {
	if t < LUSup || t > USub {
		return ErrBadSize
	}
	for next >= g.size[t] {
		if err := g.expandOnce(t, col); err != nil {
			return err
		}
	}
	if t == UCol && g.size[USub] < g.size[UCol] {
		if !g.resize(USub, g.size[UCol]) {
			need := (g.size[UCol] - g.size[USub]) * IntBytes
			return &MemoryError{Type: USub, Col: col, Needed: need}
		}
	}
	return nil
}

func grownLen(alpha float64, prev int) int {
	return max(int(alpha*float64(prev)), prev+1)
}

func reduce(alpha float64) float64 { return (alpha + 1) / 2 }

func (g *GlobalLU) expandOnce(t MemType, col int) error {
	prev := g.size[t]
	alpha := ExpandFactor
	want := grownLen(alpha, prev)
	need := (want - prev) * t.word()
	for tries := 0; !g.resize(t, want); {
		tries++
		if tries > MaxTries {
			g.mgr.log.Debug("lumem: expansion failed",
				"type", t.String(), "col", col, "size", prev, "needed", need)
			return &MemoryError{Type: t, Col: col, Needed: need}
		}
		alpha = reduce(alpha)
		want = grownLen(alpha, prev)
	}
	g.expansions++
	g.mgr.log.Debug("lumem: expanded",
		"type", t.String(), "col", col, "from", prev, "to", want)
	return nil
}

// resize sets array t to exactly n slots, preserving content.
func (g *GlobalLU) resize(t MemType, n int) bool {
	m := g.mgr
	if m.model == Fixed {
		a := m.ints.Resize
		if t == LUSup || t == UCol {
			a = m.floats.Resize
		}
		if a(g.seg[t], n) != nil {
			return false
		}
		g.size[t] = n
		g.refresh()
		if invariant.Enabled {
			invariant.Check(m.floats.Free() >= 0 && m.ints.Free() >= 0, "lumem: head crossed tail")
		}
		return true
	}
	if !m.reserve(n * t.word()) {
		return false
	}
	switch t {
	case LUSup:
		g.LUSup = regrow(g.LUSup, g.size[t], n)
	case UCol:
		g.UCol = regrow(g.UCol, g.size[t], n)
	case LSub:
		g.LSub = regrow(g.LSub, g.size[t], n)
	case USub:
		g.USub = regrow(g.USub, g.size[t], n)
	}
	m.release(g.size[t] * t.word())
	g.size[t] = n
	return true
}

func regrow[T Elem](old []T, size, n int) []T {
	s := make([]T, n)
	copy(s, old[:min(size, n)])
	return s
}

// Truncate shrinks the visible length of array t to n without
// reallocating; content below n is unchanged. A later Expand restores the
// full allocation first.
func (g *GlobalLU) Truncate(t MemType, n int) {
	if n < 0 || n > g.size[t] {
		return
	}
	switch t {
	case LUSup:
		g.LUSup = g.fullFloat(t)[:n]
	case UCol:
		g.UCol = g.fullFloat(t)[:n]
	case LSub:
		g.LSub = g.fullInt(t)[:n]
	case USub:
		g.USub = g.fullInt(t)[:n]
	}
}

func (g *GlobalLU) fullFloat(t MemType) []float64 {
	if g.mgr.model == Fixed {
		return g.mgr.floats.Seg(g.seg[t])
	}
	if t == LUSup {
		return g.LUSup[:g.size[t]]
	}
	return g.UCol[:g.size[t]]
}

func (g *GlobalLU) fullInt(t MemType) []int {
	if g.mgr.model == Fixed {
		return g.mgr.ints.Seg(g.seg[t])
	}
	if t == LSub {
		return g.LSub[:g.size[t]]
	}
	return g.USub[:g.size[t]]
}

// Compress releases the slack past the visible length of every factor
// array. In Fixed mode the arrays are packed toward the head; in System
// mode only the accounting changes, the slices keep their capacity.
func (g *GlobalLU) Compress() {
	m := g.mgr
	used := [4]int{len(g.LUSup), len(g.UCol), len(g.LSub), len(g.USub)}
	if m.model == Fixed {
		fk := make([]int, m.floats.Segments())
		for id := range fk {
			fk[id] = m.floats.Len(id)
		}
		fk[g.seg[LUSup]], fk[g.seg[UCol]] = used[LUSup], used[UCol]
		m.floats.Compact(fk)

		ik := make([]int, m.ints.Segments())
		for id := range ik {
			ik[id] = m.ints.Len(id)
		}
		ik[g.seg[LSub]], ik[g.seg[USub]] = used[LSub], used[USub]
		m.ints.Compact(ik)
		g.size = used
		g.refresh()
		return
	}
	for t := LUSup; t <= USub; t++ {
		m.release((g.size[t] - used[t]) * t.word())
		g.size[t] = used[t]
	}
}

// AllocInts returns a zeroed work array of n ints, from the tail in Fixed
// mode.
func (g *GlobalLU) AllocInts(n int) ([]int, error) {
	m := g.mgr
	if m.model == Fixed {
		s, err := m.ints.PushTail(n)
		if err != nil {
			return nil, &MemoryError{Type: Work, Col: -1, Needed: (n - m.ints.Free()) * IntBytes}
		}
		return s, nil
	}
	if n < 0 {
		return nil, ErrBadSize
	}
	if !m.reserve(n * IntBytes) {
		return nil, &MemoryError{Type: Work, Col: -1, Needed: n * IntBytes}
	}
	g.workBytes += n * IntBytes
	return make([]int, n), nil
}

// AllocFloats returns a zeroed work array of n floats, from the tail in
// Fixed mode.
func (g *GlobalLU) AllocFloats(n int) ([]float64, error) {
	m := g.mgr
	if m.model == Fixed {
		s, err := m.floats.PushTail(n)
		if err != nil {
			return nil, &MemoryError{Type: Work, Col: -1, Needed: (n - m.floats.Free()) * FloatBytes}
		}
		return s, nil
	}
	if n < 0 {
		return nil, ErrBadSize
	}
	if !m.reserve(n * FloatBytes) {
		return nil, &MemoryError{Type: Work, Col: -1, Needed: n * FloatBytes}
	}
	g.workBytes += n * FloatBytes
	return make([]float64, n), nil
}

// FreeWork releases every work array.
func (g *GlobalLU) FreeWork() {
	m := g.mgr
	if m.model == Fixed {
		m.floats.ResetTail()
		m.ints.ResetTail()
		return
	}
	m.release(g.workBytes)
	g.workBytes = 0
}

// Release returns all storage to the Manager. The GlobalLU must not be
// used afterwards.
func (g *GlobalLU) Release() {
	m := g.mgr
	if m.model == Fixed {
		m.reset()
		return
	}
	g.FreeWork()
	m.release(numIndex * (g.N + 1) * IntBytes)
	for t := LUSup; t <= USub; t++ {
		m.release(g.size[t] * t.word())
	}
	g.size = [4]int{}
}
