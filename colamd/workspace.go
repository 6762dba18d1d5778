// SPDX-License-Identifier: MIT

package colamd

import (
	"math"

	"github.com/katalvlaran/sparselu/internal/invariant"
)

const empty = -1

// Record sizes in workspace integers.
const (
	colRecordInts = 6
	rowRecordInts = 4
)

// Minimum returns the smallest workspace length Order accepts, or -1 when
// an argument is negative.
func Minimum(nnz, nRow, nCol int) int {
	if nnz < 0 || nRow < 0 || nCol < 0 {
		return -1
	}
	return 2*nnz + colRecordInts*(nCol+1) + rowRecordInts*(nRow+1) + nCol
}

// Recommended returns Minimum plus nnz/5 of elbow room, which keeps the
// number of garbage collections low. Returns -1 on negative arguments.
func Recommended(nnz, nRow, nCol int) int {
	m := Minimum(nnz, nRow, nCol)
	if m < 0 {
		return -1
	}
	return m + nnz/5
}

// arena hands out bounded views of a caller-owned integer buffer.
type arena struct {
	buf []int
	off int
}

func (ar *arena) take(n int) []int {
	s := ar.buf[ar.off : ar.off+n : ar.off+n]
	ar.off += n
	return s
}

type colKind uint8

const (
	colAlive    colKind = iota
	colOrdered          // principal column, eliminated; score slot holds its order
	colAbsorbed         // merged into a supercolumn; thick slot holds its parent
)

// colTable holds the column records. Slots are shared between lifecycle
// phases and are only read through the accessor that matches kind.
type colTable struct {
	start  []int
	length []int
	thick  []int // thickness while alive, parent once absorbed
	score  []int // score while alive, order once dead
	prev   []int // degree-list predecessor, or hash while awaiting supercolumn detection
	next   []int // degree-list or hash-bucket successor
	kind   []colKind
}

func (c *colTable) alive(j int) bool { return c.kind[j] == colAlive }

func (c *colTable) kill(j int) { c.kind[j] = colOrdered }

func (c *colTable) absorb(j, into int) {
	c.kind[j] = colAbsorbed
	c.thick[j] = into
	c.score[j] = empty
}

func (c *colTable) parent(j int) int { return c.thick[j] }

func (c *colTable) order(j int) int { return c.score[j] }

// rowTable holds the row records.
type rowTable struct {
	start  []int
	length []int
	degree []int // external degree; fill cursor while the row form is built
	mark   []int // tag mark; first column while a collection runs
	dead   []bool
}

// workspace bundles the state of one ordering call.
type workspace struct {
	nRow, nCol int
	a          []int // column/row forms, a[:alen]
	alen       int
	pfree      int // first free slot of a
	cols       colTable
	rows       rowTable
	head       []int // degree-list heads, indexed by score
	hashHead   []int // supercolumn hash buckets
	maxMark    int
	aggressive bool
}

// newWorkspace carves the column and row records from the tail of a.
func newWorkspace(nRow, nCol int, a, p []int, aggressive bool) *workspace {
	colSize := colRecordInts * (nCol + 1)
	rowSize := rowRecordInts * (nRow + 1)
	alen := len(a) - colSize - rowSize
	ar := &arena{buf: a, off: alen}

	w := &workspace{
		nRow:       nRow,
		nCol:       nCol,
		a:          a[:alen],
		alen:       alen,
		head:       p[:nCol+1],
		hashHead:   make([]int, nCol+1),
		maxMark:    math.MaxInt - nCol,
		aggressive: aggressive,
	}
	w.cols = colTable{
		start:  ar.take(nCol + 1),
		length: ar.take(nCol + 1),
		thick:  ar.take(nCol + 1),
		score:  ar.take(nCol + 1),
		prev:   ar.take(nCol + 1),
		next:   ar.take(nCol + 1),
		kind:   make([]colKind, nCol+1),
	}
	w.rows = rowTable{
		start:  ar.take(nRow + 1),
		length: ar.take(nRow + 1),
		degree: ar.take(nRow + 1),
		mark:   ar.take(nRow + 1),
		dead:   make([]bool, nRow+1),
	}
	for i := range w.hashHead {
		w.hashHead[i] = empty
	}
	return w
}

// clearMark resets the row marks when tag has wrapped or reached maxMark
// and returns the tag to use next.
func (w *workspace) clearMark(tag int) int {
	if tag <= 0 || tag >= w.maxMark {
		for r := 0; r < w.nRow; r++ {
			if !w.rows.dead[r] {
				w.rows.mark[r] = 0
			}
		}
		tag = 1
	}
	if invariant.Enabled {
		invariant.Check(tag < w.maxMark, "colamd: mark tag %d overflows %d", tag, w.maxMark)
	}
	return tag
}
