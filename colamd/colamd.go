// SPDX-License-Identifier: MIT

package colamd

import (
	"log/slog"

	"github.com/katalvlaran/sparselu/internal/invariant"
)

// Order computes a fill-reducing column permutation of the nRow×nCol
// pattern held in a[p[0]:p[nCol]] (column-compressed, 0-based).
//
// On success p[0:nCol] holds the permutation: p[k] is the column placed at
// position k. a is used as workspace and its contents are destroyed; its
// length must be at least Minimum(p[nCol], nRow, nCol), Recommended is
// faster. knobs may be nil for DefaultKnobs, stats may be nil.
//
// On failure p is left undefined, the status in stats is negative and the
// returned error wraps one of the package sentinels.
func Order(nRow, nCol int, a, p []int, knobs *Knobs, stats *Stats, opts ...Option) error {
	o := gatherOptions(opts)
	var local Stats
	if stats == nil {
		stats = &local
	}
	stats.reset()

	if err := checkArgs(nRow, nCol, a, p, stats); err != nil {
		return colamdErrorf(opOrder, err)
	}
	k := DefaultKnobs()
	if knobs != nil {
		k = *knobs
	}

	w := newWorkspace(nRow, nCol, a, p, k[KnobNoAggressive] == 0)
	if err := w.initRowsCols(p, stats); err != nil {
		return colamdErrorf(opOrder, err)
	}
	nRow2, nCol2, maxDeg := w.initScoring(k)
	ngarbage := w.findOrdering(nCol2, maxDeg, o.logger)
	w.orderChildren(p)

	stats[StatDenseRows] = nRow - nRow2
	stats[StatDenseCols] = nCol - nCol2
	stats[StatGarbage] = ngarbage
	o.logger.Debug("colamd: ordered",
		slog.Int("n_row", nRow), slog.Int("n_col", nCol),
		slog.Int("dense_rows", stats[StatDenseRows]),
		slog.Int("dense_cols", stats[StatDenseCols]),
		slog.Int("garbage_collections", ngarbage),
		slog.Bool("jumbled", stats.Jumbled()))
	return nil
}

// checkArgs validates the arguments that can be checked before the
// workspace is touched.
func checkArgs(nRow, nCol int, a, p []int, stats *Stats) error {
	switch {
	case a == nil:
		stats[StatStatus] = StatusANotPresent
		return ErrNilArray
	case p == nil:
		stats[StatStatus] = StatusPNotPresent
		return ErrNilArray
	case nRow < 0:
		stats[StatStatus] = StatusNRowNegative
		stats[StatInfo1] = nRow
		return ErrNegativeDimension
	case nCol < 0:
		stats[StatStatus] = StatusNColNegative
		stats[StatInfo1] = nCol
		return ErrNegativeDimension
	case len(p) < nCol+1:
		stats[StatStatus] = StatusPNotPresent
		return ErrNilArray
	}
	nnz := p[nCol]
	if nnz < 0 {
		stats[StatStatus] = StatusNnzNegative
		stats[StatInfo1] = nnz
		return ErrNnzNegative
	}
	if p[0] != 0 {
		stats[StatStatus] = StatusP0Nonzero
		stats[StatInfo1] = p[0]
		return ErrP0Nonzero
	}
	if need := Minimum(nnz, nRow, nCol); need > len(a) {
		stats[StatStatus] = StatusATooSmall
		stats[StatInfo1] = need
		stats[StatInfo2] = len(a)
		return ErrWorkspaceTooSmall
	}
	return nil
}

// initRowsCols builds the row form after the column form, checks the input
// and, when columns are unsorted or hold duplicates, rebuilds a sorted,
// duplicate-free column form.
func (w *workspace) initRowsCols(p []int, stats *Stats) error {
	a, cols, rows := w.a, &w.cols, &w.rows

	for c := 0; c < w.nCol; c++ {
		cols.start[c] = p[c]
		cols.length[c] = p[c+1] - p[c]
		if cols.length[c] < 0 {
			stats[StatStatus] = StatusColLengthNegative
			stats[StatInfo1] = c
			stats[StatInfo2] = cols.length[c]
			return ErrColLengthNegative
		}
		cols.thick[c] = 1
		cols.score[c] = 0
		cols.prev[c] = empty
		cols.next[c] = empty
		cols.kind[c] = colAlive
	}

	stats[StatInfo3] = 0
	for r := 0; r < w.nRow; r++ {
		rows.length[r] = 0
		rows.mark[r] = -1
	}
	for c := 0; c < w.nCol; c++ {
		last := -1
		for _, r := range a[p[c]:p[c+1]] {
			if r < 0 || r >= w.nRow {
				stats[StatStatus] = StatusRowIndexOutOfRange
				stats[StatInfo1] = c
				stats[StatInfo2] = r
				stats[StatInfo3] = w.nRow
				return ErrRowIndexOutOfRange
			}
			if r <= last || rows.mark[r] == c {
				stats[StatStatus] = StatusJumbled
				stats[StatInfo1] = c
				stats[StatInfo2] = r
				stats[StatInfo3]++
			}
			if rows.mark[r] != c {
				rows.length[r]++
			} else {
				cols.length[c]--
			}
			rows.mark[r] = c
			last = r
		}
	}

	// Row form starts right after the column form; degree is the fill cursor.
	rows.start[0] = p[w.nCol]
	rows.degree[0] = rows.start[0]
	rows.mark[0] = -1
	for r := 1; r < w.nRow; r++ {
		rows.start[r] = rows.start[r-1] + rows.length[r-1]
		rows.degree[r] = rows.start[r]
		rows.mark[r] = -1
	}

	jumbled := stats[StatStatus] == StatusJumbled
	for c := 0; c < w.nCol; c++ {
		for _, r := range a[p[c]:p[c+1]] {
			if jumbled {
				if rows.mark[r] == c {
					continue
				}
				rows.mark[r] = c
			}
			a[rows.degree[r]] = c
			rows.degree[r]++
		}
	}

	for r := 0; r < w.nRow; r++ {
		rows.mark[r] = 0
		rows.degree[r] = rows.length[r]
		rows.dead[r] = false
	}
	w.pfree = 2 * p[w.nCol]

	if !jumbled {
		return nil
	}

	// Rebuild the column form from the duplicate-free row form. A gap may
	// remain before the row form; the first collection reclaims it.
	cols.start[0] = 0
	p[0] = 0
	for c := 1; c < w.nCol; c++ {
		cols.start[c] = cols.start[c-1] + cols.length[c-1]
		p[c] = cols.start[c]
	}
	for r := 0; r < w.nRow; r++ {
		lo := rows.start[r]
		for _, c := range a[lo : lo+rows.length[r]] {
			a[p[c]] = r
			p[c]++
		}
	}
	return nil
}

// denseCount returns the entry count above which a line of the other
// dimension n is treated as dense.
func denseCount(knob float64, n int) int {
	if knob < 0 {
		return n - 1
	}
	c := int(knob * float64(n))
	return min(max(c, 0), n)
}

// initScoring kills dense and empty columns and rows, computes the initial
// column scores and fills the degree lists. It returns the number of rows
// and columns left and the largest remaining row degree.
func (w *workspace) initScoring(k Knobs) (nRow2, nCol2, maxDeg int) {
	a, cols, rows := w.a, &w.cols, &w.rows
	denseRow := denseCount(k[KnobDenseRow], w.nCol)
	denseCol := denseCount(k[KnobDenseCol], w.nRow)
	nCol2, nRow2 = w.nCol, w.nRow

	// Empty columns go last, in natural order.
	for c := w.nCol - 1; c >= 0; c-- {
		if cols.length[c] == 0 {
			nCol2--
			cols.score[c] = nCol2
			cols.kill(c)
		}
	}

	// Dense columns go last, in natural order, before the empty ones.
	for c := w.nCol - 1; c >= 0; c-- {
		if !cols.alive(c) || cols.length[c] <= denseCol {
			continue
		}
		nCol2--
		cols.score[c] = nCol2
		lo := cols.start[c]
		for _, r := range a[lo : lo+cols.length[c]] {
			rows.degree[r]--
		}
		cols.kill(c)
	}

	for r := 0; r < w.nRow; r++ {
		deg := rows.degree[r]
		if invariant.Enabled {
			invariant.Check(deg >= 0 && deg <= w.nCol, "row %d degree %d out of range", r, deg)
		}
		if deg > denseRow || deg == 0 {
			rows.dead[r] = true
			nRow2--
		} else {
			maxDeg = max(maxDeg, deg)
		}
	}

	// Initial scores; columns are compacted to drop the rows just killed.
	for c := w.nCol - 1; c >= 0; c-- {
		if !cols.alive(c) {
			continue
		}
		score := 0
		lo := cols.start[c]
		dst := lo
		for _, r := range a[lo : lo+cols.length[c]] {
			if rows.dead[r] {
				continue
			}
			a[dst] = r
			dst++
			score = min(score+rows.degree[r]-1, w.nCol)
		}
		if dst == lo {
			nCol2--
			cols.score[c] = nCol2
			cols.kill(c)
			continue
		}
		cols.length[c] = dst - lo
		cols.score[c] = score
	}

	for c := 0; c <= w.nCol; c++ {
		w.head[c] = empty
	}
	// Reverse insertion leaves low column indices at the list heads.
	for c := w.nCol - 1; c >= 0; c-- {
		if cols.alive(c) {
			w.listInsert(c, cols.score[c])
		}
	}
	return nRow2, nCol2, maxDeg
}

// listInsert pushes column c at the head of degree list score.
func (w *workspace) listInsert(c, score int) {
	cols := &w.cols
	next := w.head[score]
	cols.prev[c] = empty
	cols.next[c] = next
	if next != empty {
		cols.prev[next] = c
	}
	w.head[score] = c
}

// listRemove unlinks column c from degree list score.
func (w *workspace) listRemove(c, score int) {
	cols := &w.cols
	prev, next := cols.prev[c], cols.next[c]
	if prev == empty {
		w.head[score] = next
	} else {
		cols.next[prev] = next
	}
	if next != empty {
		cols.prev[next] = prev
	}
}
