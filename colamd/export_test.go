// SPDX-License-Identifier: MIT

package colamd

import "slices"

// GarbageContents builds the column and row forms of the pattern, kills the
// given rows and columns and returns the live (form, line, entry) triples
// before and after one garbage collection, plus the free slot before and
// after.
func GarbageContents(nRow, nCol int, a, p []int, deadRows, deadCols []int) (before, after [][3]int, pfreeBefore, pfreeAfter int, err error) {
	var st Stats
	st.reset()
	w := newWorkspace(nRow, nCol, a, p, true)
	if err = w.initRowsCols(p, &st); err != nil {
		return nil, nil, 0, 0, err
	}
	for _, r := range deadRows {
		w.rows.dead[r] = true
	}
	for _, c := range deadCols {
		w.cols.kill(c)
	}
	before = w.livePairs()
	pfreeBefore = w.pfree
	w.pfree = w.collectGarbage()
	after = w.livePairs()
	return before, after, pfreeBefore, w.pfree, nil
}

func (w *workspace) livePairs() [][3]int {
	var out [][3]int
	for c := 0; c < w.nCol; c++ {
		if !w.cols.alive(c) {
			continue
		}
		lo := w.cols.start[c]
		for _, r := range w.a[lo : lo+w.cols.length[c]] {
			if !w.rows.dead[r] {
				out = append(out, [3]int{0, c, r})
			}
		}
	}
	for r := 0; r < w.nRow; r++ {
		if w.rows.dead[r] {
			continue
		}
		lo := w.rows.start[r]
		for _, c := range w.a[lo : lo+w.rows.length[r]] {
			if w.cols.alive(c) {
				out = append(out, [3]int{1, r, c})
			}
		}
	}
	slices.SortFunc(out, func(x, y [3]int) int {
		for i := range x {
			if x[i] != y[i] {
				return x[i] - y[i]
			}
		}
		return 0
	})
	return out
}
