// SPDX-License-Identifier: MIT

package colamd

// collectGarbage compacts the live columns to the front of the workspace,
// followed by the live rows, dropping dead entries. It returns the new first
// free slot.
//
// Row starts are located by writing the one's complement of the row index
// over each row's first entry; the displaced entry is parked in the row's
// mark slot. Marks are therefore invalid afterwards and must be cleared.
func (w *workspace) collectGarbage() int {
	a, cols, rows := w.a, &w.cols, &w.rows

	dst := 0
	for c := 0; c < w.nCol; c++ {
		if !cols.alive(c) {
			continue
		}
		src := cols.start[c]
		cols.start[c] = dst
		for _, r := range a[src : src+cols.length[c]] {
			if !rows.dead[r] {
				a[dst] = r
				dst++
			}
		}
		cols.length[c] = dst - cols.start[c]
	}

	for r := 0; r < w.nRow; r++ {
		if rows.dead[r] || rows.length[r] == 0 {
			rows.dead[r] = true
			continue
		}
		s := rows.start[r]
		rows.mark[r] = a[s]
		a[s] = ^r
	}

	for src := dst; src < w.pfree; {
		if a[src] >= 0 {
			src++
			continue
		}
		r := ^a[src]
		a[src] = rows.mark[r]
		rows.start[r] = dst
		n := rows.length[r]
		for j := 0; j < n; j++ {
			c := a[src]
			src++
			if cols.alive(c) {
				a[dst] = c
				dst++
			}
		}
		rows.length[r] = dst - rows.start[r]
	}
	return dst
}
