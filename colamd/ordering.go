// SPDX-License-Identifier: MIT

package colamd

import (
	"log/slog"
	"slices"

	"github.com/katalvlaran/sparselu/internal/invariant"
)

// findOrdering orders the principal columns by approximate minimum degree
// and returns the number of garbage collections performed.
func (w *workspace) findOrdering(nCol2, maxDeg int, log *slog.Logger) int {
	a, cols, rows := w.a, &w.cols, &w.rows
	nCol := w.nCol
	tag := w.clearMark(0)
	minScore := 0
	ngarbage := 0

	for k := 0; k < nCol2; {
		// Pivot: head of the lowest non-empty degree list.
		for w.head[minScore] == empty && minScore < nCol {
			minScore++
		}
		pivotCol := w.head[minScore]
		if invariant.Enabled {
			invariant.Check(pivotCol >= 0 && cols.alive(pivotCol), "pivot column %d not alive", pivotCol)
		}
		next := cols.next[pivotCol]
		w.head[minScore] = next
		if next != empty {
			cols.prev[next] = empty
		}

		pivotScore := cols.score[pivotCol]
		cols.score[pivotCol] = k
		pivotThick := cols.thick[pivotCol]
		k += pivotThick

		// Make room for the pivot row.
		needed := min(pivotScore, nCol-k)
		if w.pfree+needed >= w.alen {
			w.pfree = w.collectGarbage()
			ngarbage++
			tag = w.clearMark(0)
			log.Debug("colamd: garbage collection",
				slog.Int("count", ngarbage), slog.Int("pfree", w.pfree), slog.Int("alen", w.alen))
		}

		// Pivot row: union of the rows of the pivot column. Columns already
		// placed carry a negated thickness.
		pivotRowStart := w.pfree
		pivotRowDeg := 0
		cols.thick[pivotCol] = -pivotThick
		pcLo, pcLen := cols.start[pivotCol], cols.length[pivotCol]
		for _, r := range a[pcLo : pcLo+pcLen] {
			if rows.dead[r] {
				continue
			}
			rlo := rows.start[r]
			for _, c := range a[rlo : rlo+rows.length[r]] {
				t := cols.thick[c]
				if t > 0 && cols.alive(c) {
					cols.thick[c] = -t
					a[w.pfree] = c
					w.pfree++
					pivotRowDeg += t
				}
			}
		}
		cols.thick[pivotCol] = pivotThick
		maxDeg = max(maxDeg, pivotRowDeg)

		// Every row of the pivot column is consumed, the pivot row included.
		for _, r := range a[pcLo : pcLo+pcLen] {
			rows.dead[r] = true
		}

		pivotRowLen := w.pfree - pivotRowStart
		pivotRow := empty
		if pivotRowLen > 0 {
			pivotRow = a[pcLo]
		}
		pivotCols := a[pivotRowStart : pivotRowStart+pivotRowLen]

		// Set differences |Lr \ pivot row| for every row touching the
		// pivot row, kept in mark relative to tag.
		for _, c := range pivotCols {
			t := -cols.thick[c]
			cols.thick[c] = t
			w.listRemove(c, cols.score[c])

			lo := cols.start[c]
			for _, r := range a[lo : lo+cols.length[c]] {
				if rows.dead[r] {
					continue
				}
				diff := rows.mark[r] - tag
				if diff < 0 {
					diff = rows.degree[r]
				}
				diff -= t
				if invariant.Enabled {
					invariant.Check(diff >= 0, "row %d set difference %d", r, diff)
				}
				if diff == 0 && w.aggressive {
					rows.dead[r] = true
				} else {
					rows.mark[r] = diff + tag
				}
			}
		}

		// Sum the set differences into scores, compact columns and hash
		// the survivors for supercolumn detection.
		for _, c := range pivotCols {
			hash := 0
			score := 0
			lo := cols.start[c]
			dst := lo
			for _, r := range a[lo : lo+cols.length[c]] {
				if rows.dead[r] {
					continue
				}
				a[dst] = r
				dst++
				hash += r
				score = min(score+rows.mark[r]-tag, nCol)
			}
			cols.length[c] = dst - lo

			if cols.length[c] == 0 {
				// Mass elimination: only the pivot row was left.
				cols.kill(c)
				pivotRowDeg -= cols.thick[c]
				cols.score[c] = k
				k += cols.thick[c]
				continue
			}
			cols.score[c] = score
			hash %= nCol + 1
			cols.prev[c] = hash
			cols.next[c] = w.hashHead[hash]
			w.hashHead[hash] = c
		}

		w.detectSuperCols(pivotCols)

		cols.kill(pivotCol)
		tag = w.clearMark(tag + maxDeg + 1)

		// Finalize scores, append the pivot row to its columns and relist.
		dst := pivotRowStart
		for _, c := range pivotCols {
			if !cols.alive(c) {
				continue
			}
			a[dst] = c
			dst++
			a[cols.start[c]+cols.length[c]] = pivotRow
			cols.length[c]++

			score := cols.score[c] + pivotRowDeg - cols.thick[c]
			score = min(score, nCol-k-cols.thick[c])
			if invariant.Enabled {
				invariant.Check(score >= 0 && score <= nCol, "column %d score %d", c, score)
			}
			cols.score[c] = score
			w.listInsert(c, score)
			minScore = min(minScore, score)
		}

		if pivotRowDeg > 0 {
			rows.start[pivotRow] = pivotRowStart
			rows.length[pivotRow] = dst - pivotRowStart
			rows.degree[pivotRow] = pivotRowDeg
			rows.mark[pivotRow] = 0
			rows.dead[pivotRow] = false
		}
	}
	return ngarbage
}

// detectSuperCols merges columns of the pivot row that share score, length
// and row pattern. Candidates are grouped by the hash buckets filled in
// findOrdering; every visited bucket is emptied.
func (w *workspace) detectSuperCols(pivotCols []int) {
	a, cols := w.a, &w.cols
	for _, col := range pivotCols {
		if !cols.alive(col) {
			continue
		}
		h := cols.prev[col]
		for super := w.hashHead[h]; super != empty; super = cols.next[super] {
			length := cols.length[super]
			sLo := cols.start[super]
			prev := super
			for c := cols.next[super]; c != empty; c = cols.next[c] {
				if cols.length[c] != length || cols.score[c] != cols.score[super] {
					prev = c
					continue
				}
				cLo := cols.start[c]
				if !slices.Equal(a[sLo:sLo+length], a[cLo:cLo+length]) {
					prev = c
					continue
				}
				cols.thick[super] += cols.thick[c]
				cols.absorb(c, super)
				cols.next[prev] = cols.next[c]
			}
		}
		w.hashHead[h] = empty
	}
}

// orderChildren assigns every absorbed column an order next to its
// principal ancestor, compressing parent paths, and writes the permutation
// to p[0:nCol].
func (w *workspace) orderChildren(p []int) {
	cols := &w.cols
	for i := 0; i < w.nCol; i++ {
		if cols.kind[i] != colAbsorbed || cols.order(i) != empty {
			continue
		}
		parent := i
		for cols.kind[parent] != colOrdered {
			parent = cols.parent(parent)
		}
		order := cols.order(parent)
		c := i
		for cols.order(c) == empty {
			cols.score[c] = order
			order++
			up := cols.parent(c)
			cols.thick[c] = parent
			c = up
		}
		cols.score[parent] = order
	}
	for c := 0; c < w.nCol; c++ {
		p[cols.order(c)] = c
	}
}
