// SPDX-License-Identifier: MIT

package colamd

// Symmetric computes a fill-reducing symmetric permutation of the n×n
// pattern a[p[0]:p[n]], using the pattern of A+Aᵗ. Only the strictly lower
// triangular entries (row > column) are read, so either triangle or the
// full pattern may be passed. a and p are not modified.
//
// perm must hold at least n+1 entries; on success perm[0:n] is the
// permutation (perm[k] is the row and column placed at position k).
//
// Each off-diagonal entry (i, j) of the pattern becomes a row of an
// incidence matrix M with entries in columns i and j; MᵗM has the pattern
// of A+Aᵗ, so ordering the columns of M orders A. Dense rows of A show up as
// dense columns of M and are ordered last.
func Symmetric(n int, a, p, perm []int, knobs *Knobs, stats *Stats, opts ...Option) error {
	var local Stats
	if stats == nil {
		stats = &local
	}
	stats.reset()

	switch {
	case a == nil:
		stats[StatStatus] = StatusANotPresent
		return colamdErrorf(opSymmetric, ErrNilArray)
	case p == nil:
		stats[StatStatus] = StatusPNotPresent
		return colamdErrorf(opSymmetric, ErrNilArray)
	case n < 0:
		stats[StatStatus] = StatusNColNegative
		stats[StatInfo1] = n
		return colamdErrorf(opSymmetric, ErrNegativeDimension)
	case len(p) < n+1 || len(perm) < n+1:
		stats[StatStatus] = StatusPNotPresent
		return colamdErrorf(opSymmetric, ErrNilArray)
	}
	nnz := p[n]
	if nnz < 0 {
		stats[StatStatus] = StatusNnzNegative
		stats[StatInfo1] = nnz
		return colamdErrorf(opSymmetric, ErrNnzNegative)
	}
	if p[0] != 0 {
		stats[StatStatus] = StatusP0Nonzero
		stats[StatInfo1] = p[0]
		return colamdErrorf(opSymmetric, ErrP0Nonzero)
	}
	if len(a) < nnz {
		stats[StatStatus] = StatusANotPresent
		return colamdErrorf(opSymmetric, ErrNilArray)
	}
	k := DefaultKnobs()
	if knobs != nil {
		k = *knobs
	}

	// Column counts of M, with the same validation Order performs.
	count := make([]int, n+1)
	mark := make([]int, n+1)
	for i := range mark {
		mark[i] = -1
	}
	jumbled := false
	for j := 0; j < n; j++ {
		if p[j+1]-p[j] < 0 {
			stats[StatStatus] = StatusColLengthNegative
			stats[StatInfo1] = j
			stats[StatInfo2] = p[j+1] - p[j]
			return colamdErrorf(opSymmetric, ErrColLengthNegative)
		}
		last := -1
		for _, i := range a[p[j]:p[j+1]] {
			if i < 0 || i >= n {
				stats[StatStatus] = StatusRowIndexOutOfRange
				stats[StatInfo1] = j
				stats[StatInfo2] = i
				stats[StatInfo3] = n
				return colamdErrorf(opSymmetric, ErrRowIndexOutOfRange)
			}
			if i <= last || mark[i] == j {
				jumbled = true
				stats[StatInfo1] = j
				stats[StatInfo2] = i
				stats[StatInfo3]++
			}
			if i > j && mark[i] != j {
				count[i]++
				count[j]++
			}
			mark[i] = j
			last = i
		}
	}

	// Column pointers of M live in perm until the ordering overwrites them.
	perm[0] = 0
	for j := 1; j <= n; j++ {
		perm[j] = perm[j-1] + count[j-1]
	}
	copy(count, perm[:n])

	mnz := perm[n]
	nRow := mnz / 2
	m := make([]int, Recommended(mnz, nRow, n))
	for i := range mark {
		mark[i] = -1
	}
	row := 0
	for j := 0; j < n; j++ {
		for _, i := range a[p[j]:p[j+1]] {
			if i > j && mark[i] != j {
				m[count[i]] = row
				count[i]++
				m[count[j]] = row
				count[j]++
				row++
				mark[i] = j
			}
		}
	}

	// M has exactly two entries per row, so none is dense. A dense column of
	// M is a dense row and column of A; its threshold is rescaled from n to
	// the row count of M.
	ck := k
	ck[KnobDenseRow] = 1
	ck[KnobDenseCol] = k[KnobDenseRow]
	if k[KnobDenseRow] >= 0 && nRow > 0 {
		ck[KnobDenseCol] = k[KnobDenseRow] * float64(n) / float64(nRow)
	}
	if err := Order(nRow, n, m, perm, &ck, stats, opts...); err != nil {
		return colamdErrorf(opSymmetric, err)
	}
	if jumbled {
		stats[StatStatus] = StatusJumbled
	}
	stats[StatDenseRows] = stats[StatDenseCols]
	return nil
}
