// SPDX-License-Identifier: MIT

package sparse

import "gonum.org/v1/gonum/mat"

// NewCompCol validates and wraps caller-owned arrays as a CompCol.
// The arrays are not copied. val may be nil for a pattern-only matrix.
//
// Errors: ErrBadShape, ErrBadPointers, ErrIndexOutOfRange (wrapped).
func NewCompCol(nrow, ncol int, colPtr, rowInd []int, val []float64) (*CompCol, error) {
	a := &CompCol{NRow: nrow, NCol: ncol, ColPtr: colPtr, RowInd: rowInd, Val: val}
	if err := a.Validate(); err != nil {
		return nil, sparseErrorf(opNewCompCol, err)
	}
	return a, nil
}

// Validate checks shape, pointer monotonicity and index bounds.
func (a *CompCol) Validate() error {
	if a == nil {
		return ErrNilMatrix
	}
	if a.NRow < 0 || a.NCol < 0 || len(a.ColPtr) != a.NCol+1 {
		return ErrBadShape
	}
	if err := checkPointers(a.ColPtr, len(a.RowInd)); err != nil {
		return err
	}
	if a.Val != nil && len(a.Val) < a.ColPtr[a.NCol] {
		return ErrBadShape
	}
	for _, r := range a.RowInd[:a.ColPtr[a.NCol]] {
		if r < 0 || r >= a.NRow {
			return ErrIndexOutOfRange
		}
	}
	return nil
}

// Validate checks shape, pointer monotonicity and index bounds.
func (a *CompRow) Validate() error {
	if a == nil {
		return ErrNilMatrix
	}
	return a.AsTransposeCol().Validate()
}

// checkPointers verifies ptr[0] == 0, non-decreasing entries and a last
// pointer that fits in an index array of length cap.
func checkPointers(ptr []int, capacity int) error {
	if ptr[0] != 0 {
		return ErrBadPointers
	}
	for j := 1; j < len(ptr); j++ {
		if ptr[j] < ptr[j-1] {
			return ErrBadPointers
		}
	}
	if ptr[len(ptr)-1] > capacity {
		return ErrBadPointers
	}
	return nil
}

// NewDense allocates a zeroed nrow×ncol column-major matrix with LD = max(1, nrow).
func NewDense(nrow, ncol int) (*Dense, error) {
	if nrow < 0 || ncol < 0 {
		return nil, sparseErrorf(opNewDense, ErrBadShape)
	}
	ld := max(1, nrow)
	return &Dense{NRow: nrow, NCol: ncol, LD: ld, Data: make([]float64, ld*ncol)}, nil
}

// NewDenseFrom wraps column-major data with LD = max(1, nrow). data is not
// copied and must hold at least LD*ncol elements.
func NewDenseFrom(nrow, ncol int, data []float64) (*Dense, error) {
	if nrow < 0 || ncol < 0 {
		return nil, sparseErrorf(opNewDense, ErrBadShape)
	}
	ld := max(1, nrow)
	if len(data) < ld*ncol {
		return nil, sparseErrorf(opNewDense, ErrBadShape)
	}
	return &Dense{NRow: nrow, NCol: ncol, LD: ld, Data: data}, nil
}

// DenseFromMat copies a gonum matrix into column-major storage.
func DenseFromMat(m mat.Matrix) *Dense {
	r, c := m.Dims()
	d, _ := NewDense(r, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			d.Data[i+j*d.LD] = m.At(i, j)
		}
	}
	return d
}

// ToMat copies d into a row-major gonum matrix.
func (d *Dense) ToMat() *mat.Dense {
	m := mat.NewDense(max(1, d.NRow), max(1, d.NCol), nil)
	if d.NRow == 0 || d.NCol == 0 {
		return m
	}
	for j := 0; j < d.NCol; j++ {
		for i := 0; i < d.NRow; i++ {
			m.Set(i, j, d.Data[i+j*d.LD])
		}
	}
	return m
}

// FromTriplets assembles a CompCol from coordinate entries. Duplicate
// coordinates are summed; every output column is sorted by row.
// vals may be nil to build a pattern-only matrix.
//
// Implementation:
//   - Stage 1: bucket entries by row (stable counting sort).
//   - Stage 2: bucket the row-ordered stream by column, which leaves each
//     column sorted by row.
//   - Stage 3: merge adjacent duplicates in place and compact.
//
// Complexity: O(nrow + ncol + nnz) time and space.
func FromTriplets(nrow, ncol int, rows, cols []int, vals []float64) (*CompCol, error) {
	if nrow < 0 || ncol < 0 || len(rows) != len(cols) || (vals != nil && len(vals) != len(rows)) {
		return nil, sparseErrorf(opFromTriplets, ErrBadShape)
	}
	nz := len(rows)
	for k := 0; k < nz; k++ {
		if rows[k] < 0 || rows[k] >= nrow || cols[k] < 0 || cols[k] >= ncol {
			return nil, sparseErrorf(opFromTriplets, ErrIndexOutOfRange)
		}
	}

	// Stage 1: order of entries by row.
	rowCount := make([]int, nrow+1)
	for _, r := range rows {
		rowCount[r+1]++
	}
	for i := 0; i < nrow; i++ {
		rowCount[i+1] += rowCount[i]
	}
	byRow := make([]int, nz)
	for k, r := range rows {
		byRow[rowCount[r]] = k
		rowCount[r]++
	}

	// Stage 2: column buckets fed in row order.
	colPtr := make([]int, ncol+1)
	for _, c := range cols {
		colPtr[c+1]++
	}
	for j := 0; j < ncol; j++ {
		colPtr[j+1] += colPtr[j]
	}
	next := append([]int(nil), colPtr[:ncol]...)
	rowInd := make([]int, nz)
	var val []float64
	if vals != nil {
		val = make([]float64, nz)
	}
	for _, k := range byRow {
		c := cols[k]
		rowInd[next[c]] = rows[k]
		if val != nil {
			val[next[c]] = vals[k]
		}
		next[c]++
	}

	// Stage 3: merge duplicates.
	w := 0
	start := 0
	for j := 0; j < ncol; j++ {
		end := colPtr[j+1]
		colPtr[j] = w
		for p := start; p < end; p++ {
			if w > colPtr[j] && rowInd[w-1] == rowInd[p] {
				if val != nil {
					val[w-1] += val[p]
				}
				continue
			}
			rowInd[w] = rowInd[p]
			if val != nil {
				val[w] = val[p]
			}
			w++
		}
		start = end
	}
	colPtr[ncol] = w
	rowInd = rowInd[:w]
	if val != nil {
		val = val[:w]
	}
	return &CompCol{NRow: nrow, NCol: ncol, ColPtr: colPtr, RowInd: rowInd, Val: val}, nil
}

// FromDense builds a CompCol holding the nonzero entries of d.
func FromDense(d *Dense) *CompCol {
	colPtr := make([]int, d.NCol+1)
	var rowInd []int
	var val []float64
	for j := 0; j < d.NCol; j++ {
		for i := 0; i < d.NRow; i++ {
			if v := d.At(i, j); v != 0 {
				rowInd = append(rowInd, i)
				val = append(val, v)
			}
		}
		colPtr[j+1] = len(rowInd)
	}
	if val == nil {
		val = []float64{}
		rowInd = []int{}
	}
	return &CompCol{NRow: d.NRow, NCol: d.NCol, ColPtr: colPtr, RowInd: rowInd, Val: val}
}
