// SPDX-License-Identifier: MIT

package sparse

import "math"

// Transpose returns Aᵗ as a new CompCol with sorted columns. Duplicate row
// indices in a are carried over, not summed.
func (a *CompCol) Transpose() *CompCol {
	nnz := a.Nnz()
	colPtr := make([]int, a.NRow+1)
	for _, r := range a.RowInd[:nnz] {
		colPtr[r+1]++
	}
	for i := 0; i < a.NRow; i++ {
		colPtr[i+1] += colPtr[i]
	}
	next := append([]int(nil), colPtr[:a.NRow]...)
	rowInd := make([]int, nnz)
	var val []float64
	if a.Val != nil {
		val = make([]float64, nnz)
	}
	for j := 0; j < a.NCol; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			r := a.RowInd[p]
			rowInd[next[r]] = j
			if val != nil {
				val[next[r]] = a.Val[p]
			}
			next[r]++
		}
	}
	return &CompCol{NRow: a.NCol, NCol: a.NRow, ColPtr: colPtr, RowInd: rowInd, Val: val}
}

// ToCompRow converts a to row-compressed form.
func (a *CompCol) ToCompRow() *CompRow {
	t := a.Transpose()
	return &CompRow{NRow: a.NRow, NCol: a.NCol, RowPtr: t.ColPtr, ColInd: t.RowInd, Val: t.Val}
}

// ToCompCol converts a to column-compressed form.
func (a *CompRow) ToCompCol() *CompCol {
	return a.AsTransposeCol().Transpose()
}

// PermuteCols returns the view A·Pcᵗ in which column permC[j] of the view is
// column j of a. Index and value arrays are shared with a.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrBadPermutation (wrapped).
func PermuteCols(a *CompCol, permC []int) (*PermCol, error) {
	if a == nil {
		return nil, sparseErrorf(opPermuteCols, ErrNilMatrix)
	}
	if len(permC) < a.NCol {
		return nil, sparseErrorf(opPermuteCols, ErrDimensionMismatch)
	}
	if !IsPermutation(permC[:a.NCol]) {
		return nil, sparseErrorf(opPermuteCols, ErrBadPermutation)
	}
	v := &PermCol{
		NRow:   a.NRow,
		NCol:   a.NCol,
		ColBeg: make([]int, a.NCol),
		ColEnd: make([]int, a.NCol),
		RowInd: a.RowInd,
		Val:    a.Val,
	}
	for j := 0; j < a.NCol; j++ {
		v.ColBeg[permC[j]] = a.ColPtr[j]
		v.ColEnd[permC[j]] = a.ColPtr[j+1]
	}
	return v, nil
}

// IsPermutation reports whether p is a bijection on 0..len(p)-1.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// InversePerm returns q with q[p[i]] = i.
func InversePerm(p []int) []int {
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// MulVec computes y = A·x (trans false) or y = Aᵗ·x (trans true).
// y is overwritten.
func (a *CompCol) MulVec(y, x []float64, trans bool) error {
	nx, ny := a.NCol, a.NRow
	if trans {
		nx, ny = ny, nx
	}
	if len(x) < nx || len(y) < ny {
		return sparseErrorf(opMulVec, ErrDimensionMismatch)
	}
	if a.Val == nil {
		return sparseErrorf(opMulVec, ErrBadShape)
	}
	if !trans {
		clear(y[:ny])
		for j := 0; j < a.NCol; j++ {
			xj := x[j]
			if xj == 0 {
				continue
			}
			for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
				y[a.RowInd[p]] += a.Val[p] * xj
			}
		}
		return nil
	}
	for j := 0; j < a.NCol; j++ {
		var s float64
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			s += a.Val[p] * x[a.RowInd[p]]
		}
		y[j] = s
	}
	return nil
}

// Norm1 returns the maximum absolute column sum, or 0 for a pattern-only
// matrix.
func (a *CompCol) Norm1() float64 {
	if a.Val == nil {
		return 0
	}
	var m float64
	for j := 0; j < a.NCol; j++ {
		var s float64
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			s += math.Abs(a.Val[p])
		}
		m = max(m, s)
	}
	return m
}

// NormInf returns the maximum absolute row sum, or 0 for a pattern-only
// matrix.
func (a *CompCol) NormInf() float64 {
	if a.Val == nil {
		return 0
	}
	rs := make([]float64, a.NRow)
	for p := 0; p < a.Nnz(); p++ {
		rs[a.RowInd[p]] += math.Abs(a.Val[p])
	}
	var m float64
	for _, s := range rs {
		m = max(m, s)
	}
	return m
}

// ToDense expands a into column-major dense storage, summing duplicates.
func (a *CompCol) ToDense() *Dense {
	d, _ := NewDense(a.NRow, a.NCol)
	for j := 0; j < a.NCol; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			v := 1.0
			if a.Val != nil {
				v = a.Val[p]
			}
			d.Data[a.RowInd[p]+j*d.LD] += v
		}
	}
	return d
}

// ToDense expands the view into column-major dense storage.
func (a *PermCol) ToDense() *Dense {
	d, _ := NewDense(a.NRow, a.NCol)
	for j := 0; j < a.NCol; j++ {
		for p := a.ColBeg[j]; p < a.ColEnd[j]; p++ {
			v := 1.0
			if a.Val != nil {
				v = a.Val[p]
			}
			d.Data[a.RowInd[p]+j*d.LD] += v
		}
	}
	return d
}

// ExpandL writes the unit lower-trapezoidal part of l into an NRow×NCol
// dense matrix (row indices as stored in l) and the upper-triangular part
// held in the supernodal diagonal blocks into the matching positions of u,
// when u is non-nil.
func (l *SuperNodal) ExpandL(u *Dense) *Dense {
	d, _ := NewDense(l.NRow, l.NCol)
	for k := 0; k < l.NSuper; k++ {
		fs, ls := l.SupToCol[k], l.SupToCol[k+1]
		rows, _ := l.SuperRows(k)
		for j := fs; j < ls; j++ {
			base := l.ValPtr[j]
			for p, r := range rows {
				v := l.Val[base+p]
				switch {
				case p < j-fs && u != nil:
					u.Set(r, j, v)
				case p == j-fs:
					d.Set(r, j, 1)
					if u != nil {
						u.Set(r, j, v)
					}
				case p > j-fs:
					d.Set(r, j, v)
				}
			}
		}
	}
	return d
}
