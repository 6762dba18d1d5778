// SPDX-License-Identifier: MIT

package sparse

// CompCol is a column-compressed (NC) sparse matrix.
//
// Column j occupies RowInd[ColPtr[j]:ColPtr[j+1]] and the matching Val span.
// Val may be nil for pattern-only matrices (ordering input, spy plots).
type CompCol struct {
	NRow, NCol int
	ColPtr     []int
	RowInd     []int
	Val        []float64
}

// CompRow is a row-compressed (NR) sparse matrix.
//
// Row i occupies ColInd[RowPtr[i]:RowPtr[i+1]]. A CompRow of A shares its
// arrays layout with a CompCol of Aᵗ; see (*CompRow).AsTransposeCol.
type CompRow struct {
	NRow, NCol int
	RowPtr     []int
	ColInd     []int
	Val        []float64
}

// PermCol is a column-permuted view (NCP) of a CompCol.
//
// Column j of the view occupies RowInd[ColBeg[j]:ColEnd[j]]. RowInd and Val
// are shared with the source matrix and must not be mutated through the view.
type PermCol struct {
	NRow, NCol int
	ColBeg     []int
	ColEnd     []int
	RowInd     []int
	Val        []float64
}

// SuperNodal is the supernodal (SC) layout of a unit lower-trapezoidal factor
// whose supernodal diagonal blocks also carry the upper-triangular part of U.
//
// Supernode k spans columns SupToCol[k]..SupToCol[k+1]-1. Its row structure
// is RowInd[RowPtr[c]:RowPtr[c+1]] for the first column c of the supernode,
// and its values form a column-major block of leading dimension
// RowPtr[c+1]-RowPtr[c] starting at Val[ValPtr[c]]. ColToSup maps a column to
// its supernode.
type SuperNodal struct {
	NRow, NCol int
	NSuper     int // number of supernodes
	Nnz        int // entries stored in Val, diagonal blocks included
	Val        []float64
	ValPtr     []int // len NCol+1
	RowInd     []int
	RowPtr     []int // len NCol+1
	ColToSup   []int // len NCol+1
	SupToCol   []int // len NSuper+1
}

// Dense is a column-major dense matrix with an explicit leading dimension.
// Element (i, j) lives at Data[i+j*LD].
type Dense struct {
	NRow, NCol int
	LD         int
	Data       []float64
}

// Nnz reports the number of stored entries.
func (a *CompCol) Nnz() int {
	if a == nil || len(a.ColPtr) == 0 {
		return 0
	}
	return a.ColPtr[a.NCol]
}

// Nnz reports the number of stored entries.
func (a *CompRow) Nnz() int {
	if a == nil || len(a.RowPtr) == 0 {
		return 0
	}
	return a.RowPtr[a.NRow]
}

// Nnz reports the number of entries reachable through the view.
func (a *PermCol) Nnz() int {
	if a == nil {
		return 0
	}
	n := 0
	for j := 0; j < a.NCol; j++ {
		n += a.ColEnd[j] - a.ColBeg[j]
	}
	return n
}

// Column returns the row indices and values of column j. The returned slices
// alias the matrix storage. vals is nil for pattern-only matrices.
func (a *CompCol) Column(j int) (rows []int, vals []float64) {
	lo, hi := a.ColPtr[j], a.ColPtr[j+1]
	rows = a.RowInd[lo:hi]
	if a.Val != nil {
		vals = a.Val[lo:hi]
	}
	return rows, vals
}

// Column returns the row indices and values of permuted column j.
func (a *PermCol) Column(j int) (rows []int, vals []float64) {
	lo, hi := a.ColBeg[j], a.ColEnd[j]
	rows = a.RowInd[lo:hi]
	if a.Val != nil {
		vals = a.Val[lo:hi]
	}
	return rows, vals
}

// Clone returns a deep copy of a.
func (a *CompCol) Clone() *CompCol {
	c := &CompCol{
		NRow:   a.NRow,
		NCol:   a.NCol,
		ColPtr: append([]int(nil), a.ColPtr...),
		RowInd: append([]int(nil), a.RowInd...),
	}
	if a.Val != nil {
		c.Val = append([]float64(nil), a.Val...)
	}
	return c
}

// AsTransposeCol reinterprets a row-compressed A as the column-compressed Aᵗ.
// No data is copied.
func (a *CompRow) AsTransposeCol() *CompCol {
	return &CompCol{
		NRow:   a.NCol,
		NCol:   a.NRow,
		ColPtr: a.RowPtr,
		RowInd: a.ColInd,
		Val:    a.Val,
	}
}

// FirstCol returns the first column of supernode k.
func (l *SuperNodal) FirstCol(k int) int { return l.SupToCol[k] }

// SuperRows returns the row structure of supernode k and its leading
// dimension (the number of rows).
func (l *SuperNodal) SuperRows(k int) (rows []int, ld int) {
	c := l.SupToCol[k]
	lo, hi := l.RowPtr[c], l.RowPtr[c+1]
	return l.RowInd[lo:hi], hi - lo
}

// SuperVal returns the column-major value block of supernode k.
func (l *SuperNodal) SuperVal(k int) []float64 {
	fs, ls := l.SupToCol[k], l.SupToCol[k+1]
	return l.Val[l.ValPtr[fs]:l.ValPtr[ls]]
}

// At returns element (i, j).
func (d *Dense) At(i, j int) float64 { return d.Data[i+j*d.LD] }

// Set assigns element (i, j).
func (d *Dense) Set(i, j int, v float64) { d.Data[i+j*d.LD] = v }

// Col returns column j as a slice of length NRow aliasing the storage.
func (d *Dense) Col(j int) []float64 {
	off := j * d.LD
	return d.Data[off : off+d.NRow]
}

// Clone returns a deep copy of d with the same leading dimension.
func (d *Dense) Clone() *Dense {
	return &Dense{NRow: d.NRow, NCol: d.NCol, LD: d.LD, Data: append([]float64(nil), d.Data...)}
}
