// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/sparselu/colamd"
	"github.com/katalvlaran/sparselu/etree"
	"github.com/katalvlaran/sparselu/sparse"
)

// PermC returns the column permutation of a chosen by ord, as original
// column → position, together with the ordering statistics (zero for
// Natural and User). a may be pattern-only.
//
// Errors: ErrNilMatrix, ErrNotSquare (SymAMD), ErrBadOrdering, and the
// colamd sentinels (wrapped).
func PermC(a *sparse.CompCol, ord Ordering, opts ...Option) ([]int, colamd.Stats, error) {
	o := gatherOptions(opts)
	o.ordering = ord
	return o.computePermC(a)
}

func (o *Options) computePermC(a *sparse.CompCol) ([]int, colamd.Stats, error) {
	var st colamd.Stats
	if a == nil {
		return nil, st, solverErrorf(opPermC, argError(ArgMatrix, ErrNilMatrix))
	}
	m, n, nnz := a.NRow, a.NCol, a.Nnz()

	switch o.ordering {
	case Natural:
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		return p, st, nil

	case User:
		if len(o.permC) != n || !sparse.IsPermutation(o.permC) {
			return nil, st, solverErrorf(opPermC, argError(ArgPermC, ErrBadOrdering))
		}
		return append([]int(nil), o.permC...), st, nil

	case ColAMD:
		work := make([]int, colamd.Recommended(nnz, m, n))
		copy(work, a.RowInd[:nnz])
		p := append([]int(nil), a.ColPtr...)
		if err := colamd.Order(m, n, work, p, &o.knobs, &st, colamd.WithLogger(o.logger)); err != nil {
			return nil, st, solverErrorf(opPermC, err)
		}
		return sparse.InversePerm(p[:n]), st, nil

	case SymAMD:
		if m != n {
			return nil, st, solverErrorf(opPermC, argError(ArgMatrix, ErrNotSquare))
		}
		perm := make([]int, n+1)
		if err := colamd.Symmetric(n, a.RowInd, a.ColPtr, perm, &o.knobs, &st, colamd.WithLogger(o.logger)); err != nil {
			return nil, st, solverErrorf(opPermC, err)
		}
		return sparse.InversePerm(perm[:n]), st, nil
	}
	return nil, st, solverErrorf(opPermC, ErrBadOrdering)
}

// Preorder builds A·Pc and its elimination tree.
//
// By default the tree is the column elimination tree of A·Pc, i.e. the tree
// of (A·Pc)ᵗ(A·Pc). It is postordered and the postorder folded into the
// returned permutation, so that relaxed supernodes are contiguous.
//
// With symmetric set, A must be square and the tree is that of
// Pcᵗ·(A+Aᵗ)·Pc, matching a symmetric ordering with diagonal pivots. Pc is
// kept as given and the tree is not postordered.
//
// permC is not modified.
//
// Errors: ErrNilMatrix, ErrNotSquare, and the sparse and etree sentinels
// (wrapped).
func Preorder(a *sparse.CompCol, permC []int, symmetric bool) (*sparse.PermCol, []int, []int, error) {
	if a == nil {
		return nil, nil, nil, solverErrorf(opPreorder, argError(ArgMatrix, ErrNilMatrix))
	}
	if symmetric && a.NRow != a.NCol {
		return nil, nil, nil, solverErrorf(opPreorder, argError(ArgMatrix, ErrNotSquare))
	}
	ac, err := sparse.PermuteCols(a, permC)
	if err != nil {
		return nil, nil, nil, solverErrorf(opPreorder, argError(ArgPermC, err))
	}
	if symmetric {
		tree, err := symmetricTree(a, permC)
		if err != nil {
			return nil, nil, nil, solverErrorf(opPreorder, err)
		}
		return ac, tree, append([]int(nil), permC[:a.NCol]...), nil
	}
	tree, err := etree.Column(ac.ColBeg, ac.ColEnd, ac.RowInd, ac.NRow, ac.NCol)
	if err != nil {
		return nil, nil, nil, solverErrorf(opPreorder, err)
	}

	post := etree.Postorder(tree)
	final := make([]int, a.NCol)
	for j := range final {
		final[j] = post[permC[j]]
	}
	if ac, err = sparse.PermuteCols(a, final); err != nil {
		return nil, nil, nil, solverErrorf(opPreorder, err)
	}
	return ac, etree.Renumber(tree, post), final, nil
}

// symmetricTree returns the elimination tree of Pcᵗ·(A+Aᵗ)·Pc for a square
// a. Every off-diagonal entry (i, j) lands once in the upper triangle, as
// row min(pi, pj) of column max(pi, pj).
func symmetricTree(a *sparse.CompCol, permC []int) ([]int, error) {
	n := a.NCol
	colBeg := make([]int, n+1)
	for j := 0; j < n; j++ {
		rows, _ := a.Column(j)
		for _, i := range rows {
			if pi, pj := permC[i], permC[j]; pi != pj {
				colBeg[max(pi, pj)+1]++
			}
		}
	}
	for j := 0; j < n; j++ {
		colBeg[j+1] += colBeg[j]
	}
	colEnd := append([]int(nil), colBeg[:n]...)
	rowInd := make([]int, colBeg[n])
	for j := 0; j < n; j++ {
		rows, _ := a.Column(j)
		for _, i := range rows {
			if pi, pj := permC[i], permC[j]; pi != pj {
				hi := max(pi, pj)
				rowInd[colEnd[hi]] = min(pi, pj)
				colEnd[hi]++
			}
		}
	}
	return etree.Symmetric(colBeg, colEnd, rowInd, n)
}
