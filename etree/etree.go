// SPDX-License-Identifier: MIT

package etree

const empty = -1

// disjoint is a union-find forest over 0..n-1.
type disjoint []int

func (s disjoint) makeSet(i int) int {
	s[i] = i
	return i
}

// link attaches set a under b and returns b.
func (s disjoint) link(a, b int) int {
	s[a] = b
	return b
}

// find returns the representative of i, halving the path on the way.
func (s disjoint) find(i int) int {
	p := s[i]
	gp := s[p]
	for gp != p {
		s[i] = gp
		i = gp
		p = s[i]
		gp = s[p]
	}
	return p
}

func checkPattern(colBeg, colEnd, rowInd []int, nRow, nCol int) error {
	if nRow < 0 || nCol < 0 {
		return ErrNegativeDimension
	}
	if len(colBeg) < nCol || len(colEnd) < nCol {
		return ErrDimensionMismatch
	}
	for j := 0; j < nCol; j++ {
		if colBeg[j] < 0 || colEnd[j] < colBeg[j] || colEnd[j] > len(rowInd) {
			return ErrDimensionMismatch
		}
		for _, r := range rowInd[colBeg[j]:colEnd[j]] {
			if r < 0 || r >= nRow {
				return ErrIndexOutOfRange
			}
		}
	}
	return nil
}

// Column returns the column elimination tree of the nRow×nCol pattern whose
// column j is rowInd[colBeg[j]:colEnd[j]], i.e. the elimination tree of AᵗA
// computed without forming AᵗA.
//
// Each row is replaced by its first column; the row then links every later
// column it touches into the subtree of that first column.
func Column(colBeg, colEnd, rowInd []int, nRow, nCol int) ([]int, error) {
	if err := checkPattern(colBeg, colEnd, rowInd, nRow, nCol); err != nil {
		return nil, etreeErrorf("Column", err)
	}
	root := make([]int, nCol)
	set := make(disjoint, nCol)
	parent := make([]int, nCol)

	firstCol := make([]int, nRow)
	for i := range firstCol {
		firstCol[i] = nCol
	}
	for j := 0; j < nCol; j++ {
		for _, r := range rowInd[colBeg[j]:colEnd[j]] {
			firstCol[r] = min(firstCol[r], j)
		}
	}

	for col := 0; col < nCol; col++ {
		cset := set.makeSet(col)
		root[cset] = col
		parent[col] = nCol
		for _, r := range rowInd[colBeg[col]:colEnd[col]] {
			row := firstCol[r]
			if row >= col {
				continue
			}
			rset := set.find(row)
			rroot := root[rset]
			if rroot != col {
				parent[rroot] = col
				cset = set.link(cset, rset)
				root[cset] = col
			}
		}
	}
	return parent, nil
}

// Symmetric returns the elimination tree of the n×n symmetric pattern whose
// upper triangle is read from column j = rowInd[colBeg[j]:colEnd[j]].
// Entries on or below the diagonal are ignored.
func Symmetric(colBeg, colEnd, rowInd []int, n int) ([]int, error) {
	if err := checkPattern(colBeg, colEnd, rowInd, n, n); err != nil {
		return nil, etreeErrorf("Symmetric", err)
	}
	root := make([]int, n)
	set := make(disjoint, n)
	parent := make([]int, n)
	for col := 0; col < n; col++ {
		cset := set.makeSet(col)
		root[cset] = col
		parent[col] = n
		for _, row := range rowInd[colBeg[col]:colEnd[col]] {
			if row >= col {
				continue
			}
			rset := set.find(row)
			rroot := root[rset]
			if rroot != col {
				parent[rroot] = col
				cset = set.link(cset, rset)
				root[cset] = col
			}
		}
	}
	return parent, nil
}

// frame is one level of the explicit depth-first walk.
type frame struct {
	node  int
	child int // next child to visit, or empty
}

// Postorder returns post with post[v] the postorder number of v for the
// forest parent (len n, roots pointing at n). post has n+1 entries and
// post[n] == n.
func Postorder(parent []int) []int {
	n := len(parent)
	firstKid := make([]int, n+1)
	nextKid := make([]int, n+1)
	for i := range firstKid {
		firstKid[i] = empty
	}
	// Reverse insertion keeps children in increasing order.
	for v := n - 1; v >= 0; v-- {
		dad := parent[v]
		nextKid[v] = firstKid[dad]
		firstKid[dad] = v
	}

	post := make([]int, n+1)
	num := 0
	stack := make([]frame, 0, 16)
	stack = append(stack, frame{node: n, child: firstKid[n]})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if kid := top.child; kid != empty {
			top.child = nextKid[kid]
			stack = append(stack, frame{node: kid, child: firstKid[kid]})
			continue
		}
		if top.node != n {
			post[top.node] = num
			num++
		}
		stack = stack[:len(stack)-1]
	}
	post[n] = n
	return post
}

// Renumber returns the tree relabelled by post: the node v becomes post[v].
func Renumber(parent, post []int) []int {
	n := len(parent)
	out := make([]int, n)
	for v := 0; v < n; v++ {
		out[post[v]] = post[parent[v]]
	}
	return out
}

// descendants returns, for each node, the size of its subtree minus one.
// parent must be postordered.
func descendants(parent []int) []int {
	n := len(parent)
	desc := make([]int, n+1)
	for j := 0; j < n; j++ {
		if p := parent[j]; p != n {
			desc[p] += desc[j] + 1
		}
	}
	return desc
}

// Relax partitions a postordered tree into relaxed supernodes: starting at
// each leaf, climb while the parent's subtree holds fewer than
// relaxColumns descendants. relaxEnd[start] is the last column of each
// supernode; every other entry is -1.
func Relax(parent []int, relaxColumns int) []int {
	n := len(parent)
	desc := descendants(parent)
	relaxEnd := make([]int, n)
	for i := range relaxEnd {
		relaxEnd[i] = empty
	}
	for j := 0; j < n; {
		start := j
		for p := parent[j]; p != n && desc[p] < relaxColumns; p = parent[j] {
			j = p
		}
		relaxEnd[start] = j
		j++
		for j < n && desc[j] != 0 {
			j++
		}
	}
	return relaxEnd
}

// HeapRelax is Relax for a tree that is not postordered. The tree is
// postordered, relaxed, and the result mapped back; a relaxed group whose
// columns are not contiguous in the original numbering is split into
// single-column supernodes at its leaves.
func HeapRelax(parent []int, relaxColumns int) []int {
	n := len(parent)
	post := Postorder(parent)
	invPost := make([]int, n+1)
	for i := 0; i <= n; i++ {
		invPost[post[i]] = i
	}
	et := Renumber(parent, post)
	desc := descendants(et)

	relaxEnd := make([]int, n)
	for i := range relaxEnd {
		relaxEnd[i] = empty
	}
	for j := 0; j < n; {
		start := j
		for p := et[j]; p != n && desc[p] < relaxColumns; p = et[j] {
			j = p
		}
		k := n
		for i := start; i <= j; i++ {
			k = min(k, invPost[i])
		}
		if l := invPost[j]; l-k == j-start {
			relaxEnd[k] = l
		} else {
			for i := start; i <= j; i++ {
				if desc[i] == 0 {
					l := invPost[i]
					relaxEnd[l] = l
				}
			}
		}
		j++
		for j < n && desc[j] != 0 {
			j++
		}
	}
	return relaxEnd
}
