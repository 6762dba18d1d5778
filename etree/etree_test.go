// SPDX-License-Identifier: MIT

package etree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparselu/etree"
)

// pattern is a dense boolean pattern used to build reference trees.
type pattern [][]bool

func randomPattern(rng *rand.Rand, nRow, nCol int, density float64) pattern {
	p := make(pattern, nRow)
	for i := range p {
		p[i] = make([]bool, nCol)
		for j := range p[i] {
			p[i][j] = rng.Float64() < density
		}
	}
	return p
}

func (p pattern) compressed() (colBeg, colEnd, rowInd []int) {
	nCol := 0
	if len(p) > 0 {
		nCol = len(p[0])
	}
	colBeg = make([]int, nCol)
	colEnd = make([]int, nCol)
	for j := 0; j < nCol; j++ {
		colBeg[j] = len(rowInd)
		for i := range p {
			if p[i][j] {
				rowInd = append(rowInd, i)
			}
		}
		colEnd[j] = len(rowInd)
	}
	return colBeg, colEnd, rowInd
}

// choleskyTree computes the elimination tree of a symmetric pattern by
// explicit symbolic elimination.
func choleskyTree(b pattern) []int {
	n := len(b)
	m := make(pattern, n)
	for i := range b {
		m[i] = append([]bool(nil), b[i]...)
	}
	parent := make([]int, n)
	for k := 0; k < n; k++ {
		parent[k] = n
		var below []int
		for i := k + 1; i < n; i++ {
			if m[i][k] {
				below = append(below, i)
			}
		}
		if len(below) > 0 {
			parent[k] = below[0]
		}
		for _, i := range below {
			for _, j := range below {
				m[i][j] = true
			}
		}
	}
	return parent
}

func TestColumn_MatchesAtATree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		nRow, nCol := 5+rng.Intn(20), 5+rng.Intn(20)
		a := randomPattern(rng, nRow, nCol, 0.15)
		ata := make(pattern, nCol)
		for i := range ata {
			ata[i] = make([]bool, nCol)
		}
		for r := 0; r < nRow; r++ {
			for i := 0; i < nCol; i++ {
				for j := 0; j < nCol; j++ {
					if a[r][i] && a[r][j] {
						ata[i][j] = true
					}
				}
			}
		}
		colBeg, colEnd, rowInd := a.compressed()
		got, err := etree.Column(colBeg, colEnd, rowInd, nRow, nCol)
		require.NoError(t, err)
		assert.Equal(t, choleskyTree(ata), got, "trial %d", trial)
	}
}

func TestSymmetric_MatchesCholeskyTree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.Intn(25)
		b := randomPattern(rng, n, n, 0.1)
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				b[j][i] = b[i][j]
			}
		}
		colBeg, colEnd, rowInd := b.compressed()
		got, err := etree.Symmetric(colBeg, colEnd, rowInd, n)
		require.NoError(t, err)
		assert.Equal(t, choleskyTree(b), got)
	}
}

func TestColumn_Errors(t *testing.T) {
	_, err := etree.Column([]int{0}, []int{1}, []int{3}, 2, 1)
	require.ErrorIs(t, err, etree.ErrIndexOutOfRange)
	_, err = etree.Column([]int{0}, []int{1}, []int{0}, 2, 2)
	require.ErrorIs(t, err, etree.ErrDimensionMismatch)
	_, err = etree.Symmetric(nil, nil, nil, -1)
	require.ErrorIs(t, err, etree.ErrNegativeDimension)
}

func TestPostorder(t *testing.T) {
	// Tree:      6(root)
	//           /  \
	//          4    5
	//         / \    \
	//        1   3    0
	//            |
	//            2
	parent := []int{5, 4, 3, 4, 6, 6, 7}
	post := etree.Postorder(parent)
	require.Len(t, post, 8)
	assert.Equal(t, 7, post[7])
	assert.Equal(t, []int{4, 0, 1, 2, 3, 5, 6}, post[:7])

	// Every node is numbered after all its descendants.
	for v, p := range parent {
		if p != len(parent) {
			assert.Less(t, post[v], post[p])
		}
	}

	// A postordered tree maps to itself.
	re := etree.Renumber(parent, post)
	again := etree.Postorder(re)
	for i := 0; i < len(re); i++ {
		assert.Equal(t, i, again[i])
	}
}

func TestPostorder_DeepChain(t *testing.T) {
	n := 200000
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i + 1
	}
	post := etree.Postorder(parent)
	assert.Equal(t, 0, post[0])
	assert.Equal(t, n-1, post[n-1])
}

func TestRelax(t *testing.T) {
	// Postordered tree: 0→2, 1→2, 2→5, 3→4, 4→5, 5→root(6).
	parent := []int{2, 2, 5, 4, 5, 6}
	end := etree.Relax(parent, 3)
	// Subtree of 2 has 2 descendants (<3): columns 0..2 form one group;
	// subtree of 4 has 1 descendant: 3..4 form one group. 5 starts nothing.
	assert.Equal(t, []int{2, -1, -1, 4, -1, -1}, end)

	end = etree.Relax(parent, 1)
	assert.Equal(t, []int{0, 1, -1, 3, -1, -1}, end)
}

func TestHeapRelaxAgreesOnPostorderedTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 30; trial++ {
		n := 1 + rng.Intn(40)
		// Random postordered tree: every parent is larger than its child.
		parent := make([]int, n)
		for j := 0; j < n; j++ {
			parent[j] = j + 1 + rng.Intn(n-j)
		}
		post := etree.Postorder(parent)
		tree := etree.Renumber(parent, post)
		for _, relax := range []int{1, 3, 8} {
			assert.Equal(t, etree.Relax(tree, relax), etree.HeapRelax(tree, relax))
		}
	}
}

func TestHeapRelaxMapsBackToOriginalNumbering(t *testing.T) {
	// Chain 1→0→2: not postordered, but the group {0,1,2} ends at its root
	// in both numberings.
	parent := []int{2, 0, 3}
	end := etree.HeapRelax(parent, 5)
	assert.Equal(t, []int{2, -1, -1}, end)

	// Leaves 0 and 2 under 3, node 1 a separate root: the group {0,2,3} is
	// not contiguous, so its leaves become singletons.
	parent = []int{3, 4, 3, 4}
	end = etree.HeapRelax(parent, 5)
	assert.Equal(t, []int{0, 1, 2, -1}, end)
}
