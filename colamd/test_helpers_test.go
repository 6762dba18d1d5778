// SPDX-License-Identifier: MIT

package colamd_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparselu/colamd"
)

// randomPattern returns a sorted, duplicate-free column pattern with roughly
// density·nRow entries per column.
func randomPattern(rng *rand.Rand, nRow, nCol int, density float64) (rowInd, colPtr []int) {
	colPtr = make([]int, nCol+1)
	for j := 0; j < nCol; j++ {
		for i := 0; i < nRow; i++ {
			if rng.Float64() < density {
				rowInd = append(rowInd, i)
			}
		}
		colPtr[j+1] = len(rowInd)
	}
	return rowInd, colPtr
}

// workspaceFor copies a pattern into a workspace of length alen and a fresh
// pointer array.
func workspaceFor(rowInd, colPtr []int, alen int) (a, p []int) {
	a = make([]int, alen)
	copy(a, rowInd)
	p = append([]int(nil), colPtr...)
	return a, p
}

// MustOrder runs Order with the recommended workspace and returns the
// permutation and statistics, failing the test on error.
func MustOrder(t *testing.T, nRow, nCol int, rowInd, colPtr []int, knobs *colamd.Knobs) ([]int, colamd.Stats) {
	t.Helper()
	a, p := workspaceFor(rowInd, colPtr, colamd.Recommended(colPtr[nCol], nRow, nCol))
	var st colamd.Stats
	require.NoError(t, colamd.Order(nRow, nCol, a, p, knobs, &st))
	return p[:nCol], st
}

func isPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
