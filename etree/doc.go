// SPDX-License-Identifier: MIT

// Package etree builds elimination trees and relaxed supernode partitions.
//
// A tree over n columns is a parent array of length n; the root sentinel is
// n, so parent[j] == n marks a root. Column and Symmetric compute the tree
// in O(nnz·α(n)) with a disjoint-set forest using path halving.
//
// Postorder numbers the nodes so every subtree occupies a contiguous range
// ending at its root, visiting lower-numbered children first; a tree that is
// already postordered is returned unchanged. The walk uses an explicit
// frame stack, so tall trees cannot exhaust the goroutine stack.
//
// Relax and HeapRelax group small leaf subtrees into relaxed supernodes:
// relaxEnd[j] is the last column of the relaxed supernode starting at j,
// or -1 when j does not start one.
package etree
