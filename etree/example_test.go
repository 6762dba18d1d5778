// SPDX-License-Identifier: MIT

package etree_test

import (
	"fmt"

	"github.com/katalvlaran/sparselu/etree"
)

// A seven-node tree relabelled so every node follows its descendants.
func ExamplePostorder() {
	//        6
	//       / \
	//      4   5
	//     / \   \
	//    1   3   0
	//        |
	//        2
	parent := []int{5, 4, 3, 4, 6, 6, 7}
	post := etree.Postorder(parent)
	fmt.Println(post[:len(parent)])
	fmt.Println(etree.Renumber(parent, post))
	// Output:
	// [4 0 1 2 3 5 6]
	// [3 2 3 6 5 6 7]
}

func ExampleRelax() {
	parent := []int{2, 2, 5, 4, 5, 6}
	fmt.Println(etree.Relax(parent, 3))
	// Output:
	// [2 -1 -1 4 -1 -1]
}
