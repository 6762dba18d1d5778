// SPDX-License-Identifier: MIT

package solver_test

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

// ExampleSolve solves a 4×4 tridiagonal system in one call.
func ExampleSolve() {
	a, _ := sparse.FromTriplets(4, 4,
		[]int{0, 1, 0, 1, 2, 1, 2, 3, 2, 3},
		[]int{0, 0, 1, 1, 1, 2, 2, 2, 3, 3},
		[]float64{2, 1, 1, 2, 1, 1, 2, 1, 1, 2})
	b, _ := sparse.NewDenseFrom(4, 1, []float64{1, 1, 1, 1})

	if _, err := solver.Solve(a, b); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.2f\n", b.Col(0))
	// Output: [0.40 0.20 0.20 0.40]
}

// ExampleFactorization_Solve reuses one factorization for A and Aᵗ.
func ExampleFactorization_Solve() {
	a, _ := sparse.FromTriplets(2, 2,
		[]int{0, 1, 1},
		[]int{0, 0, 1},
		[]float64{2, 1, 4})
	f, err := solver.Factorize(a, solver.WithOrdering(solver.Natural))
	if err != nil {
		fmt.Println(err)
		return
	}

	b, _ := sparse.NewDenseFrom(2, 1, []float64{2, 5})
	_ = f.Solve(b, blas.NoTrans)
	fmt.Println(b.Col(0))

	bt, _ := sparse.NewDenseFrom(2, 1, []float64{3, 4})
	_ = f.Solve(bt, blas.Trans)
	fmt.Println(bt.Col(0))
	// Output:
	// [1 1]
	// [1 1]
}
