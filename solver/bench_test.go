// SPDX-License-Identifier: MIT

package solver_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

func benchmarkFactorize(b *testing.B, n int, ord solver.Ordering) {
	a := randomMatrix(rand.New(rand.NewSource(7)), n, 4/float64(n), 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Factorize(a, solver.WithOrdering(ord)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFactorize_Natural_500(b *testing.B) { benchmarkFactorize(b, 500, solver.Natural) }
func BenchmarkFactorize_ColAMD_500(b *testing.B)  { benchmarkFactorize(b, 500, solver.ColAMD) }
func BenchmarkFactorize_ColAMD_2000(b *testing.B) { benchmarkFactorize(b, 2000, solver.ColAMD) }

func BenchmarkSolve(b *testing.B) {
	n := 1000
	a := randomMatrix(rand.New(rand.NewSource(7)), n, 4/float64(n), 8)
	f, err := solver.Factorize(a)
	if err != nil {
		b.Fatal(err)
	}
	rhs, _ := sparse.NewDense(n, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for k := range rhs.Data {
			rhs.Data[k] = 1
		}
		if err := f.Solve(rhs, blas.NoTrans); err != nil {
			b.Fatal(err)
		}
	}
}
