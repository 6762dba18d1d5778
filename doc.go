// Package sparselu is a supernodal sparse direct solver for general square
// and rectangular systems A·x = b, written in pure Go.
//
// What is inside?
//
//	A sequential left-looking LU factorization Pr·A·Pc = L·U with
//		• Fill-reducing column ordering: COLAMD, and SYMAMD for A+Aᵗ
//		• Column elimination tree, postorder and relaxed supernodes
//		• Panel and supernode updates on dense blocks (gonum blas64)
//		• Threshold partial pivoting with a preferred diagonal
//		• Factor storage that grows on demand or lives in one fixed buffer
//		• Triangular solves with A or Aᵗ for many right-hand sides
//
// Packages are layered bottom-up:
//
//	sparse/    NC, NR, NCP, SC and dense column-major storage
//	colamd/    column approximate minimum degree ordering (and SYMAMD)
//	etree/     column elimination tree, postorder, relaxed supernodes
//	lumem/     factor arrays, expansion policy, fixed-buffer arenas
//	kernel/    column-major Trsv/Gemv/Gemm/Trsm over gonum
//	factor/    the numeric factorization
//	trisolve/  forward and backward substitution with the factors
//	solver/    ordering → preorder → factor → solve in one call
//	mmio/      Matrix Market coordinate and array files
//	cmd/slu    command line front end (order, factor, solve, spy)
//
// Quick start:
//
//	f, err := solver.Factorize(a)            // a *sparse.CompCol, square
//	if err != nil { ... }                    // factor.ErrSingular, lumem.ErrOutOfMemory
//	err = f.Solve(b, blas.NoTrans)           // b *sparse.Dense, overwritten with x
//
// All engines are single-threaded and synchronous. Tracing goes through a
// *slog.Logger passed with WithLogger options; the default discards it.
// Internal consistency checks are compiled in with the "sludebug" build tag.
//
//	go get github.com/katalvlaran/sparselu
package sparselu
