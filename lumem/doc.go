// SPDX-License-Identifier: MIT

// Package lumem owns the growable storage of a supernodal LU factorization.
//
// GlobalLU holds the five index arrays sized n+1 (supernode map, column
// pointers into each factor array) and the four growable factor arrays:
//
//	LUSup  values of L, supernodal diagonal blocks included
//	UCol   values of U outside the supernodal diagonal blocks
//	LSub   row subscripts of L, one list per supernode
//	USub   row subscripts of U, per column
//
// Two backing models are supported:
//
//   - System: every array is an independent slice. An optional byte
//     ceiling (WithLimit) bounds the live bytes so allocation failure is
//     observable and recoverable.
//   - Fixed: caller-supplied float and int buffers (WithWorkspace). Each
//     buffer is an Arena: factor arrays are bump-allocated from the head in
//     a fixed order, work arrays from the tail, and the two regions grow
//     toward each other. Growing a head array shifts every head array placed
//     after it by the same offset.
//
// Expansion asks for 1.5× the current length; when that cannot be served the
// growth factor is pulled halfway toward 1 and retried, at most ten times.
// Failure is reported as a *MemoryError, which matches ErrOutOfMemory.
//
// A GlobalLU is owned by exactly one factorization at a time.
package lumem
