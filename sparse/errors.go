// SPDX-License-Identifier: MIT

package sparse

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is; facades wrap them with
// an operation tag through sparseErrorf.
var (
	// ErrBadShape is returned for negative dimensions or slices whose length
	// disagrees with the declared shape.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrBadPointers is returned when a pointer array does not start at 0, is
	// not non-decreasing, or does not end at the entry count.
	ErrBadPointers = errors.New("sparse: malformed pointer array")

	// ErrIndexOutOfRange is returned when a stored row/column index lies
	// outside the matrix.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilMatrix is returned when a nil matrix is passed where one is required.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrBadPermutation is returned when a permutation is not a bijection.
	ErrBadPermutation = errors.New("sparse: invalid permutation")
)

// Operation tags used when wrapping sentinels.
const (
	opNewCompCol   = "NewCompCol"
	opNewDense     = "NewDense"
	opFromTriplets = "FromTriplets"
	opPermuteCols  = "PermuteCols"
	opMulVec       = "MulVec"
	opValidate     = "Validate"
)

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
