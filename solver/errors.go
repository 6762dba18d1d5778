// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparselu/factor"
)

var (
	// ErrNilMatrix is returned for a nil matrix or right-hand side.
	ErrNilMatrix = errors.New("solver: nil matrix")

	// ErrNotSquare is returned when A is not square.
	ErrNotSquare = errors.New("solver: matrix is not square")

	// ErrNoValues is returned when A carries only a pattern.
	ErrNoValues = errors.New("solver: matrix has no values")

	// ErrDimensionMismatch is returned when a permutation or right-hand
	// side does not match A.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrBadOrdering is returned for an unknown ordering, or User without
	// a valid permutation.
	ErrBadOrdering = errors.New("solver: invalid column ordering")
)

// Argument positions reported by ArgError.
const (
	ArgMatrix = 1
	ArgPermC  = 2
	ArgPermR  = 3
	ArgRHS    = 4
)

// ArgError reports an invalid argument by position.
type ArgError struct {
	Pos int
	Err error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("argument %d: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ArgError) Unwrap() error { return e.Err }

func argError(pos int, err error) error { return &ArgError{Pos: pos, Err: err} }

const (
	opPermC     = "PermC"
	opPreorder  = "Preorder"
	opFactorize = "Factorize"
	opSolve     = "Solve"
)

func solverErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Info maps an error of this package to the numeric status convention for
// an n-column matrix. Errors that are neither argument, singularity nor
// memory failures map to -1.
func Info(err error, n int) int {
	var ae *ArgError
	if errors.As(err, &ae) {
		return -ae.Pos
	}
	return factor.InfoOf(err, n)
}
