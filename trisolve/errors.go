// SPDX-License-Identifier: MIT

package trisolve

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFactors is returned when L, U or the right-hand side is nil.
	ErrNilFactors = errors.New("trisolve: nil factors")

	// ErrDimensionMismatch is returned when the factors, permutations and
	// right-hand side disagree in size, or L is not square.
	ErrDimensionMismatch = errors.New("trisolve: dimension mismatch")

	// ErrBadTranspose is returned for a transpose mode other than NoTrans,
	// Trans or ConjTrans.
	ErrBadTranspose = errors.New("trisolve: invalid transpose mode")
)

const (
	opSolve      = "Solve"
	opLowerSolve = "LowerSolve"
	opUpperSolve = "UpperSolve"
)

func trisolveErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
