// SPDX-License-Identifier: MIT

package factor

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparselu/lumem"
)

var (
	// ErrSingular is matched by every *SingularError.
	ErrSingular = errors.New("factor: matrix is singular")

	// ErrNilMatrix is returned for a nil matrix.
	ErrNilMatrix = errors.New("factor: nil matrix")

	// ErrDimensionMismatch is returned when an array does not match the
	// matrix, or when the matrix has fewer rows than columns.
	ErrDimensionMismatch = errors.New("factor: dimension mismatch")

	// ErrBadPermutation is returned when a permutation is not a bijection.
	ErrBadPermutation = errors.New("factor: invalid permutation")
)

// SingularError reports the first column without a nonzero pivot. The
// factorization still runs to completion.
type SingularError struct {
	Col int // 1-based
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("factor: zero pivot in column %d", e.Col)
}

// Is reports ErrSingular as a match.
func (e *SingularError) Is(target error) bool { return target == ErrSingular }

const opFactorize = "Factorize"

func factorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }

// InfoOf maps a Factorize error to the numeric status convention: 0 for
// success, the 1-based column for a zero pivot, needed bytes plus n for
// memory exhaustion and -1 for anything else.
func InfoOf(err error, n int) int {
	if err == nil {
		return 0
	}
	var se *SingularError
	if errors.As(err, &se) {
		return se.Col
	}
	var me *lumem.MemoryError
	if errors.As(err, &me) {
		return me.Needed + n
	}
	return -1
}
