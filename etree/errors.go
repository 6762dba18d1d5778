// SPDX-License-Identifier: MIT

package etree

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when pointer arrays are shorter than
	// the declared column count.
	ErrDimensionMismatch = errors.New("etree: dimension mismatch")

	// ErrIndexOutOfRange is returned for a row index outside the matrix.
	ErrIndexOutOfRange = errors.New("etree: index out of range")

	// ErrNegativeDimension is returned for negative dimensions.
	ErrNegativeDimension = errors.New("etree: negative dimension")
)

func etreeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
