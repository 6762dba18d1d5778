// SPDX-License-Identifier: MIT

package mmio

import (
	"errors"
	"fmt"
)

var (
	// ErrBanner is returned when the first line is not a Matrix Market
	// banner.
	ErrBanner = errors.New("mmio: missing or malformed banner")

	// ErrUnsupported is returned for a valid banner this package does not
	// read (complex fields, hermitian storage, ...).
	ErrUnsupported = errors.New("mmio: unsupported matrix type")

	// ErrSyntax is returned for a malformed size or entry line.
	ErrSyntax = errors.New("mmio: syntax error")

	// ErrNilMatrix is returned when writing a nil matrix.
	ErrNilMatrix = errors.New("mmio: nil matrix")
)

// LineError locates a syntax error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("mmio: line %d: %v", e.Line, e.Err) }

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error { return e.Err }

const (
	opRead       = "Read"
	opReadArray  = "ReadArray"
	opWrite      = "Write"
	opWriteArray = "WriteArray"
)

func mmioErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
