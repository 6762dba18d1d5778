// SPDX-License-Identifier: MIT

package colamd

import (
	"errors"
	"fmt"
)

var (
	// ErrNilArray is returned when a required array is nil or too short.
	ErrNilArray = errors.New("colamd: array missing or too short")

	// ErrNegativeDimension is returned when n_row or n_col is negative.
	ErrNegativeDimension = errors.New("colamd: negative dimension")

	// ErrNnzNegative is returned when the last column pointer is negative.
	ErrNnzNegative = errors.New("colamd: number of entries negative")

	// ErrP0Nonzero is returned when the first column pointer is not zero.
	ErrP0Nonzero = errors.New("colamd: first column pointer not zero")

	// ErrWorkspaceTooSmall is returned when the workspace is below Minimum.
	ErrWorkspaceTooSmall = errors.New("colamd: workspace too small")

	// ErrColLengthNegative is returned when column pointers decrease.
	ErrColLengthNegative = errors.New("colamd: column length negative")

	// ErrRowIndexOutOfRange is returned for a row index outside [0, n_row).
	ErrRowIndexOutOfRange = errors.New("colamd: row index out of range")
)

// Status codes stored in Stats[StatStatus].
const (
	StatusOK                 = 0
	StatusJumbled            = 1
	StatusANotPresent        = -1
	StatusPNotPresent        = -2
	StatusNRowNegative       = -3
	StatusNColNegative       = -4
	StatusNnzNegative        = -5
	StatusP0Nonzero          = -6
	StatusATooSmall          = -7
	StatusColLengthNegative  = -8
	StatusRowIndexOutOfRange = -9
)

const (
	opOrder     = "Order"
	opSymmetric = "Symmetric"
)

func colamdErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
