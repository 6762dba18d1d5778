// SPDX-License-Identifier: MIT

package lumem

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is matched by every *MemoryError.
	ErrOutOfMemory = errors.New("lumem: out of memory")

	// ErrBadSize is returned for negative sizes or dimensions.
	ErrBadSize = errors.New("lumem: invalid size")

	// ErrArenaFull is returned by Arena when head and tail would overlap.
	ErrArenaFull = errors.New("lumem: arena full")
)

// MemoryError reports a factor array that could not be grown.
type MemoryError struct {
	Type   MemType // array that failed
	Col    int     // column being processed, -1 during setup
	Needed int     // additional bytes requested
}

func (e *MemoryError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("lumem: cannot allocate %s: %d bytes needed", e.Type, e.Needed)
	}
	return fmt.Sprintf("lumem: cannot expand %s at column %d: %d bytes needed", e.Type, e.Col, e.Needed)
}

// Is reports ErrOutOfMemory as a match.
func (e *MemoryError) Is(target error) bool { return target == ErrOutOfMemory }
