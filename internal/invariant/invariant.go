// SPDX-License-Identifier: MIT

// Package invariant hosts assertions for internal data-structure invariants.
//
// Checks are compiled in only under the "sludebug" build tag. Production
// builds treat the guarded conditions as statically impossible and pay
// nothing for them, because every call site is written as
//
//	if invariant.Enabled {
//		invariant.Check(cond, "colamd: row %d scanned after death", r)
//	}
//
// and the constant-false branch is eliminated by the compiler.
package invariant

import "fmt"

// Violation is the panic payload raised by Check.
type Violation struct {
	Msg string
}

// Error implements error so recovered panics can be inspected uniformly.
func (v Violation) Error() string { return "invariant violated: " + v.Msg }

// Check panics with a Violation when cond is false.
func Check(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(Violation{Msg: fmt.Sprintf(format, args...)})
}
