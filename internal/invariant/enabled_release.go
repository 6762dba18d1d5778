// SPDX-License-Identifier: MIT

//go:build !sludebug

package invariant

// Enabled reports whether invariant checks are compiled in.
const Enabled = false
