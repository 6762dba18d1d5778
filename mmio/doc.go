// SPDX-License-Identifier: MIT

// Package mmio reads and writes matrices in the NIST Matrix Market
// exchange format.
//
// Sparse matrices use the coordinate format with real, integer or pattern
// entries and general, symmetric or skew-symmetric storage; symmetric
// storage is expanded on read. Dense right-hand sides use the array
// format. Indices in files are 1-based.
package mmio
