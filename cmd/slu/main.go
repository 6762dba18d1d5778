// SPDX-License-Identifier: MIT

// Command slu orders, factors and solves sparse linear systems stored in
// Matrix Market files.
package main

func main() {
	execute()
}
