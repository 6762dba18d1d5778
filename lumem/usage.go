// SPDX-License-Identifier: MIT

package lumem

// Usage reports the storage held by a GlobalLU, in bytes.
type Usage struct {
	LBytes     int // L values, L subscripts and their index arrays
	UBytes     int // U values, U subscripts and their column pointers
	TotalBytes int // everything the Manager holds, work arrays included
	Expansions int
}

// Usage measures the visible lengths of the factor arrays, so a GlobalLU
// truncated to its used prefix reports the size of the factors proper.
func (g *GlobalLU) Usage() Usage {
	k := g.N + 1
	return Usage{
		LBytes:     len(g.LUSup)*FloatBytes + len(g.LSub)*IntBytes + 4*k*IntBytes,
		UBytes:     len(g.UCol)*FloatBytes + len(g.USub)*IntBytes + k*IntBytes,
		TotalBytes: g.mgr.Live(),
		Expansions: g.expansions,
	}
}
