// SPDX-License-Identifier: MIT

package lumem

import (
	"log/slog"
	"math/bits"
)

// Element sizes used for byte accounting.
const (
	IntBytes   = bits.UintSize / 8
	FloatBytes = 8
)

// Manager is the backing store shared by the GlobalLU it initialises.
// In System mode it accounts live bytes against an optional ceiling; in
// Fixed mode it owns one float Arena and one int Arena.
type Manager struct {
	model  Model
	limit  int
	live   int
	floats *Arena[float64]
	ints   *Arena[int]
	log    *slog.Logger
}

// NewManager returns a Manager configured by opts. Without WithWorkspace it
// uses the System model.
func NewManager(opts ...Option) *Manager {
	o := gatherOptions(opts)
	m := &Manager{model: o.model, limit: o.limit, log: o.logger}
	if o.model == Fixed {
		m.floats = NewArena(o.floats)
		m.ints = NewArena(o.ints)
	}
	return m
}

// NewWorkspace returns a Fixed-model Manager over the caller's buffers.
func NewWorkspace(floats []float64, ints []int, opts ...Option) *Manager {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithWorkspace(floats, ints))
	return NewManager(all...)
}

// Model returns the backing model.
func (m *Manager) Model() Model { return m.model }

// Live returns the bytes currently held: allocated slices in System mode,
// head plus tail regions in Fixed mode.
func (m *Manager) Live() int {
	if m.model == Fixed {
		return m.floats.Used()*FloatBytes + m.ints.Used()*IntBytes
	}
	return m.live
}

// reserve books bytes against the ceiling.
func (m *Manager) reserve(bytes int) bool {
	if m.limit > 0 && m.live+bytes > m.limit {
		return false
	}
	m.live += bytes
	return true
}

func (m *Manager) release(bytes int) {
	m.live -= bytes
	if m.live < 0 {
		m.live = 0
	}
}

func (m *Manager) reset() {
	if m.model == Fixed {
		m.floats.PopHead(m.floats.Segments())
		m.floats.ResetTail()
		m.ints.PopHead(m.ints.Segments())
		m.ints.ResetTail()
		return
	}
	m.live = 0
}

// Estimate returns the float and int counts a Fixed workspace needs to hold
// the initial factor arrays plus the given work arrays without halving.
func Estimate(n, annz, fill, workInts, workFloats int) (floats, ints int) {
	nzlu, nzu, nzl := initialSizes(annz, fill)
	floats = nzlu + nzu + workFloats
	ints = numIndex*(n+1) + nzl + nzu + workInts
	return floats, ints
}
