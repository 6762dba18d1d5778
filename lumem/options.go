// SPDX-License-Identifier: MIT

package lumem

import (
	"io"
	"log/slog"
)

// Model selects the backing storage.
type Model int

const (
	// System backs every array with its own slice.
	System Model = iota
	// Fixed carves every array out of caller-supplied buffers.
	Fixed
)

func (m Model) String() string {
	if m == Fixed {
		return "fixed"
	}
	return "system"
}

// Expansion policy.
const (
	// ExpandFactor is the growth factor of an expansion.
	ExpandFactor = 1.5
	// MaxTries bounds the reduced-factor retries of one expansion.
	MaxTries = 10
)

// Option configures a GlobalLU.
type Option func(*Options)

// Options is the GlobalLU configuration.
type Options struct {
	model  Model
	limit  int // live-byte ceiling in System mode, 0 = none
	floats []float64
	ints   []int
	logger *slog.Logger
}

// WithLimit caps the live bytes of a System-model GlobalLU. Panics on a
// negative limit.
func WithLimit(bytes int) Option {
	if bytes < 0 {
		panic("lumem: WithLimit(negative)")
	}
	return func(o *Options) { o.limit = bytes }
}

// WithWorkspace selects the Fixed model over the given buffers. Panics when
// both are empty.
func WithWorkspace(floats []float64, ints []int) Option {
	if len(floats) == 0 && len(ints) == 0 {
		panic("lumem: WithWorkspace(empty)")
	}
	return func(o *Options) {
		o.model = Fixed
		o.floats = floats
		o.ints = ints
	}
}

// WithLogger routes expansion traces to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("lumem: WithLogger(nil)")
	}
	return func(o *Options) { o.logger = l }
}

// DefaultOptions returns the System model with no ceiling.
func DefaultOptions() Options {
	return Options{model: System, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
