// SPDX-License-Identifier: MIT

package colamd

import (
	"io"
	"log/slog"
)

// Knob slots.
const (
	// KnobDenseRow: rows with more than KnobDenseRow·n_col entries are
	// removed before ordering. Negative means only completely dense rows.
	KnobDenseRow = 0

	// KnobDenseCol: columns with more than KnobDenseCol·n_row entries are
	// removed and ordered last. Negative means only completely dense columns.
	KnobDenseCol = 1

	// KnobNoAggressive: non-zero disables aggressive row absorption.
	KnobNoAggressive = 2

	// NumKnobs is the length of Knobs. Unused slots are reserved and zero.
	NumKnobs = 20
)

// Stats slots.
const (
	StatDenseRows = 0 // dense or empty rows ignored
	StatDenseCols = 1 // dense or empty columns ordered last
	StatGarbage   = 2 // garbage collections performed
	StatStatus    = 3 // status code, see Status*
	StatInfo1     = 4
	StatInfo2     = 5
	StatInfo3     = 6 // duplicate or unsorted entries when jumbled

	// NumStats is the length of Stats.
	NumStats = 20
)

// Defaults.
const (
	DefaultDenseRow = 0.5
	DefaultDenseCol = 0.5
)

// Knobs is the ordering configuration array.
type Knobs [NumKnobs]float64

// Stats is the ordering statistics array.
type Stats [NumStats]int

// DefaultKnobs returns knobs with the documented defaults and aggressive
// absorption enabled.
func DefaultKnobs() Knobs {
	var k Knobs
	k[KnobDenseRow] = DefaultDenseRow
	k[KnobDenseCol] = DefaultDenseCol
	return k
}

func (s *Stats) reset() {
	*s = Stats{}
	s[StatInfo1] = -1
	s[StatInfo2] = -1
}

// Jumbled reports whether the input needed normalization.
func (s *Stats) Jumbled() bool { return s[StatStatus] == StatusJumbled }

// Option configures Order and Symmetric.
type Option func(*Options)

// Options holds the non-numeric configuration.
type Options struct {
	logger *slog.Logger
}

// WithLogger routes debug traces (garbage collections, dense removals) to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("colamd: WithLogger(nil)")
	}
	return func(o *Options) { o.logger = l }
}

// DefaultOptions returns options with a discarding logger.
func DefaultOptions() Options {
	return Options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
