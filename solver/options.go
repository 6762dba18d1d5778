// SPDX-License-Identifier: MIT

package solver

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/sparselu/colamd"
	"github.com/katalvlaran/sparselu/factor"
)

// Ordering selects the column permutation.
type Ordering int

const (
	// Natural keeps the columns in place.
	Natural Ordering = iota
	// ColAMD orders the columns of A for a sparse LU (AᵗA fill).
	ColAMD
	// SymAMD orders A+Aᵗ, for matrices with a nearly symmetric pattern.
	SymAMD
	// User takes the permutation given with WithPermC.
	User
)

// String returns the lower-case name of o.
func (o Ordering) String() string {
	switch o {
	case Natural:
		return "natural"
	case ColAMD:
		return "colamd"
	case SymAMD:
		return "symamd"
	case User:
		return "user"
	}
	return "unknown"
}

// ParseOrdering returns the Ordering named s, as printed by String.
func ParseOrdering(s string) (Ordering, error) {
	for o := Natural; o <= User; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, ErrBadOrdering
}

// Option configures Factorize and Solve.
type Option func(*Options)

// Options is the resolved driver configuration.
type Options struct {
	ordering   Ordering
	permC      []int
	knobs      colamd.Knobs
	symmetric  bool
	factorOpts []factor.Option
	logger     *slog.Logger
}

// WithOrdering selects the column ordering. Default ColAMD.
func WithOrdering(o Ordering) Option {
	return func(opts *Options) { opts.ordering = o }
}

// WithPermC supplies the column permutation (original column → position)
// and selects User.
func WithPermC(p []int) Option {
	return func(o *Options) {
		o.ordering = User
		o.permC = p
	}
}

// WithKnobs sets the COLAMD and SYMAMD knobs.
func WithKnobs(k colamd.Knobs) Option {
	return func(o *Options) { o.knobs = k }
}

// WithSymmetricMode keeps the elimination tree in its natural numbering
// and relaxes supernodes over it as a heap, for symmetric orderings.
func WithSymmetricMode() Option {
	return func(o *Options) { o.symmetric = true }
}

// WithFactorOptions forwards options to factor.Factorize.
func WithFactorOptions(opts ...factor.Option) Option {
	return func(o *Options) { o.factorOpts = append(o.factorOpts, opts...) }
}

// WithLogger routes debug traces of every stage to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("solver: WithLogger(nil)")
	}
	return func(o *Options) { o.logger = l }
}

// DefaultOptions returns ColAMD ordering with default knobs.
func DefaultOptions() Options {
	return Options{
		ordering: ColAMD,
		knobs:    colamd.DefaultKnobs(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// factorOptions prepends the options implied by the driver configuration,
// so explicit factor options win.
func (o *Options) factorOptions() []factor.Option {
	out := []factor.Option{factor.WithLogger(o.logger)}
	if o.symmetric {
		out = append(out, factor.WithSymmetric())
	}
	return append(out, o.factorOpts...)
}
