// SPDX-License-Identifier: MIT

package factor

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/sparselu/lumem"
)

// ---------- Defaults ----------

const (
	// DefaultPanelSize is the maximum number of columns processed as a panel.
	DefaultPanelSize = 10

	// DefaultRelax bounds the descendant count of a relaxed supernode.
	DefaultRelax = 5

	// DefaultMaxSuper bounds the number of columns of a supernode.
	DefaultMaxSuper = 100

	// DefaultRowBlock is the row block of the 2-D panel update.
	DefaultRowBlock = 200

	// DefaultColBlock is the minimum supernode width for the 2-D panel update.
	DefaultColBlock = 60

	// DefaultFill estimates nnz(L+U)/nnz(A) for the initial allocation.
	DefaultFill = 20

	// DefaultThreshold is the diagonal pivot threshold: 1 is partial
	// pivoting, 0 accepts any nonzero preferred pivot.
	DefaultThreshold = 1.0
)

const (
	panicPositive  = "factor: %s must be positive"
	panicThreshold = "factor: WithThreshold: threshold must be in [0, 1]"
	panicNil       = "factor: %s(nil)"
)

// ---------- Options ----------

// Option configures Factorize.
type Option func(*Options)

// Options is the resolved factorization configuration.
type Options struct {
	panelSize int
	relax     int
	maxSuper  int
	rowBlock  int
	colBlock  int
	fill      int
	thresh    float64
	usePermR  bool
	symmetric bool
	manager   *lumem.Manager
	logger    *slog.Logger
}

func positive(name string, v int) {
	if v <= 0 {
		panic(sprintf(panicPositive, name))
	}
}

// WithPanelSize sets the panel width.
func WithPanelSize(w int) Option {
	positive("WithPanelSize", w)
	return func(o *Options) { o.panelSize = w }
}

// WithRelax sets the relaxed-supernode threshold.
func WithRelax(r int) Option {
	positive("WithRelax", r)
	return func(o *Options) { o.relax = r }
}

// WithMaxSuper caps the supernode width.
func WithMaxSuper(s int) Option {
	positive("WithMaxSuper", s)
	return func(o *Options) { o.maxSuper = s }
}

// WithBlocking sets the row and column blocks of the 2-D panel update.
func WithBlocking(rowBlock, colBlock int) Option {
	positive("WithBlocking rowBlock", rowBlock)
	positive("WithBlocking colBlock", colBlock)
	return func(o *Options) { o.rowBlock, o.colBlock = rowBlock, colBlock }
}

// WithFill sets the fill-ratio estimate of the initial allocation.
func WithFill(f int) Option {
	positive("WithFill", f)
	return func(o *Options) { o.fill = f }
}

// WithThreshold sets the diagonal pivot threshold.
func WithThreshold(u float64) Option {
	if math.IsNaN(u) || u < 0 || u > 1 {
		panic(panicThreshold)
	}
	return func(o *Options) { o.thresh = u }
}

// WithPermR makes the row permutation passed to Factorize the preferred
// pivot sequence. Each preferred row is kept when it clears the threshold.
func WithPermR() Option {
	return func(o *Options) { o.usePermR = true }
}

// WithSymmetric selects the heap-ordered relaxation, for elimination trees
// that were not postordered.
func WithSymmetric() Option {
	return func(o *Options) { o.symmetric = true }
}

// WithManager backs the factor storage with m, e.g. a Fixed workspace.
func WithManager(m *lumem.Manager) Option {
	if m == nil {
		panic(sprintf(panicNil, "WithManager"))
	}
	return func(o *Options) { o.manager = m }
}

// WithLogger routes debug traces to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(sprintf(panicNil, "WithLogger"))
	}
	return func(o *Options) { o.logger = l }
}

// DefaultOptions returns the documented defaults with System storage.
func DefaultOptions() Options {
	return Options{
		panelSize: DefaultPanelSize,
		relax:     DefaultRelax,
		maxSuper:  DefaultMaxSuper,
		rowBlock:  DefaultRowBlock,
		colBlock:  DefaultColBlock,
		fill:      DefaultFill,
		thresh:    DefaultThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.manager == nil {
		o.manager = lumem.NewManager(lumem.WithLogger(o.logger))
	}
	return o
}

// WorkSize returns the int and float work-array lengths a factorization of
// an m×n matrix allocates under opts, for sizing a Fixed workspace with
// lumem.Estimate.
func WorkSize(m, n int, opts ...Option) (ints, floats int) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	w := o.panelSize
	ints = 5*m + 2*n + 2*w*m + w
	floats = w*m + numTempv(m, w, max(o.maxSuper, o.relax), o.rowBlock)
	return ints, floats
}

func numTempv(m, w, tmpSup, rowBlock int) int {
	return max(m, (tmpSup+rowBlock)*w)
}
