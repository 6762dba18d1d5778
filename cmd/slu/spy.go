// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

var (
	spyOut     string
	spyFactors bool
	spySize    float64
)

func init() {
	cmd := newSpyCmd()
	cmd.Flags().StringVarP(&spyOut, "output", "o", "spy.png", "Image file; the extension selects the format")
	cmd.Flags().BoolVar(&spyFactors, "factors", false, "Plot the pattern of L+U instead of A")
	cmd.Flags().Float64Var(&spySize, "size", 6, "Image side in inches")
	rootCmd.AddCommand(cmd)
}

func newSpyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spy <matrix.mtx>",
		Short: "Plot the nonzero pattern",
		Long: `The spy command plots the nonzero pattern of A, or of the factors L+U in
pivot order with --factors.

Example:
  slu spy west0479.mtx -o a.png
  slu spy west0479.mtx --factors -o lu.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpy(args)
		},
	}
}

func runSpy(args []string) error {
	a, err := loadMatrix(args[0])
	if err != nil {
		return err
	}
	title := fmt.Sprintf("A: %d x %d, nnz %d", a.NRow, a.NCol, a.Nnz())
	pts := pattern(a)

	if spyFactors {
		opts, err := solverOptions()
		if err != nil {
			return err
		}
		f, err := solver.Factorize(a, opts...)
		if err != nil && !errors.Is(err, factor.ErrSingular) {
			return fmt.Errorf("factorization failed: %w", err)
		}
		pts = factorPattern(f.Factors)
		title = fmt.Sprintf("L+U: nnz(L) %d, nnz(U) %d", f.NnzL, f.NnzU)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Min, p.X.Max = -0.5, float64(a.NCol)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(a.NRow)-0.5
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	sc.GlyphStyle.Radius = vg.Length(spySize*72) / vg.Length(2*max(1, a.NRow, a.NCol))
	p.Add(sc)

	side := vg.Length(spySize) * vg.Inch
	if err := p.Save(side, side, spyOut); err != nil {
		return fmt.Errorf("failed to save %s: %w", spyOut, err)
	}
	printf("Wrote %s (%d points)\n", spyOut, len(pts))
	return nil
}

// pattern returns one point per stored entry, x the column and y the row.
func pattern(a *sparse.CompCol) plotter.XYs {
	pts := make(plotter.XYs, 0, a.Nnz())
	for j := 0; j < a.NCol; j++ {
		rows, _ := a.Column(j)
		for _, r := range rows {
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(r)})
		}
	}
	return pts
}

// factorPattern returns the points of L and U in pivot order.
func factorPattern(f *factor.Factors) plotter.XYs {
	l := f.L
	var pts plotter.XYs
	for k := 0; k < l.NSuper; k++ {
		rows, _ := l.SuperRows(k)
		for j := l.SupToCol[k]; j < l.SupToCol[k+1]; j++ {
			for _, r := range rows {
				pts = append(pts, plotter.XY{X: float64(j), Y: float64(r)})
			}
		}
	}
	u := f.U
	for j := 0; j < u.NCol; j++ {
		rows, _ := u.Column(j)
		for _, r := range rows {
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(r)})
		}
	}
	return pts
}
