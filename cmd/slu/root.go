// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/mmio"
	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

var (
	// Global flags
	verbose   bool
	jsonOut   bool
	ordering  string
	panelSize int
	relax     int
	thresh    float64
)

var rootCmd = &cobra.Command{
	Use:   "slu",
	Short: "Sparse direct LU solver",
	Long: `slu factors sparse matrices stored in Matrix Market coordinate files
with a supernodal LU factorization (COLAMD ordering, threshold partial
pivoting) and solves linear systems with the factors.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace the engines to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&ordering, "ordering", solver.ColAMD.String(),
		"Column ordering: natural, colamd or symamd")
	rootCmd.PersistentFlags().IntVar(&panelSize, "panel", factor.DefaultPanelSize, "Panel width")
	rootCmd.PersistentFlags().IntVar(&relax, "relax", factor.DefaultRelax, "Relaxed supernode size")
	rootCmd.PersistentFlags().Float64Var(&thresh, "thresh", factor.DefaultThreshold, "Diagonal pivot threshold in [0, 1]")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

func printf(format string, args ...any) {
	printer.Fprintf(os.Stdout, format, args...)
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// solverOptions builds the driver configuration from the global flags.
func solverOptions() ([]solver.Option, error) {
	ord, err := solver.ParseOrdering(ordering)
	if err != nil || ord == solver.User {
		return nil, fmt.Errorf("unknown ordering %q", ordering)
	}
	if panelSize <= 0 || relax <= 0 {
		return nil, fmt.Errorf("--panel and --relax must be positive")
	}
	if thresh < 0 || thresh > 1 {
		return nil, fmt.Errorf("--thresh must be in [0, 1]")
	}
	return []solver.Option{
		solver.WithOrdering(ord),
		solver.WithLogger(logger()),
		solver.WithFactorOptions(
			factor.WithPanelSize(panelSize),
			factor.WithRelax(relax),
			factor.WithThreshold(thresh),
		),
	}, nil
}

// loadMatrix reads a coordinate Matrix Market file.
func loadMatrix(path string) (*sparse.CompCol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open matrix: %w", err)
	}
	defer f.Close()
	a, err := mmio.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return a, nil
}
