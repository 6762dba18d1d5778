// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparselu/factor"
	"github.com/katalvlaran/sparselu/mmio"
	"github.com/katalvlaran/sparselu/solver"
	"github.com/katalvlaran/sparselu/sparse"
)

// resetFlags restores every flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, jsonOut = false, false
	ordering = solver.ColAMD.String()
	panelSize, relax, thresh = factor.DefaultPanelSize, factor.DefaultRelax, factor.DefaultThreshold
	solveRHS, solveOut, solveTrans = "", "", false
	spyOut, spyFactors, spySize = "spy.png", false, 6
	t.Cleanup(func() {
		verbose, jsonOut = false, false
		solveRHS, solveOut, solveTrans = "", "", false
		spyFactors = false
	})
}

// writeMatrix stores rows as a coordinate Matrix Market file in a temp dir.
func writeMatrix(t *testing.T, name string, rows [][]float64) string {
	t.Helper()
	d, err := sparse.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, r := range rows {
		for j, v := range r {
			d.Set(i, j, v)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, mmio.Write(f, sparse.FromDense(d)))
	return path
}

// tridiagonal returns the path of the 4×4 matrix tridiag(1, 2, 1).
func tridiagonal(t *testing.T) string {
	return writeMatrix(t, "tri.mtx", [][]float64{
		{2, 1, 0, 0},
		{1, 2, 1, 0},
		{0, 1, 2, 1},
		{0, 0, 1, 2},
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// decodeJSON unmarshals output into v.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}
