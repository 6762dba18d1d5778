// SPDX-License-Identifier: MIT

package mmio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/katalvlaran/sparselu/sparse"
)

// Read parses a coordinate Matrix Market file. Duplicate entries are
// summed; pattern files yield a CompCol with nil Val.
//
// Errors: ErrBanner, ErrUnsupported, *LineError wrapping ErrSyntax, and
// reader errors, all wrapped.
func Read(r io.Reader) (*sparse.CompCol, error) {
	s := newScanner(bufio.NewScanner(r))
	h, err := s.header("coordinate")
	if err != nil {
		return nil, mmioErrorf(opRead, err)
	}

	size, ok := s.next()
	if !ok || len(size) != 3 {
		return nil, mmioErrorf(opRead, s.errorf(ErrSyntax))
	}
	dims, err := atois(size)
	if err != nil || dims[0] < 0 || dims[1] < 0 || dims[2] < 0 {
		return nil, mmioErrorf(opRead, s.errorf(ErrSyntax))
	}
	nrow, ncol, nnz := dims[0], dims[1], dims[2]

	pattern := h.Field == "pattern"
	want := 3
	if pattern {
		want = 2
	}
	capacity := nnz
	if h.Symmetry != "general" {
		capacity *= 2
	}
	rows := make([]int, 0, capacity)
	cols := make([]int, 0, capacity)
	var vals []float64
	if !pattern {
		vals = make([]float64, 0, capacity)
	}

	for k := 0; k < nnz; k++ {
		f, ok := s.next()
		if !ok || len(f) < want {
			return nil, mmioErrorf(opRead, s.errorf(ErrSyntax))
		}
		ij, err := atois(f[:2])
		if err != nil || ij[0] < 1 || ij[0] > nrow || ij[1] < 1 || ij[1] > ncol {
			return nil, mmioErrorf(opRead, s.errorf(ErrSyntax))
		}
		i, j := ij[0]-1, ij[1]-1
		v := 1.0
		if !pattern {
			if v, err = strconv.ParseFloat(f[2], 64); err != nil {
				return nil, mmioErrorf(opRead, s.errorf(ErrSyntax))
			}
		}
		rows, cols = append(rows, i), append(cols, j)
		if !pattern {
			vals = append(vals, v)
		}
		if i == j || h.Symmetry == "general" {
			continue
		}
		rows, cols = append(rows, j), append(cols, i)
		if !pattern {
			if h.Symmetry == "skew-symmetric" {
				v = -v
			}
			vals = append(vals, v)
		}
	}
	if err := s.sc.Err(); err != nil {
		return nil, mmioErrorf(opRead, err)
	}

	a, err := sparse.FromTriplets(nrow, ncol, rows, cols, vals)
	if err != nil {
		return nil, mmioErrorf(opRead, err)
	}
	return a, nil
}

// ReadArray parses an array Matrix Market file into a dense matrix.
// Symmetric storage lists the lower triangle column by column.
func ReadArray(r io.Reader) (*sparse.Dense, error) {
	s := newScanner(bufio.NewScanner(r))
	h, err := s.header("array")
	if err != nil {
		return nil, mmioErrorf(opReadArray, err)
	}
	size, ok := s.next()
	if !ok || len(size) != 2 {
		return nil, mmioErrorf(opReadArray, s.errorf(ErrSyntax))
	}
	dims, err := atois(size)
	if err != nil || dims[0] < 0 || dims[1] < 0 {
		return nil, mmioErrorf(opReadArray, s.errorf(ErrSyntax))
	}
	nrow, ncol := dims[0], dims[1]
	if h.Symmetry != "general" && nrow != ncol {
		return nil, mmioErrorf(opReadArray, s.errorf(ErrSyntax))
	}
	d, err := sparse.NewDense(nrow, ncol)
	if err != nil {
		return nil, mmioErrorf(opReadArray, err)
	}

	for j := 0; j < ncol; j++ {
		first := 0
		switch h.Symmetry {
		case "symmetric":
			first = j
		case "skew-symmetric":
			first = j + 1
		}
		for i := first; i < nrow; i++ {
			f, ok := s.next()
			if !ok || len(f) != 1 {
				return nil, mmioErrorf(opReadArray, s.errorf(ErrSyntax))
			}
			v, err := strconv.ParseFloat(f[0], 64)
			if err != nil {
				return nil, mmioErrorf(opReadArray, s.errorf(ErrSyntax))
			}
			d.Set(i, j, v)
			switch {
			case i == j:
			case h.Symmetry == "symmetric":
				d.Set(j, i, v)
			case h.Symmetry == "skew-symmetric":
				d.Set(j, i, -v)
			}
		}
	}
	if err := s.sc.Err(); err != nil {
		return nil, mmioErrorf(opReadArray, err)
	}
	return d, nil
}

func atois(f []string) ([]int, error) {
	out := make([]int, len(f))
	for k, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
