// SPDX-License-Identifier: MIT

package mmio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/sparselu/sparse"
)

// Write stores a as a general coordinate file, real or pattern.
func Write(w io.Writer, a *sparse.CompCol) error {
	if a == nil {
		return mmioErrorf(opWrite, ErrNilMatrix)
	}
	bw := bufio.NewWriter(w)
	field := "real"
	if a.Val == nil {
		field = "pattern"
	}
	fmt.Fprintf(bw, "%s matrix coordinate %s general\n", banner, field)
	fmt.Fprintf(bw, "%d %d %d\n", a.NRow, a.NCol, a.Nnz())
	for j := 0; j < a.NCol; j++ {
		rows, vals := a.Column(j)
		for k, r := range rows {
			if vals == nil {
				fmt.Fprintf(bw, "%d %d\n", r+1, j+1)
				continue
			}
			fmt.Fprintf(bw, "%d %d %s\n", r+1, j+1, formatFloat(vals[k]))
		}
	}
	if err := bw.Flush(); err != nil {
		return mmioErrorf(opWrite, err)
	}
	return nil
}

// WriteArray stores d as a general array file.
func WriteArray(w io.Writer, d *sparse.Dense) error {
	if d == nil {
		return mmioErrorf(opWriteArray, ErrNilMatrix)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s matrix array real general\n", banner)
	fmt.Fprintf(bw, "%d %d\n", d.NRow, d.NCol)
	for j := 0; j < d.NCol; j++ {
		for _, v := range d.Col(j) {
			fmt.Fprintln(bw, formatFloat(v))
		}
	}
	if err := bw.Flush(); err != nil {
		return mmioErrorf(opWriteArray, err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
