// SPDX-License-Identifier: MIT

package factor

import (
	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/sparselu/kernel"
	"github.com/katalvlaran/sparselu/lumem"
)

// snodeBmod gathers column jcol of the relaxed supernode starting at fsupc
// from the SPA and updates it with the supernode's earlier columns.
func (s *state) snodeBmod(jcol, fsupc int) {
	g := s.g
	nextlu := g.XLUSup[jcol]
	for isub := g.XLSub[fsupc]; isub < g.XLSub[fsupc+1]; isub++ {
		irow := g.LSub[isub]
		g.LUSup[nextlu] = s.dense[irow]
		s.dense[irow] = 0
		nextlu++
	}
	g.XLUSup[jcol+1] = nextlu

	if fsupc < jcol {
		luptr := g.XLUSup[fsupc]
		nsupr := g.XLSub[fsupc+1] - g.XLSub[fsupc]
		nsupc := jcol - fsupc
		nrow := nsupr - nsupc
		ufirst := g.XLUSup[jcol]
		s.ops.Trsv += int64(nsupc * (nsupc - 1))
		s.ops.Gemv += int64(2 * nrow * nsupc)
		kernel.LSolve(nsupc, nsupr, g.LUSup[luptr:], g.LUSup[ufirst:])
		kernel.Gemv(blas.NoTrans, nrow, nsupc, -1, g.LUSup[luptr+nsupc:], nsupr,
			g.LUSup[ufirst:], 1, 1, g.LUSup[ufirst+nsupc:], 1)
	}
}

// applySmall applies the segment fsupc..krep of length 1 to 3 ending at
// krep to the SPA column dense in closed form.
func (s *state) applySmall(dense []float64, fsupc, krep, segsze int) {
	g := s.g
	lptr := g.XLSub[fsupc]
	nsupr := g.XLSub[fsupc+1] - lptr
	d := krep - fsupc
	first := lptr + d + 1 // first row below the segment
	end := g.XLSub[fsupc+1]
	diag := g.XLUSup[fsupc] + nsupr*d + d
	krepRow := g.LSub[lptr+d]
	s.ops.Trsv += int64(segsze * (segsze - 1))
	s.ops.Gemv += int64(2 * (nsupr - d - 1) * segsze)

	switch segsze {
	case 1:
		ukj := dense[krepRow]
		lu := diag + 1
		for i := first; i < end; i++ {
			dense[g.LSub[i]] -= ukj * g.LUSup[lu]
			lu++
		}
	case 2:
		lu1 := diag - nsupr
		ukj1 := dense[g.LSub[lptr+d-1]]
		ukj := dense[krepRow] - ukj1*g.LUSup[lu1]
		dense[krepRow] = ukj
		lu, lu1 := diag+1, lu1+1
		for i := first; i < end; i++ {
			dense[g.LSub[i]] -= ukj*g.LUSup[lu] + ukj1*g.LUSup[lu1]
			lu++
			lu1++
		}
	case 3:
		lu1 := diag - nsupr
		lu2 := lu1 - nsupr
		row1 := g.LSub[lptr+d-1]
		ukj2 := dense[g.LSub[lptr+d-2]]
		ukj1 := dense[row1] - ukj2*g.LUSup[lu2-1]
		ukj := dense[krepRow] - ukj1*g.LUSup[lu1] - ukj2*g.LUSup[lu2]
		dense[krepRow] = ukj
		dense[row1] = ukj1
		lu, lu1, lu2 := diag+1, lu1+1, lu2+1
		for i := first; i < end; i++ {
			dense[g.LSub[i]] -= ukj*g.LUSup[lu] + ukj1*g.LUSup[lu1] + ukj2*g.LUSup[lu2]
			lu++
			lu1++
			lu2++
		}
	}
}

// applyDense applies the segment kfnz..krep of the supernode starting at
// fsupc to dense with a triangular solve and a matrix-vector product
// through tempv, which is left zeroed.
func (s *state) applyDense(dense []float64, fsupc, krep, kfnz int) {
	g := s.g
	lptr := g.XLSub[fsupc]
	nsupr := g.XLSub[fsupc+1] - lptr
	noZeros := kfnz - fsupc
	segsze := krep - kfnz + 1
	nrow := nsupr - (krep - fsupc + 1)
	s.ops.Trsv += int64(segsze * (segsze - 1))
	s.ops.Gemv += int64(2 * nrow * segsze)

	tempv := s.tempv
	isub := lptr + noZeros
	for i := 0; i < segsze; i++ {
		tempv[i] = dense[g.LSub[isub]]
		isub++
	}
	luptr := g.XLUSup[fsupc] + nsupr*noZeros + noZeros
	kernel.LSolve(segsze, nsupr, g.LUSup[luptr:], tempv)
	kernel.Gemv(blas.NoTrans, nrow, segsze, 1, g.LUSup[luptr+segsze:], nsupr,
		tempv, 1, 0, tempv[segsze:], 1)

	isub = lptr + noZeros
	for i := 0; i < segsze; i++ {
		dense[g.LSub[isub]] = tempv[i]
		tempv[i] = 0
		isub++
	}
	for i := 0; i < nrow; i++ {
		dense[g.LSub[isub]] -= tempv[segsze+i]
		tempv[segsze+i] = 0
		isub++
	}
}

// panelBmod applies the nseg supernodal segments found by panelDFS to the
// panel columns jcol..jcol+w-1. Large supernodes are applied to the whole
// panel one row block at a time so the block stays in cache.
func (s *state) panelBmod(jcol, w, nseg int) {
	g, m := s.g, s.m
	for k := nseg - 1; k >= 0; k-- {
		krep := s.segrep[k]
		fsupc := g.XSup[g.Supno[krep]]
		nsupc := krep - fsupc + 1
		nsupr := g.XLSub[fsupc+1] - g.XLSub[fsupc]
		nrow := nsupr - nsupc

		if nsupc >= s.o.colBlock && nrow > s.o.rowBlock {
			s.panelBmod2D(jcol, w, fsupc, krep)
			continue
		}
		for col := 0; col < w; col++ {
			off := col * m
			kfnz := s.repfnz[off+krep]
			if kfnz == empty {
				continue
			}
			dense := s.dense[off : off+m]
			if segsze := krep - kfnz + 1; segsze <= 3 {
				s.applySmall(dense, fsupc, krep, segsze)
			} else {
				s.applyDense(dense, fsupc, krep, kfnz)
			}
		}
	}
}

func (s *state) panelBmod2D(jcol, w, fsupc, krep int) {
	g, m := s.g, s.m
	lptr := g.XLSub[fsupc]
	nsupr := g.XLSub[fsupc+1] - lptr
	nsupc := krep - fsupc + 1
	nrow := nsupr - nsupc

	// Triangular solves, one scratch column per panel column.
	for col := 0; col < w; col++ {
		off := col * m
		kfnz := s.repfnz[off+krep]
		if kfnz == empty {
			continue
		}
		dense := s.dense[off : off+m]
		segsze := krep - kfnz + 1
		if segsze <= 3 {
			s.applySmall(dense, fsupc, krep, segsze)
			continue
		}
		s.ops.Trsv += int64(segsze * (segsze - 1))
		s.ops.Gemv += int64(2 * nrow * segsze)
		noZeros := kfnz - fsupc
		tri := s.tempv[col*s.ldTemp:]
		isub := lptr + noZeros
		for i := 0; i < segsze; i++ {
			tri[i] = dense[g.LSub[isub]]
			isub++
		}
		luptr := g.XLUSup[fsupc] + nsupr*noZeros + noZeros
		kernel.LSolve(segsze, nsupr, g.LUSup[luptr:], tri)
	}

	// Matrix-vector products, one row block at a time.
	for rInd := 0; rInd < nrow; rInd += s.o.rowBlock {
		blockRows := min(s.o.rowBlock, nrow-rInd)
		luptr := g.XLUSup[fsupc] + nsupc + rInd
		isub1 := lptr + nsupc + rInd
		for col := 0; col < w; col++ {
			off := col * m
			kfnz := s.repfnz[off+krep]
			if kfnz == empty || krep-kfnz+1 <= 3 {
				continue
			}
			dense := s.dense[off : off+m]
			segsze := krep - kfnz + 1
			noZeros := kfnz - fsupc
			tri := s.tempv[col*s.ldTemp:]
			prod := tri[s.tmpSup : s.tmpSup+blockRows]
			kernel.MatVec(blockRows, segsze, nsupr, g.LUSup[luptr+nsupr*noZeros:], tri, prod)
			isub := isub1
			for i := range prod {
				dense[g.LSub[isub]] -= prod[i]
				prod[i] = 0
				isub++
			}
		}
	}

	// Scatter the triangular solves back.
	for col := 0; col < w; col++ {
		off := col * m
		kfnz := s.repfnz[off+krep]
		if kfnz == empty || krep-kfnz+1 <= 3 {
			continue
		}
		dense := s.dense[off : off+m]
		segsze := krep - kfnz + 1
		tri := s.tempv[col*s.ldTemp:]
		isub := lptr + kfnz - fsupc
		for i := 0; i < segsze; i++ {
			dense[g.LSub[isub]] = tri[i]
			tri[i] = 0
			isub++
		}
	}
}

// columnBmod applies the segments found by columnDFS to column jcol, whose
// panel starts at fpanelc, then gathers the column's supernodal part into
// LUSup and updates it with the earlier columns of its own supernode.
func (s *state) columnBmod(jcol, off, nseg1, nseg, fpanelc int) error {
	g, m := s.g, s.m
	dense := s.dense[off : off+m]
	repfnz := s.repfnz[off : off+m]
	jsupno := g.Supno[jcol]

	for k := nseg - 1; k >= nseg1; k-- {
		krep := s.segrep[k]
		ksupno := g.Supno[krep]
		if ksupno == jsupno {
			continue
		}
		fsupc := g.XSup[ksupno]
		// Columns before the panel were applied by panelBmod.
		kfnz := max(repfnz[krep], fpanelc)
		if segsze := krep - kfnz + 1; segsze <= 3 {
			s.applySmall(dense, fsupc, krep, segsze)
		} else {
			s.applyDense(dense, fsupc, krep, kfnz)
		}
	}

	fsupc := g.XSup[jsupno]
	nsupr := g.XLSub[fsupc+1] - g.XLSub[fsupc]
	nextlu := g.XLUSup[jcol]
	if need := nextlu + nsupr; need > g.Size(lumem.LUSup) {
		if err := g.Expand(lumem.LUSup, jcol, need-1); err != nil {
			return err
		}
	}
	for isub := g.XLSub[fsupc]; isub < g.XLSub[fsupc+1]; isub++ {
		irow := g.LSub[isub]
		g.LUSup[nextlu] = dense[irow]
		dense[irow] = 0
		nextlu++
	}
	g.XLUSup[jcol+1] = nextlu

	fstCol := max(fsupc, fpanelc)
	if fstCol < jcol {
		d := fstCol - fsupc
		luptr := g.XLUSup[fstCol] + d
		nsupc := jcol - fstCol
		nrow := nsupr - d - nsupc
		ufirst := g.XLUSup[jcol] + d
		s.ops.Trsv += int64(nsupc * (nsupc - 1))
		s.ops.Gemv += int64(2 * nrow * nsupc)
		kernel.LSolve(nsupc, nsupr, g.LUSup[luptr:], g.LUSup[ufirst:])
		kernel.Gemv(blas.NoTrans, nrow, nsupc, -1, g.LUSup[luptr+nsupc:], nsupr,
			g.LUSup[ufirst:], 1, 1, g.LUSup[ufirst+nsupc:], 1)
	}
	return nil
}

// copyToUcol moves the U part of column jcol from the SPA into UCol and
// USub, with row subscripts in pivot order.
func (s *state) copyToUcol(jcol, off, nseg int) error {
	g, m := s.g, s.m
	dense := s.dense[off : off+m]
	repfnz := s.repfnz[off : off+m]
	jsupno := g.Supno[jcol]
	nextu := g.XUSub[jcol]

	for k := nseg - 1; k >= 0; k-- {
		krep := s.segrep[k]
		ksupno := g.Supno[krep]
		if ksupno == jsupno {
			continue
		}
		kfnz := repfnz[krep]
		if kfnz == empty {
			continue
		}
		fsupc := g.XSup[ksupno]
		isub := g.XLSub[fsupc] + kfnz - fsupc
		segsze := krep - kfnz + 1
		if need := nextu + segsze; need > g.Size(lumem.UCol) {
			if err := g.Expand(lumem.UCol, jcol, need-1); err != nil {
				return err
			}
		}
		for i := 0; i < segsze; i++ {
			irow := g.LSub[isub]
			g.USub[nextu] = s.permR[irow]
			g.UCol[nextu] = dense[irow]
			dense[irow] = 0
			nextu++
			isub++
		}
	}
	g.XUSub[jcol+1] = nextu
	return nil
}
