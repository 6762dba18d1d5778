// SPDX-License-Identifier: MIT

package lumem

// Elem is the element type an Arena may hold.
type Elem interface{ ~int | ~float64 }

// span is a head segment: buf[off : off+n].
type span struct{ off, n int }

// Arena is a fixed buffer split into a head region, which grows upward and
// holds an ordered list of resizable segments, and a tail region, which
// grows downward and holds scratch blocks. The two regions never overlap.
type Arena[T Elem] struct {
	buf  []T
	segs []span
	top1 int // first free slot after the head region
	top2 int // first slot of the tail region
}

// NewArena wraps buf. The arena never reallocates it.
func NewArena[T Elem](buf []T) *Arena[T] {
	return &Arena[T]{buf: buf, top2: len(buf)}
}

// Cap returns the size of the backing buffer.
func (a *Arena[T]) Cap() int { return len(a.buf) }

// Free returns the number of slots between head and tail.
func (a *Arena[T]) Free() int { return a.top2 - a.top1 }

// Used returns the number of slots held by head and tail.
func (a *Arena[T]) Used() int { return len(a.buf) - a.Free() }

// Segments returns the number of head segments.
func (a *Arena[T]) Segments() int { return len(a.segs) }

// PushHead appends a zeroed segment of n slots and returns its id.
func (a *Arena[T]) PushHead(n int) (int, error) {
	if n < 0 {
		return 0, ErrBadSize
	}
	if n > a.Free() {
		return 0, ErrArenaFull
	}
	s := span{off: a.top1, n: n}
	clear(a.buf[s.off : s.off+n])
	a.segs = append(a.segs, s)
	a.top1 += n
	return len(a.segs) - 1, nil
}

// PopHead drops the last k head segments.
func (a *Arena[T]) PopHead(k int) {
	if k > len(a.segs) {
		k = len(a.segs)
	}
	a.segs = a.segs[:len(a.segs)-k]
	a.top1 = 0
	if m := len(a.segs); m > 0 {
		a.top1 = a.segs[m-1].off + a.segs[m-1].n
	}
}

// Seg returns the slice view of segment id. The view is invalidated by any
// Resize of the same or an earlier segment.
func (a *Arena[T]) Seg(id int) []T {
	s := a.segs[id]
	return a.buf[s.off : s.off+s.n : s.off+s.n]
}

// Len returns the length of segment id.
func (a *Arena[T]) Len(id int) int { return a.segs[id].n }

// Resize sets segment id to n slots. Every later segment moves by the same
// offset, so positions inside them are preserved relative to their start.
// Content of segment id below min(old, n) is unchanged; new slots are zero.
func (a *Arena[T]) Resize(id, n int) error {
	if n < 0 {
		return ErrBadSize
	}
	s := a.segs[id]
	delta := n - s.n
	if delta == 0 {
		return nil
	}
	if delta > a.Free() {
		return ErrArenaFull
	}
	end := s.off + s.n
	copy(a.buf[end+delta:a.top1+delta], a.buf[end:a.top1])
	if delta > 0 {
		clear(a.buf[end : end+delta])
	}
	for k := id + 1; k < len(a.segs); k++ {
		a.segs[k].off += delta
	}
	a.segs[id].n = n
	a.top1 += delta
	return nil
}

// PushTail carves n zeroed slots from the tail.
func (a *Arena[T]) PushTail(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if n > a.Free() {
		return nil, ErrArenaFull
	}
	a.top2 -= n
	b := a.buf[a.top2 : a.top2+n : a.top2+n]
	clear(b)
	return b, nil
}

// ResetTail releases every tail block.
func (a *Arena[T]) ResetTail() { a.top2 = len(a.buf) }

// Compact shrinks each head segment to keep[id] slots, moving later
// segments down. keep must have one entry per segment, none larger than
// the current length.
func (a *Arena[T]) Compact(keep []int) {
	off := 0
	if len(a.segs) > 0 {
		off = a.segs[0].off
	}
	for id := range a.segs {
		s := a.segs[id]
		n := min(keep[id], s.n)
		if off != s.off {
			copy(a.buf[off:off+n], a.buf[s.off:s.off+n])
		}
		a.segs[id] = span{off: off, n: n}
		off += n
	}
	a.top1 = off
}
