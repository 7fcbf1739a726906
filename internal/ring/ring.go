// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ring provides an unbounded first-in first-out buffer.
package ring

// initialSize is the initial size of the circular buffer. It must be a
// power of 2.
const initialSize = 16

// Buffer is a FIFO backed by a circular buffer that doubles in size when
// full. Push never blocks and never drops an element.
//
// The zero value is an empty buffer ready to use. A Buffer is not safe for
// concurrent use.
type Buffer[T any] struct {
	// i and j are the read and write positions. They only grow; the
	// element at position p lives at buf[p&mask].
	i, j int
	buf  []T
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int {
	return b.j - b.i
}

// Push appends e to the back of the buffer.
func (b *Buffer[T]) Push(e T) {
	if b.buf == nil {
		b.buf = make([]T, initialSize)
	}
	mask := len(b.buf) - 1
	// Allocate a bigger buffer if necessary.
	if b.i+len(b.buf) == b.j {
		nb := make([]T, 2*len(b.buf))
		n := copy(nb, b.buf[b.i&mask:])
		copy(nb[n:], b.buf[:b.i&mask])
		b.i, b.j = 0, len(b.buf)
		b.buf, mask = nb, len(nb)-1
	}
	b.buf[b.j&mask] = e
	b.j++
}

// Pop removes and returns the front element. The boolean is false if the
// buffer was empty.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.i == b.j {
		return zero, false
	}
	mask := len(b.buf) - 1
	e := b.buf[b.i&mask]
	b.buf[b.i&mask] = zero
	b.i++
	if b.i == b.j {
		b.i, b.j = 0, 0
	}
	return e, true
}

// Peek returns the front element without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if b.i == b.j {
		var zero T
		return zero, false
	}
	return b.buf[b.i&(len(b.buf)-1)], true
}

// Clear discards every element. The backing array is kept.
func (b *Buffer[T]) Clear() {
	var zero T
	for k := range b.buf {
		b.buf[k] = zero
	}
	b.i, b.j = 0, 0
}

// Slice returns a copy of the buffered elements, front first.
func (b *Buffer[T]) Slice() []T {
	out := make([]T, 0, b.Len())
	mask := len(b.buf) - 1
	for p := b.i; p < b.j; p++ {
		out = append(out, b.buf[p&mask])
	}
	return out
}
