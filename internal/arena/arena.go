// Package arena provides an append-only allocator with compressed pointers.
//
// Values allocated on an Arena never move, so a 4-byte handle can stand in
// for an 8-byte pointer anywhere the arena itself is reachable. The desc
// package uses this for the back-references from descriptors to their
// declaring file.
package arena

import (
	"fmt"
	"math/bits"
	"strings"
)

// chunkMinLenShift is the log2 of the capacity of the smallest chunk.
const (
	chunkMinLenShift = 4
	chunkMinLen      = 1 << chunkMinLenShift
)

// Untyped is an untyped arena pointer. The value of a pointer is one plus the
// number of elements allocated before it, so the zero value is nil.
type Untyped uint32

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed, typed arena pointer. It cannot be dereferenced
// directly; see [Pointer.In]. The zero value is nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In dereferences this pointer in the given arena.
//
// arena must be the arena that allocated this pointer; otherwise this returns
// an arbitrary element or panics. Panics if p is nil.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is a slice-like container whose elements never move once allocated.
//
// Stability is achieved by storing elements in a table of chunks whose
// capacities double, mimicking the growth of an ordinary slice without ever
// reallocating a chunk. Lookup stays O(1) at the cost of one extra pointer
// load.
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(chunks[0]) == chunkMinLen.
	// 2. cap(chunks[n]) == 2*cap(chunks[n-1]).
	// 3. Every chunk except the last is full.
	chunks [][]T
}

// New allocates a new value on the arena and returns its pointer.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.chunks == nil {
		a.chunks = [][]T{make([]T, 0, chunkMinLen)}
	}

	last := &a.chunks[len(a.chunks)-1]
	if len(*last) == cap(*last) {
		a.chunks = append(a.chunks, make([]T, 0, 2*cap(*last)))
		last = &a.chunks[len(a.chunks)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.Len()))
}

// At dereferences an untyped arena pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	chunk, idx := a.coordinates(int(ptr) - 1)
	return &a.chunks[chunk][idx]
}

// Len returns the number of elements allocated so far.
func (a *Arena[T]) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	// Only the last chunk can be partially filled.
	return a.lenOfFirstNChunks(len(a.chunks)-1) + len(a.chunks[len(a.chunks)-1])
}

// String implements [fmt.Stringer].
func (a Arena[T]) String() string {
	var b strings.Builder
	b.WriteRune('[')
	for i, chunk := range a.chunks {
		if i != 0 {
			b.WriteRune('|')
		}
		for j, v := range chunk {
			if j != 0 {
				b.WriteRune(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteRune(']')
	return b.String()
}

// lenOfNthChunk returns the capacity of the nth chunk, allocated or not.
func (*Arena[T]) lenOfNthChunk(n int) int {
	return chunkMinLen << n
}

// lenOfFirstNChunks returns the combined capacity of the first n chunks.
func (a *Arena[T]) lenOfFirstNChunks(n int) int {
	// 2^m + 2^(m+1) + ... + 2^(n-1+m) == 2^(n+m) - 2^m, with m the shift of
	// the smallest chunk.
	return max(0, a.lenOfNthChunk(n)-a.lenOfNthChunk(0))
}

// coordinates locates the chunk and offset of the given index, with a bounds
// check.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx >= a.Len() || idx < 0 {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// The cumulative starting index of chunk n is (2^n - 1) << shift. Adding
	// chunkMinLen to idx turns the chunk number into the position of the
	// highest set bit, which bits.LeadingZeros recovers.
	chunk := bits.UintSize - bits.LeadingZeros(uint(idx)+chunkMinLen)
	chunk -= chunkMinLenShift + 1

	idx -= a.lenOfFirstNChunks(chunk)
	return chunk, idx
}
