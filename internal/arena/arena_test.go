package arena_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weftlang/weft/internal/arena"
)

func TestArena(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[int]
	assert.Equal(0, a.Len())

	p1 := a.New(5)
	assert.False(p1.Nil())
	assert.Equal(5, *p1.In(&a))

	got := p1.In(&a)
	// Force growth past several chunk boundaries; earlier elements must not
	// move.
	for i := range 100 {
		a.New(i)
	}
	assert.Same(got, p1.In(&a))
	assert.Equal(101, a.Len())

	for i := range 100 {
		ptr := arena.Untyped(i + 2) // pointers are one-indexed and p1 took the first
		assert.Equal(i, *a.At(ptr))
	}
}

func TestArenaString(t *testing.T) {
	t.Parallel()

	var a arena.Arena[int]
	for i := range 20 {
		a.New(i)
	}
	assert.Equal(t,
		"[0 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15|16 17 18 19]",
		fmt.Sprint(a))
}

func TestArenaOutOfRange(t *testing.T) {
	t.Parallel()

	var a arena.Arena[int]
	a.New(42)
	assert.Panics(t, func() { a.At(arena.Untyped(2)) })
	assert.Panics(t, func() { a.At(arena.Untyped(0)) })
}
