package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlang/weft/internal/interval"
)

func TestInsert(t *testing.T) {
	t.Parallel()

	type r struct {
		start, end int32
		value      string
	}
	tests := []struct {
		name    string
		ranges  []r
		overlap string // value of the reported overlap for the last insert, "" if none
	}{
		{
			name:   "empty map",
			ranges: []r{{1, 9, "a"}},
		},
		{
			name:   "after existing",
			ranges: []r{{1, 9, "a"}, {20, 29, "b"}},
		},
		{
			name:   "before existing",
			ranges: []r{{20, 29, "b"}, {1, 9, "a"}},
		},
		{
			name:   "between existing",
			ranges: []r{{1, 9, "a"}, {20, 29, "b"}, {11, 19, "c"}},
		},
		{
			name:    "identical",
			ranges:  []r{{1, 9, "a"}, {1, 9, "b"}},
			overlap: "a",
		},
		{
			name:    "subset",
			ranges:  []r{{1, 9, "a"}, {3, 4, "b"}},
			overlap: "a",
		},
		{
			name:    "superset",
			ranges:  []r{{3, 4, "a"}, {1, 9, "b"}},
			overlap: "a",
		},
		{
			name:    "overlaps start",
			ranges:  []r{{5, 9, "a"}, {1, 5, "b"}},
			overlap: "a",
		},
		{
			name:    "overlaps end",
			ranges:  []r{{1, 5, "a"}, {5, 9, "b"}},
			overlap: "a",
		},
		{
			name:    "overlaps second of two",
			ranges:  []r{{1, 3, "a"}, {10, 15, "b"}, {9, 11, "c"}},
			overlap: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m interval.Map[int32, string]
			var last interval.Interval[int32, string]
			for _, r := range tt.ranges {
				last = m.Insert(r.start, r.end, r.value)
			}
			if tt.overlap == "" {
				assert.Nil(t, last.Value)
			} else {
				require.NotNil(t, last.Value)
				assert.Equal(t, tt.overlap, *last.Value)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	var m interval.Map[int32, string]
	m.Insert(1, 9, "a")
	m.Insert(20, 20, "b")

	for _, k := range []int32{1, 5, 9} {
		got := m.Get(k)
		require.NotNil(t, got.Value, "key %d", k)
		assert.Equal(t, "a", *got.Value)
	}

	got := m.Get(20)
	require.NotNil(t, got.Value)
	assert.Equal(t, "b", *got.Value)
	assert.Equal(t, int32(20), got.Start)
	assert.Equal(t, int32(20), got.End)

	for _, k := range []int32{0, 10, 19, 21} {
		assert.Nil(t, m.Get(k).Value, "key %d", k)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	var m interval.Map[int32, string]
	m.Insert(20, 29, "b")
	m.Insert(1, 9, "a")
	m.Insert(40, 40, "c")

	var got []string
	for iv := range m.All() {
		got = append(got, *iv.Value)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
