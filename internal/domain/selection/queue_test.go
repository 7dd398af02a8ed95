package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type courier struct {
	name string
	km   float64
}

func byKm(c courier) float64 { return c.km }

func TestQueue_PopsInKeyOrder(t *testing.T) {
	q := NewQueue[string]()
	q.Push("far", 5.0)
	q.Push("near", 1.2)
	q.Push("mid", 3.4)
	require.Equal(t, 3, q.Len())

	var got []string
	for {
		v, _, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []string{"near", "mid", "far"}, got)
	require.Zero(t, q.Len())
}

func TestQueue_PopEmpty(t *testing.T) {
	q := NewQueue[int]()
	v, key, ok := q.Pop()
	require.False(t, ok)
	require.Zero(t, v)
	require.Zero(t, key)
}

func TestQueue_ExplicitTieBreak(t *testing.T) {
	q := NewQueue(WithTieBreak(func(a, b courier) bool { return a.name < b.name }))
	q.Push(courier{name: "pedro", km: 1}, 1)
	q.Push(courier{name: "anna", km: 1}, 1)

	v, _, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "anna", v.name)
}

func TestMin(t *testing.T) {
	items := []courier{
		{name: "a", km: 5.0},
		{name: "b", km: 1.2},
		{name: "c", km: 2.7},
	}
	best, key, ok := Min(items, byKm)
	require.True(t, ok)
	require.Equal(t, "b", best.name)
	require.Equal(t, 1.2, key)

	// input untouched
	require.Equal(t, "a", items[0].name)
}

func TestMin_Empty(t *testing.T) {
	_, _, ok := Min[courier](nil, byKm)
	require.False(t, ok)
}

func TestMin_AgreesWithLinearScan(t *testing.T) {
	items := []courier{
		{"a", 9.1}, {"b", 0.4}, {"c", 7.7}, {"d", 3.3}, {"e", 0.41},
		{"f", 12}, {"g", 6.5}, {"h", 0.39}, {"i", 8}, {"j", 2},
	}
	want := items[0]
	for _, it := range items[1:] {
		if it.km < want.km {
			want = it
		}
	}
	got, _, ok := Min(items, byKm)
	require.True(t, ok)
	require.Equal(t, want, got)
}
