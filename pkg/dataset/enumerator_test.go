package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectCoordinates(e *Enumerator) []Coordinate {
	var res []Coordinate
	for e.Next() {
		res = append(res, e.Coordinate())
	}

	return res
}

func TestEnumerator(t *testing.T) {
	s := Shape{
		NumObjects:      2,
		NumDKeys:        2,
		NumAKeysSingle:  2,
		NumAKeysArray:   1,
		SizePool:        []int{1},
		ExtentCountPool: []int{1},
	}

	e := s.Enumerate()
	require.Equal(t, 12, e.Len())

	var exp []Coordinate
	for o := 0; o < 2; o++ {
		for d := 0; d < 2; d++ {
			exp = append(exp,
				Coordinate{Object: o, DKey: d, Kind: Single, AKey: 0},
				Coordinate{Object: o, DKey: d, Kind: Single, AKey: 1},
				Coordinate{Object: o, DKey: d, Kind: Array, AKey: 0},
			)
		}
	}

	got := collectCoordinates(e)
	require.Equal(t, exp, got)
	require.False(t, e.Next())

	t.Run("determinism", func(t *testing.T) {
		e.Reset()
		require.Equal(t, got, collectCoordinates(e))
		require.Equal(t, got, collectCoordinates(s.Enumerate()))
	})

	t.Run("object", func(t *testing.T) {
		e := s.EnumerateObject(1)
		require.Equal(t, 6, e.Len())
		require.Equal(t, exp[6:], collectCoordinates(e))
	})

	t.Run("empty", func(t *testing.T) {
		for _, s := range []Shape{
			{},
			{NumObjects: 3},
			{NumObjects: 3, NumDKeys: 2},
			{NumObjects: 3, NumAKeysSingle: 2, SizePool: []int{1}},
		} {
			e := s.Enumerate()
			require.Zero(t, e.Len(), s)
			require.False(t, e.Next(), s)
		}
	})
}

func TestCoordinate_Names(t *testing.T) {
	c := Coordinate{Object: 4, DKey: 2, Kind: Array, AKey: 11}
	require.Equal(t, "dkey 2", c.DKeyName())
	require.Equal(t, "akey array 11", c.AKeyName())
	require.Equal(t, "object 4, dkey 2, akey array 11", c.String())

	c.Kind = Single
	require.Equal(t, "akey single 11", c.AKeyName())

	// names of different kinds never collide within a dkey
	require.NotEqual(t, AKeyName(Single, 0), AKeyName(Array, 0))
}
