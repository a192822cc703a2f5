package keyed_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/keyed"
	"github.com/graph-guard/cmset/pkg/math"
	"github.com/graph-guard/cmset/pkg/testeq"
	"github.com/stretchr/testify/require"
)

func TestInsertCountOf(t *testing.T) {
	s := keyed.New[int, uint32](capped.None[uint32]())
	s.InsertMultiple(0, 7)
	s.Insert(0)
	require.Equal(t, uint32(8), s.CountOf(0))

	s.SetCap(capped.At[uint32](5))
	require.Equal(t, uint32(5), s.CountOf(0))

	s.InsertMultiple(1, 4)
	require.Equal(t, uint32(4), s.CountOf(1))

	s.SetCap(capped.None[uint32]())
	require.Equal(t, uint32(8), s.CountOf(0))
}

func TestInsertMultipleAccumulates(t *testing.T) {
	s := keyed.New[string, uint64](capped.None[uint64]())
	s.InsertMultiple("a", 3)
	s.InsertMultiple("a", 9)
	require.Equal(t, uint64(12), s.CountOf("a"))
	require.Equal(t, 1, s.Len())
}

func TestInsertIgnoresCap(t *testing.T) {
	s := keyed.New[string, uint32](capped.At[uint32](0))
	s.InsertMultiple("a", 10)
	s.Insert("a")
	require.Zero(t, s.CountOf("a"))
	require.Zero(t, s.Sum())
	testeq.Counts(t, "key", map[string]uint32{"a": 11}, s.Counts())

	s.SetCap(capped.None[uint32]())
	require.Equal(t, uint32(11), s.CountOf("a"))
}

func TestInsertSaturates(t *testing.T) {
	s := keyed.New[string, uint8](capped.None[uint8]())
	s.InsertMultiple("a", 250)
	s.InsertMultiple("a", 10)
	require.Equal(t, uint8(255), s.CountOf("a"))
	s.Insert("a")
	require.Equal(t, uint8(255), s.CountOf("a"))

	s.InsertMultiple("b", math.MaxOf[uint8]())
	require.Equal(t, uint8(255), s.Sum())
}

func TestCountOfAbsent(t *testing.T) {
	for _, c := range []capped.Cap[uint32]{
		capped.None[uint32](),
		capped.At[uint32](0),
		capped.At[uint32](3),
	} {
		t.Run(c.String(), func(t *testing.T) {
			s := keyed.New[int, uint32](c)
			s.InsertMultiple(1, 2)
			require.Zero(t, s.CountOf(42))
			require.False(t, s.Contains(42))
			require.True(t, s.Contains(1))
		})
	}
}

func TestSum(t *testing.T) {
	s := keyed.New[string, uint32](capped.None[uint32]())
	s.InsertMultiple("a", 1)
	s.InsertMultiple("b", 2)
	s.InsertMultiple("c", 3)
	s.InsertMultiple("c", 3)
	require.Equal(t, uint32(9), s.Sum())

	// The cap is applied to aggregated counts: c=6 becomes 3.
	s.SetCap(capped.At[uint32](3))
	require.Equal(t, uint32(6), s.Sum())

	s.SetCap(capped.At[uint32](1))
	require.Equal(t, uint32(3), s.Sum())

	s.SetCap(capped.At[uint32](100))
	require.Equal(t, uint32(9), s.Sum())

	s.SetCap(capped.None[uint32]())
	require.Equal(t, uint32(9), s.Sum())
}

func TestFromKeys(t *testing.T) {
	s := keyed.FromKeys[int, uint32](1, 2, 3, 4, 5, 5, 5)
	require.False(t, s.Cap().IsSet())
	require.Equal(t, 5, s.Len())
	require.Equal(t, uint32(7), s.Sum())
	require.Equal(t, uint32(3), s.CountOf(5))

	// Unlike the positional form duplicates are aggregated
	// before the cap is applied.
	s.SetCap(capped.At[uint32](1))
	require.Equal(t, uint32(5), s.Sum())
}

func TestKeysVisit(t *testing.T) {
	s := keyed.New[string, uint32](capped.At[uint32](2))
	s.InsertMultiple("c", 5)
	s.Insert("a")
	s.InsertMultiple("b", 2)

	require.Equal(t, []string{"a", "b", "c"}, s.Keys())

	var keys []string
	var counts []uint32
	s.Visit(func(k string, c uint32) (stop bool) {
		keys = append(keys, k)
		counts = append(counts, c)
		return false
	})
	require.Equal(t, []string{"a", "b", "c"}, keys)
	require.Equal(t, []uint32{1, 2, 2}, counts)

	keys = nil
	s.Visit(func(k string, c uint32) (stop bool) {
		keys = append(keys, k)
		return k == "b"
	})
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestCloneEqual(t *testing.T) {
	a := keyed.New[int, uint16](capped.At[uint16](4))
	a.InsertMultiple(1, 6)
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Insert(2)
	require.False(t, a.Equal(b))
	require.False(t, a.Contains(2))

	c := a.Clone()
	c.SetCap(capped.None[uint16]())
	require.False(t, a.Equal(c))
}

func TestUnionIntersect(t *testing.T) {
	a := keyed.New[string, uint32](capped.At[uint32](1))
	a.InsertMultiple("x", 2)
	a.InsertMultiple("y", 4)
	a.InsertMultiple("z", 1)
	b := keyed.New[string, uint32](capped.At[uint32](0))
	b.InsertMultiple("x", 5)
	b.InsertMultiple("y", 3)
	b.InsertMultiple("w", 7)

	u := a.Union(b)
	require.False(t, u.Cap().IsSet())
	testeq.Counts(t, "key", map[string]uint32{
		"w": 7, "x": 5, "y": 4, "z": 1,
	}, u.Counts())
	require.Equal(t, uint32(17), u.Sum())

	i := a.Intersect(b)
	require.False(t, i.Cap().IsSet())
	testeq.Counts(t, "key", map[string]uint32{
		"x": 2, "y": 3,
	}, i.Counts())
	require.Equal(t, uint32(5), i.Sum())

	// Commutative.
	require.True(t, u.Equal(b.Union(a)))
	require.True(t, i.Equal(b.Intersect(a)))

	// Operands remain untouched.
	testeq.Counts(t, "key", map[string]uint32{
		"x": 2, "y": 4, "z": 1,
	}, a.Counts())
}

func TestAssign(t *testing.T) {
	a := keyed.New[int, uint32](capped.At[uint32](3))
	a.InsertMultiple(1, 2)
	a.InsertMultiple(2, 5)
	b := keyed.FromKeys[int, uint32](2, 2, 3)

	a.UnionAssign(b)
	require.Equal(t, capped.At[uint32](3), a.Cap())
	testeq.Counts(t, "key", map[int]uint32{1: 2, 2: 5, 3: 1}, a.Counts())
	require.Equal(t, uint32(6), a.Sum())

	a.IntersectAssign(b)
	testeq.Counts(t, "key", map[int]uint32{2: 2, 3: 1}, a.Counts())
	require.Equal(t, capped.At[uint32](3), a.Cap())
}

func TestIdempotent(t *testing.T) {
	a := keyed.FromKeys[string, uint64]("a", "a", "b", "c", "c", "c")
	require.True(t, a.Equal(a.Union(a)))
	require.True(t, a.Equal(a.Intersect(a)))

	a.UnionAssign(a)
	a.IntersectAssign(a)
	testeq.Counts(t, "key", map[string]uint64{"a": 2, "b": 1, "c": 3}, a.Counts())

	// A key inserted with a zero count is still a member.
	z := keyed.New[string, uint64](capped.None[uint64]())
	z.InsertMultiple("k", 0)
	z.Insert("x")
	zz := z.Intersect(z)
	require.True(t, zz.Contains("k"))
	require.Equal(t, 2, zz.Len())
	require.True(t, z.Equal(zz))
	require.True(t, z.Equal(z.Union(z)))
}

func TestIntersectZeroCount(t *testing.T) {
	a := keyed.New[string, uint32](capped.None[uint32]())
	a.InsertMultiple("k", 0)
	a.Insert("x")
	require.True(t, a.Contains("k"))
	require.Equal(t, 2, a.Len())

	// Presence decides membership, not the multiplicity.
	b := keyed.FromKeys[string, uint32]("x")
	b.InsertMultiple("k", 0)
	i := keyed.FromKeys[string, uint32]("k", "x").Intersect(b)
	testeq.Counts(t, "key", map[string]uint32{"k": 0, "x": 1}, i.Counts())

	a.IntersectAssign(a)
	testeq.Counts(t, "key", map[string]uint32{"k": 0, "x": 1}, a.Counts())
}

func TestZeroValue(t *testing.T) {
	var s keyed.Multiset[string, uint32]
	require.False(t, s.Cap().IsSet())
	require.Zero(t, s.CountOf("a"))
	require.Zero(t, s.Sum())
	require.Zero(t, s.Len())
	require.True(t, s.Equal(keyed.New[string, uint32](capped.None[uint32]())))

	s.Insert("a")
	s.InsertMultiple("b", 3)
	require.Equal(t, uint32(4), s.Sum())
	require.Empty(t, cmp.Diff(map[string]uint32{"a": 1, "b": 3}, s.Counts()))

	var u keyed.Multiset[string, uint32]
	u.UnionAssign(&s)
	require.True(t, u.Equal(&s))

	var i keyed.Multiset[string, uint32]
	i.IntersectAssign(&s)
	require.Zero(t, i.Len())
}
