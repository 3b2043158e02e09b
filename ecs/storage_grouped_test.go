package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGroupedLinkingScenario mirrors the spec's p1/p2 parent scenario: p1
// and p2 start as singleton groups holding 5 and 10; e3..e10 link onto
// alternating parents, and every linked entity resolves its parent's value.
func TestGroupedLinkingScenario(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 5))  // p1
	require.NoError(t, g.Set(2, 10)) // p2

	for i, e := range []Entity{3, 4, 5, 6, 7, 8, 9, 10} {
		parent := Entity(1)
		if i%2 == 1 {
			parent = Entity(2)
		}
		require.NoError(t, g.SetParent(e, parent))
	}

	p1Group, err := g.GroupOf(1)
	require.NoError(t, err)
	p2Group, err := g.GroupOf(2)
	require.NoError(t, err)

	assert.Equal(t, 5, g.GroupSize(p1Group))
	assert.Equal(t, 5, g.GroupSize(p2Group))

	sum := 0
	for e := Entity(1); e <= 10; e++ {
		v, ok := g.Get(e)
		require.True(t, ok)
		sum += v
	}
	assert.Equal(t, 5*5+10*5, sum)
}

func TestGroupedDetachFromSharedGroup(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 1))
	require.NoError(t, g.SetParent(2, 1))
	require.NoError(t, g.SetParent(3, 1))

	gid, err := g.GroupOf(1)
	require.NoError(t, err)
	assert.Equal(t, 3, g.GroupSize(gid))

	// detach e2 into its own singleton by assigning it a fresh value
	require.NoError(t, g.Set(2, 99))

	gidAfter, err := g.GroupOf(1)
	require.NoError(t, err)
	assert.Equal(t, 2, g.GroupSize(gidAfter))

	v2, ok := g.Get(2)
	require.True(t, ok)
	assert.Equal(t, 99, v2)

	v1, ok := g.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, v1)
}

func TestGroupedSetParentMissing(t *testing.T) {
	g := NewGrouped[int]()
	err := g.SetParent(1, 42)
	require.Error(t, err)
	assert.True(t, IsKind(err, ParentMissing))
	assert.True(t, errors.Is(err, New(NotPresent, "parent")), "ParentMissing must also satisfy NotPresent per Is()")
}

func TestGroupedSetGroupAffectsAllMembers(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 1))
	require.NoError(t, g.SetParent(2, 1))
	require.NoError(t, g.SetGroup(1, 42))

	v1, _ := g.Get(1)
	v2, _ := g.Get(2)
	assert.Equal(t, 42, v1)
	assert.Equal(t, 42, v2)
}

func TestGroupedRemoveShrinksGroup(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 1))
	require.NoError(t, g.SetParent(2, 1))

	v, err := g.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	gid, err := g.GroupOf(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.GroupSize(gid))
	assert.False(t, g.Contains(2))
}

func TestGroupedRemoveLastMemberDeletesGroup(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 1))
	require.NoError(t, g.Set(2, 2))
	assert.Equal(t, 2, g.GroupCount())

	_, err := g.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.GroupCount())

	v2, ok := g.Get(2)
	require.True(t, ok)
	assert.Equal(t, 2, v2)
}

func TestGroupedMakeUniqueFoldsEqualGroups(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 7))
	require.NoError(t, g.Set(2, 7))
	require.NoError(t, g.Set(3, 9))
	assert.Equal(t, 3, g.GroupCount())

	g.MakeUnique()
	assert.Equal(t, 2, g.GroupCount())

	g1, _ := g.GroupOf(1)
	g2, _ := g.GroupOf(2)
	assert.Equal(t, g1, g2)

	for _, e := range []Entity{1, 2, 3} {
		_, ok := g.Get(e)
		require.True(t, ok)
	}
}

func TestGroupedMakeUniqueIsIdempotent(t *testing.T) {
	g := NewGrouped[int]()
	require.NoError(t, g.Set(1, 7))
	require.NoError(t, g.Set(2, 7))
	require.NoError(t, g.Set(3, 9))

	g.MakeUnique()
	before := g.GroupCount()
	snapshot := map[Entity]int{}
	for _, e := range g.Iter() {
		v, _ := g.Get(e)
		snapshot[e] = v
	}

	g.MakeUnique()
	assert.Equal(t, before, g.GroupCount())
	for _, e := range g.Iter() {
		v, _ := g.Get(e)
		assert.Equal(t, snapshot[e], v)
	}
}

func TestGroupedSetInvalidID(t *testing.T) {
	g := NewGrouped[int]()
	err := g.Set(0, 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidID))
	assert.Equal(t, 0, g.GroupCount())
}
