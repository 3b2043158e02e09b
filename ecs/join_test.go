package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populate(t *testing.T, ids ...Entity) *Dense[struct{}] {
	t.Helper()
	d := NewDense[struct{}]()
	for _, id := range ids {
		require.NoError(t, d.Set(id, struct{}{}))
	}
	return d
}

// TestJoinComplexPredicate mirrors the spec's A/B/C join scenario:
// A = {1,2,3,4}, B = {2,3}, C = {3,4}; the predicate
// A ∧ (B∨C) ∧ ¬(B∧C) should select exactly {2,4}.
func TestJoinComplexPredicate(t *testing.T) {
	a := populate(t, 1, 2, 3, 4)
	b := populate(t, 2, 3)
	c := populate(t, 3, 4)

	p := And(
		All(a),
		Any(b, c),
		Not(And(All(b), All(c))),
	)
	it := NewIterator(p)
	assert.ElementsMatch(t, []Entity{2, 4}, it.Collect())
}

func TestJoinDriverIsShortestConjunct(t *testing.T) {
	a := populate(t, 1, 2, 3, 4, 5)
	b := populate(t, 2)

	p := All(a, b)
	it := NewIterator(p)
	assert.Equal(t, b.Indices(), it.driver)
	assert.Equal(t, []Entity{2}, it.Collect())
}

func TestJoinAnyWithoutAllDrivesFromUnion(t *testing.T) {
	a := populate(t, 1, 2)
	b := populate(t, 3, 4)

	p := Any(a, b)
	it := NewIterator(p)
	assert.ElementsMatch(t, []Entity{1, 2, 3, 4}, it.Collect())
}

func TestJoinDriverUpdatesAfterRemove(t *testing.T) {
	a := populate(t, 1, 2, 3)
	b := populate(t, 1, 2, 3, 4, 5)

	p := All(a, b)
	it := NewIterator(p)
	assert.Equal(t, a.Indices(), it.driver)

	_, err := a.Remove(2)
	require.NoError(t, err)

	// a new iterator must reflect a's current, smaller membership
	it2 := NewIterator(All(a, b))
	assert.ElementsMatch(t, []Entity{1, 3}, it2.Collect())
}

func TestJoinNotAlone(t *testing.T) {
	b := populate(t, 2)

	// Not alone contributes no conjuncts, so the driver falls back to empty.
	p := Not(All(b))
	it := NewIterator(p)
	assert.Empty(t, it.Collect())
}

func TestJoinEachVisitsInDriverOrder(t *testing.T) {
	a := populate(t, 5, 1, 3)
	p := All(a)
	it := NewIterator(p)

	var visited []Entity
	it.Each(func(e Entity) { visited = append(visited, e) })
	assert.Equal(t, a.Indices().Packed(), visited)
}
