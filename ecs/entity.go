package ecs

// Entity is an opaque positive integer identity. The zero value is never a
// valid entity; it is reserved so a zeroed Entity field fails presence
// checks instead of silently aliasing a real id.
type Entity uint64

// IsValid reports whether e could ever be a member of a SparseSet (id >= 1).
// It says nothing about whether e is currently present in any particular
// store.
func (e Entity) IsValid() bool {
	return e != 0
}

// EntityManager issues fresh entity ids. Retired ids are never reused: the
// engine does not garbage-collect identities, matching its single-process,
// no-persistence scope.
type EntityManager struct {
	next Entity
}

// NewEntityManager creates an id allocator starting at entity 1.
func NewEntityManager() *EntityManager {
	return &EntityManager{next: 1}
}

// Create returns a fresh, never-before-issued entity.
func (m *EntityManager) Create() Entity {
	id := m.next
	m.next++
	return id
}

// Issued returns how many entities this manager has ever allocated.
func (m *EntityManager) Issued() int {
	return int(m.next - 1)
}
