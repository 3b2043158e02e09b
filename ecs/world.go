package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// erasedStorage is the type-erased view of a component storage needed by
// Registry bookkeeping that must operate across unrelated component types
// (entity teardown, stats).
type erasedStorage interface {
	Contains(e Entity) bool
	Indices() *SparseSet
	removeAny(e Entity) bool
	clearAny()
	lenAny() int
}

type denseAdapter[T any] struct{ store *Dense[T] }

func (a denseAdapter[T]) Contains(e Entity) bool   { return a.store.Contains(e) }
func (a denseAdapter[T]) Indices() *SparseSet      { return a.store.Indices() }
func (a denseAdapter[T]) removeAny(e Entity) bool  { _, err := a.store.Remove(e); return err == nil }
func (a denseAdapter[T]) clearAny()                { a.store.Clear() }
func (a denseAdapter[T]) lenAny() int              { return a.store.Len() }

type sharedAdapter[T comparable] struct{ store *Shared[T] }

func (a sharedAdapter[T]) Contains(e Entity) bool  { return a.store.Contains(e) }
func (a sharedAdapter[T]) Indices() *SparseSet     { return a.store.Indices() }
func (a sharedAdapter[T]) removeAny(e Entity) bool { _, err := a.store.Remove(e); return err == nil }
func (a sharedAdapter[T]) clearAny()               { a.store.Clear() }
func (a sharedAdapter[T]) lenAny() int             { return a.store.Len() }

type groupedAdapter[T comparable] struct{ store *Grouped[T] }

func (a groupedAdapter[T]) Contains(e Entity) bool  { return a.store.Contains(e) }
func (a groupedAdapter[T]) Indices() *SparseSet     { return a.store.Indices() }
func (a groupedAdapter[T]) removeAny(e Entity) bool { _, err := a.store.Remove(e); return err == nil }
func (a groupedAdapter[T]) clearAny()               { a.store.Clear() }
func (a groupedAdapter[T]) lenAny() int             { return a.store.Len() }

func typeKey[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// Registry maps a component's Go type to the storage backing it. It is the
// runtime-registry alternative to a compile-time T -> StorageKind trait:
// whichever Register* function is called first for a type fixes that
// type's storage kind for the registry's lifetime.
//
// Registry is not safe for concurrent use; like every storage in this
// module, callers sharing a Registry across goroutines must provide their
// own exclusion.
type Registry struct {
	storages map[reflect.Type]erasedStorage
	logger   *zap.Logger
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{storages: make(map[reflect.Type]erasedStorage), logger: zap.NewNop()}
}

// RegisterDense returns the Dense[T] storage for T, creating it on first
// use.
func RegisterDense[T any](r *Registry) *Dense[T] {
	key := typeKey[T]()
	if existing, ok := r.storages[key]; ok {
		return existing.(denseAdapter[T]).store
	}
	store := NewDense[T]()
	r.storages[key] = denseAdapter[T]{store}
	return store
}

// RegisterShared returns the Shared[T] storage for T, creating it on first
// use.
func RegisterShared[T comparable](r *Registry) *Shared[T] {
	key := typeKey[T]()
	if existing, ok := r.storages[key]; ok {
		return existing.(sharedAdapter[T]).store
	}
	store := NewShared[T]()
	r.storages[key] = sharedAdapter[T]{store}
	return store
}

// RegisterGrouped returns the Grouped[T] storage for T, creating it on
// first use.
func RegisterGrouped[T comparable](r *Registry) *Grouped[T] {
	key := typeKey[T]()
	if existing, ok := r.storages[key]; ok {
		return existing.(groupedAdapter[T]).store
	}
	store := NewGrouped[T]()
	r.storages[key] = groupedAdapter[T]{store}
	return store
}

// GetDense returns the already-registered Dense[T] storage for T, if any.
func GetDense[T any](r *Registry) (*Dense[T], bool) {
	s, ok := r.storages[typeKey[T]()]
	if !ok {
		return nil, false
	}
	d, ok := s.(denseAdapter[T])
	return d.store, ok
}

// GetShared returns the already-registered Shared[T] storage for T, if any.
func GetShared[T comparable](r *Registry) (*Shared[T], bool) {
	s, ok := r.storages[typeKey[T]()]
	if !ok {
		return nil, false
	}
	d, ok := s.(sharedAdapter[T])
	return d.store, ok
}

// GetGrouped returns the already-registered Grouped[T] storage for T, if
// any.
func GetGrouped[T comparable](r *Registry) (*Grouped[T], bool) {
	s, ok := r.storages[typeKey[T]()]
	if !ok {
		return nil, false
	}
	d, ok := s.(groupedAdapter[T])
	return d.store, ok
}

// RemoveAll removes e's value from every registered storage.
func (r *Registry) RemoveAll(e Entity) {
	for _, s := range r.storages {
		s.removeAny(e)
	}
}

// World ties entity id allocation to a component Registry. It intentionally
// carries no query/system scheduling layer of its own; join.Iterator and
// the Predicate builder cover that surface directly against Registry's
// storages.
type World struct {
	Entities   *EntityManager
	Components *Registry
	Logger     *zap.Logger
}

// NewWorld creates a world with a no-op logger; call WithLogger to attach
// one.
func NewWorld() *World {
	return &World{
		Entities:   NewEntityManager(),
		Components: NewRegistry(),
		Logger:     zap.NewNop(),
	}
}

// WithLogger attaches a structured logger for entity/registry lifecycle
// diagnostics and returns the world for chaining.
func (w *World) WithLogger(l *zap.Logger) *World {
	w.Logger = l
	w.Components.logger = l
	return w
}

// CreateEntity allocates and returns a fresh entity.
func (w *World) CreateEntity() Entity {
	e := w.Entities.Create()
	w.Logger.Debug("entity created", zap.Uint64("entity", uint64(e)))
	return e
}

// DestroyEntity removes e's value from every component storage. The engine
// does not recycle entity ids (see EntityManager), so e itself is not
// reusable afterward.
func (w *World) DestroyEntity(e Entity) {
	w.Components.RemoveAll(e)
	w.Logger.Debug("entity destroyed", zap.Uint64("entity", uint64(e)))
}
