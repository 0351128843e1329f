package ecs

import "reflect"

// Map gives random access to the T component of any entity. The component ID is
// resolved once at construction, which makes Get cheap enough for per-entity
// lookups inside an update pass.
type Map[T any] struct {
	world *World
	id    uint8
}

// NewMap registers T in w if needed and returns an accessor for it.
func NewMap[T any](w *World) Map[T] {
	return Map[T]{world: w, id: w.componentID(reflect.TypeFor[T]())}
}

// Get returns a pointer to e's T component.
//
// Parameters:
//   - e: The entity to look up.
//
// Returns:
//   - A pointer to the component, or nil if e is invalid or does not carry T.
func (m Map[T]) Get(e Entity) *T {
	w := m.world
	if !w.IsValid(e) {
		return nil
	}
	meta := w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.containsBit(m.id) {
		return nil
	}
	return componentAt[T](a.chunks[meta.chunkIndex], m.id, meta.index)
}

// Has reports whether e is alive and carries T.
func (m Map[T]) Has(e Entity) bool {
	return m.Get(e) != nil
}

// GetComponent retrieves a pointer to the component of type T for the given
// entity, or nil if the entity is invalid or lacks the component.
func GetComponent[T any](w *World, e Entity) *T {
	return NewMap[T](w).Get(e)
}

// SetComponent overwrites e's existing T component with val. Archetypes are
// fixed at creation, so a missing component is never added.
//
// Parameters:
//   - w: The World containing the entity.
//   - e: The entity to update.
//   - val: The new component value.
//
// Returns:
//   - false if e is invalid or does not carry T, true otherwise.
func SetComponent[T any](w *World, e Entity, val T) bool {
	p := GetComponent[T](w, e)
	if p == nil {
		return false
	}
	*p = val
	return true
}
