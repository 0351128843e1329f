package ecs

import (
	"reflect"
	"unsafe"
)

// componentAt returns a pointer to the component with ID id in slot idx of c.
func componentAt[T any](c *chunk, id uint8, idx int) *T {
	var zero T
	return (*T)(unsafe.Add(c.compPointers[id], uintptr(idx)*unsafe.Sizeof(zero)))
}

// Builder creates entities that carry exactly one component of type T. The
// archetype is resolved once, so creating entities never touches the registry.
type Builder[T any] struct {
	world *World
	arch  *archetype
	id    uint8
}

// NewBuilder declares the archetype {T} in w.
//
// Parameters:
//   - w: The World in which to create entities.
//
// Returns:
//   - A pointer to the configured `Builder`.
func NewBuilder[T any](w *World) *Builder[T] {
	sp := w.spec(reflect.TypeFor[T]())
	return &Builder[T]{world: w, arch: w.archetypeFor(sp), id: sp.id}
}

// NewEntity creates an entity with a zeroed T.
func (b *Builder[T]) NewEntity() Entity {
	e, _, _ := b.world.createEntity(b.arch)
	return e
}

// NewEntityWith creates an entity initialised with v.
func (b *Builder[T]) NewEntityWith(v T) Entity {
	e, c, idx := b.world.createEntity(b.arch)
	*componentAt[T](c, b.id, idx) = v
	return e
}

// Builder3 creates entities with the components T1, T2, T3.
type Builder3[T1, T2, T3 any] struct {
	world *World
	arch  *archetype
	ids   [3]uint8
}

// NewBuilder3 declares the archetype {T1, T2, T3} in w. It panics if two of the
// types are the same.
//
// Parameters:
//   - w: The World in which to create entities.
//
// Returns:
//   - A pointer to the configured `Builder3`.
func NewBuilder3[T1, T2, T3 any](w *World) *Builder3[T1, T2, T3] {
	s1 := w.spec(reflect.TypeFor[T1]())
	s2 := w.spec(reflect.TypeFor[T2]())
	s3 := w.spec(reflect.TypeFor[T3]())
	return &Builder3[T1, T2, T3]{
		world: w,
		arch:  w.archetypeFor(s1, s2, s3),
		ids:   [3]uint8{s1.id, s2.id, s3.id},
	}
}

// NewEntity creates an entity with zeroed components.
func (b *Builder3[T1, T2, T3]) NewEntity() Entity {
	e, _, _ := b.world.createEntity(b.arch)
	return e
}

// NewEntityWith creates an entity initialised with the given values.
func (b *Builder3[T1, T2, T3]) NewEntityWith(v1 T1, v2 T2, v3 T3) Entity {
	e, c, idx := b.world.createEntity(b.arch)
	*componentAt[T1](c, b.ids[0], idx) = v1
	*componentAt[T2](c, b.ids[1], idx) = v2
	*componentAt[T3](c, b.ids[2], idx) = v3
	return e
}

// NewEntities creates count entities with zeroed components and returns them.
// Use a `Filter3` or the returned handles to initialise them afterward.
//
// Parameters:
//   - count: The number of entities to create.
//
// Returns:
//   - The new entities, in creation order.
func (b *Builder3[T1, T2, T3]) NewEntities(count int) []Entity {
	ents := make([]Entity, count)
	for i := range ents {
		ents[i], _, _ = b.world.createEntity(b.arch)
	}
	return ents
}

// Builder4 creates entities with the components T1, T2, T3, T4.
type Builder4[T1, T2, T3, T4 any] struct {
	world *World
	arch  *archetype
	ids   [4]uint8
}

// NewBuilder4 declares the archetype {T1, T2, T3, T4} in w. It panics if two of
// the types are the same.
//
// Parameters:
//   - w: The World in which to create entities.
//
// Returns:
//   - A pointer to the configured `Builder4`.
func NewBuilder4[T1, T2, T3, T4 any](w *World) *Builder4[T1, T2, T3, T4] {
	s1 := w.spec(reflect.TypeFor[T1]())
	s2 := w.spec(reflect.TypeFor[T2]())
	s3 := w.spec(reflect.TypeFor[T3]())
	s4 := w.spec(reflect.TypeFor[T4]())
	return &Builder4[T1, T2, T3, T4]{
		world: w,
		arch:  w.archetypeFor(s1, s2, s3, s4),
		ids:   [4]uint8{s1.id, s2.id, s3.id, s4.id},
	}
}

// NewEntity creates an entity with zeroed components.
func (b *Builder4[T1, T2, T3, T4]) NewEntity() Entity {
	e, _, _ := b.world.createEntity(b.arch)
	return e
}

// NewEntityWith creates an entity initialised with the given values.
func (b *Builder4[T1, T2, T3, T4]) NewEntityWith(v1 T1, v2 T2, v3 T3, v4 T4) Entity {
	e, c, idx := b.world.createEntity(b.arch)
	*componentAt[T1](c, b.ids[0], idx) = v1
	*componentAt[T2](c, b.ids[1], idx) = v2
	*componentAt[T3](c, b.ids[2], idx) = v3
	*componentAt[T4](c, b.ids[3], idx) = v4
	return e
}

// NewEntities creates count entities with zeroed components and returns them.
//
// Parameters:
//   - count: The number of entities to create.
//
// Returns:
//   - The new entities, in creation order.
func (b *Builder4[T1, T2, T3, T4]) NewEntities(count int) []Entity {
	ents := make([]Entity, count)
	for i := range ents {
		ents[i], _, _ = b.world.createEntity(b.arch)
	}
	return ents
}
