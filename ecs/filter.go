package ecs

import (
	"reflect"
	"unsafe"
)

// queryCache tracks the archetypes that match a component signature and the
// iteration cursor shared by all filter arities.
type queryCache struct {
	world     *World
	mask      bitmask256
	matching  []*archetype
	seenArchs int // number of world archetypes inspected so far

	matchIdx int
	chunkIdx int
	idx      int
	cur      *chunk
}

func newQueryCache(w *World, m bitmask256) queryCache {
	return queryCache{world: w, mask: m, chunkIdx: -1, idx: -1}
}

// refresh picks up archetypes created since the last call.
func (q *queryCache) refresh() {
	archs := q.world.archetypes.archetypes
	for _, a := range archs[q.seenArchs:] {
		if a.mask.contains(q.mask) {
			q.matching = append(q.matching, a)
		}
	}
	q.seenArchs = len(archs)
}

// Reset rewinds the iterator. It must be called before re-iterating.
func (q *queryCache) Reset() {
	q.refresh()
	q.matchIdx = 0
	q.chunkIdx = -1
	q.idx = -1
	q.cur = nil
}

// Next advances to the next matching entity and reports whether one was found.
func (q *queryCache) Next() bool {
	q.idx++
	if q.cur != nil && q.idx < q.cur.size {
		return true
	}
	for q.matchIdx < len(q.matching) {
		a := q.matching[q.matchIdx]
		q.chunkIdx++
		if q.chunkIdx >= len(a.chunks) {
			q.matchIdx++
			q.chunkIdx = -1
			continue
		}
		c := a.chunks[q.chunkIdx]
		if c.size == 0 {
			continue
		}
		q.cur = c
		q.idx = 0
		return true
	}
	q.cur = nil
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (q *queryCache) Entity() Entity {
	return q.cur.entityIDs[q.idx]
}

// Count returns the number of entities matching the filter.
func (q *queryCache) Count() int {
	q.refresh()
	n := 0
	for _, a := range q.matching {
		n += a.size
	}
	return n
}

// Entities returns a new slice holding every matching entity.
func (q *queryCache) Entities() []Entity {
	q.refresh()
	out := make([]Entity, 0, q.Count())
	for _, a := range q.matching {
		for _, c := range a.chunks {
			out = append(out, c.entityIDs[:c.size]...)
		}
	}
	return out
}

// forEachChunk calls fn for every non-empty matching chunk.
func (q *queryCache) forEachChunk(fn func(c *chunk)) {
	q.refresh()
	for _, a := range q.matching {
		for _, c := range a.chunks {
			if c.size > 0 {
				fn(c)
			}
		}
	}
}

func chunkSlice[T any](c *chunk, id uint8) []T {
	return unsafe.Slice((*T)(c.compPointers[id]), c.size)
}

func chunkEntities(c *chunk) []Entity {
	return c.entityIDs[:c.size:c.size]
}

// Filter iterates all entities that carry at least a T component.
type Filter[T any] struct {
	queryCache
	id uint8
}

// NewFilter creates a filter over entities with a T component. Archetypes
// declared after the filter are picked up on the next Reset.
//
// Parameters:
//   - w: The World to query.
//
// Returns:
//   - A pointer to the new `Filter`.
func NewFilter[T any](w *World) *Filter[T] {
	id := w.componentID(reflect.TypeFor[T]())
	var m bitmask256
	m.set(id)
	f := &Filter[T]{queryCache: newQueryCache(w, m), id: id}
	f.Reset()
	return f
}

// Get returns the current entity's T. Only valid after Next returned true.
func (f *Filter[T]) Get() *T {
	return componentAt[T](f.cur, f.id, f.idx)
}

// View3 is a typed window onto one chunk: index i of every slice belongs to
// Entities[i]. Slices alias chunk storage and are invalidated by structural
// changes to the world.
type View3[T1, T2, T3 any] struct {
	Entities []Entity
	C1       []T1
	C2       []T2
	C3       []T3
}

// Len returns the number of entities in the view.
func (v View3[T1, T2, T3]) Len() int { return len(v.Entities) }

// Filter3 iterates all entities that carry at least T1, T2 and T3.
type Filter3[T1, T2, T3 any] struct {
	queryCache
	ids [3]uint8
}

// NewFilter3 creates a filter over entities with T1, T2 and T3.
//
// Parameters:
//   - w: The World to query.
//
// Returns:
//   - A pointer to the new `Filter3`.
func NewFilter3[T1, T2, T3 any](w *World) *Filter3[T1, T2, T3] {
	ids := [3]uint8{
		w.componentID(reflect.TypeFor[T1]()),
		w.componentID(reflect.TypeFor[T2]()),
		w.componentID(reflect.TypeFor[T3]()),
	}
	if ids[0] == ids[1] || ids[0] == ids[2] || ids[1] == ids[2] {
		panic("ecs: duplicate component types in Filter3")
	}
	var m bitmask256
	for _, id := range ids {
		m.set(id)
	}
	f := &Filter3[T1, T2, T3]{queryCache: newQueryCache(w, m), ids: ids}
	f.Reset()
	return f
}

// Get returns the current entity's components.
func (f *Filter3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	return componentAt[T1](f.cur, f.ids[0], f.idx),
		componentAt[T2](f.cur, f.ids[1], f.idx),
		componentAt[T3](f.cur, f.ids[2], f.idx)
}

// Views appends one View3 per non-empty matching chunk to dst[:0]. The views
// alias chunk storage and stay valid until the next structural change.
//
// Parameters:
//   - dst: A slice to reuse; its contents are overwritten.
//
// Returns:
//   - The views, one per chunk.
func (f *Filter3[T1, T2, T3]) Views(dst []View3[T1, T2, T3]) []View3[T1, T2, T3] {
	dst = dst[:0]
	f.forEachChunk(func(c *chunk) {
		dst = append(dst, View3[T1, T2, T3]{
			Entities: chunkEntities(c),
			C1:       chunkSlice[T1](c, f.ids[0]),
			C2:       chunkSlice[T2](c, f.ids[1]),
			C3:       chunkSlice[T3](c, f.ids[2]),
		})
	})
	return dst
}

// View4 is the four-component counterpart of View3.
type View4[T1, T2, T3, T4 any] struct {
	Entities []Entity
	C1       []T1
	C2       []T2
	C3       []T3
	C4       []T4
}

// Len returns the number of entities in the view.
func (v View4[T1, T2, T3, T4]) Len() int { return len(v.Entities) }

// Filter4 iterates all entities that carry at least T1, T2, T3 and T4.
type Filter4[T1, T2, T3, T4 any] struct {
	queryCache
	ids [4]uint8
}

// NewFilter4 creates a filter over entities with T1, T2, T3 and T4.
func NewFilter4[T1, T2, T3, T4 any](w *World) *Filter4[T1, T2, T3, T4] {
	ids := [4]uint8{
		w.componentID(reflect.TypeFor[T1]()),
		w.componentID(reflect.TypeFor[T2]()),
		w.componentID(reflect.TypeFor[T3]()),
		w.componentID(reflect.TypeFor[T4]()),
	}
	var m bitmask256
	for _, id := range ids {
		if m.containsBit(id) {
			panic("ecs: duplicate component types in Filter4")
		}
		m.set(id)
	}
	f := &Filter4[T1, T2, T3, T4]{queryCache: newQueryCache(w, m), ids: ids}
	f.Reset()
	return f
}

// Get returns the current entity's components.
func (f *Filter4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	return componentAt[T1](f.cur, f.ids[0], f.idx),
		componentAt[T2](f.cur, f.ids[1], f.idx),
		componentAt[T3](f.cur, f.ids[2], f.idx),
		componentAt[T4](f.cur, f.ids[3], f.idx)
}

// Views appends one View4 per non-empty matching chunk to dst[:0].
func (f *Filter4[T1, T2, T3, T4]) Views(dst []View4[T1, T2, T3, T4]) []View4[T1, T2, T3, T4] {
	dst = dst[:0]
	f.forEachChunk(func(c *chunk) {
		dst = append(dst, View4[T1, T2, T3, T4]{
			Entities: chunkEntities(c),
			C1:       chunkSlice[T1](c, f.ids[0]),
			C2:       chunkSlice[T2](c, f.ids[1]),
			C3:       chunkSlice[T3](c, f.ids[2]),
			C4:       chunkSlice[T4](c, f.ids[3]),
		})
	})
	return dst
}
