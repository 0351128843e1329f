package ecs

import (
	"reflect"
	"unsafe"
)

// MaxComponentTypes defines the maximum number of unique component types that can be
// registered in a World.
const MaxComponentTypes = 256

// ChunkSize is the number of entities stored in one chunk of an archetype.
const ChunkSize = 1024

// compSpec bundles a component type's ID, size and reflect.Type.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   uint8
}

// chunk holds fixed-size storage for ChunkSize entities.
type chunk struct {
	entityIDs    [ChunkSize]Entity
	compPointers [MaxComponentTypes]unsafe.Pointer
	size         int // number of entities in this chunk, 0 to ChunkSize
}

// archetype holds storage for one unique component-set mask.
type archetype struct {
	chunks    []*chunk
	compOrder []uint8 // component IDs in this archetype
	compSizes [MaxComponentTypes]uintptr
	mask      bitmask256
	index     int // position in world.archetypes
	size      int // total entity count across chunks
}

type componentRegistry struct {
	typeToID map[reflect.Type]uint8
	idToType [MaxComponentTypes]reflect.Type
	idToSize [MaxComponentTypes]uintptr
	nextID   uint16
}

type entityRegistry struct {
	freeIDs  []uint32     // stack of recycled entity IDs
	metas    []entityMeta // indexed by entity ID
	capacity int
	nextVer  uint32
	alive    int
}

type archetypeRegistry struct {
	maskToIndex map[bitmask256]int
	archetypes  []*archetype
}

// World owns every entity and component of one benchmark run. It is not safe
// for concurrent mutation; concurrent reads of component data are safe while no
// goroutine creates or removes entities.
type World struct {
	archetypes archetypeRegistry
	entities   entityRegistry
	components componentRegistry
}

// NewWorld creates a World with room for initialCapacity entities before the
// entity arena has to grow.
//
// Parameters:
//   - initialCapacity: The number of entity slots to preallocate.
//
// Returns:
//   - A pointer to the new, empty World.
func NewWorld(initialCapacity int) *World {
	initialCapacity = max(initialCapacity, 1)
	w := &World{
		components: componentRegistry{
			typeToID: make(map[reflect.Type]uint8, 16),
		},
		entities: entityRegistry{
			capacity: initialCapacity,
			freeIDs:  make([]uint32, initialCapacity),
			metas:    make([]entityMeta, initialCapacity),
			nextVer:  1,
		},
		archetypes: archetypeRegistry{
			maskToIndex: make(map[bitmask256]int),
			archetypes:  make([]*archetype, 0, 8),
		},
	}
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.entities.metas {
		w.entities.metas[i].clear()
	}
	return w
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.alive
}

// IsValid reports whether e refers to a live entity. Stale handles whose ID has
// been recycled are rejected through the version check.
//
// Parameters:
//   - e: The entity to check.
//
// Returns:
//   - true if e is alive, false otherwise.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := w.entities.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// componentID registers or fetches the ID for t.
func (w *World) componentID(t reflect.Type) uint8 {
	if id, ok := w.components.typeToID[t]; ok {
		return id
	}
	if w.components.nextID >= MaxComponentTypes {
		panic("ecs: too many component types")
	}
	id := uint8(w.components.nextID)
	w.components.typeToID[t] = id
	w.components.idToType[id] = t
	w.components.idToSize[id] = t.Size()
	w.components.nextID++
	return id
}

func (w *World) spec(t reflect.Type) compSpec {
	id := w.componentID(t)
	return compSpec{id: id, typ: t, size: w.components.idToSize[id]}
}

// archetypeFor returns the archetype holding exactly the given components,
// creating it on first use. Duplicate component types panic.
func (w *World) archetypeFor(specs ...compSpec) *archetype {
	var mask bitmask256
	for _, sp := range specs {
		if mask.containsBit(sp.id) {
			panic("ecs: duplicate component type " + sp.typ.String())
		}
		mask.set(sp.id)
	}
	if idx, ok := w.archetypes.maskToIndex[mask]; ok {
		return w.archetypes.archetypes[idx]
	}
	a := &archetype{
		index:     len(w.archetypes.archetypes),
		mask:      mask,
		chunks:    make([]*chunk, 0, 4),
		compOrder: make([]uint8, len(specs)),
	}
	for i, sp := range specs {
		a.compOrder[i] = sp.id
		a.compSizes[sp.id] = sp.size
	}
	w.archetypes.archetypes = append(w.archetypes.archetypes, a)
	w.archetypes.maskToIndex[mask] = a.index
	return a
}

func (w *World) newChunk(a *archetype) *chunk {
	c := &chunk{}
	for _, cid := range a.compOrder {
		typ := w.components.idToType[cid]
		slice := reflect.MakeSlice(reflect.SliceOf(typ), ChunkSize, ChunkSize)
		c.compPointers[cid] = slice.UnsafePointer()
	}
	return c
}

// expand grows the entity arena by at least additional slots.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := max(oldCap*2, oldCap+additional)
	delta := newCap - oldCap
	newMetas := make([]entityMeta, delta)
	for i := range newMetas {
		newMetas[i].clear()
	}
	w.entities.metas = append(w.entities.metas, newMetas...)
	// Keep low IDs on top of the stack so they are handed out first.
	newFree := make([]uint32, 0, len(w.entities.freeIDs)+delta)
	for i := newCap - 1; i >= oldCap; i-- {
		newFree = append(newFree, uint32(i))
	}
	w.entities.freeIDs = append(newFree, w.entities.freeIDs...)
	w.entities.capacity = newCap
}

// createEntity places a fresh entity with zeroed components into a.
func (w *World) createEntity(a *archetype) (Entity, *chunk, int) {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	if len(a.chunks) == 0 || a.chunks[len(a.chunks)-1].size == ChunkSize {
		a.chunks = append(a.chunks, w.newChunk(a))
	}
	c := a.chunks[len(a.chunks)-1]
	idx := c.size
	for _, cid := range a.compOrder {
		clearBytes(unsafe.Add(c.compPointers[cid], uintptr(idx)*a.compSizes[cid]), a.compSizes[cid])
	}
	meta := &w.entities.metas[id]
	meta.archetypeIndex = a.index
	meta.chunkIndex = len(a.chunks) - 1
	meta.index = idx
	meta.version = w.entities.nextVer
	e := Entity{ID: id, Version: meta.version}
	c.entityIDs[idx] = e
	c.size++
	a.size++
	w.entities.nextVer++
	w.entities.alive++
	return e, c, idx
}

// RemoveEntity removes a single entity. Invalid handles are ignored. The last
// entity of the chunk is swapped into the freed slot and its ID is recycled
// with a bumped version.
//
// Parameters:
//   - e: The entity to remove.
func (w *World) RemoveEntity(e Entity) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	w.removeFromArchetype(a, meta)
	meta.clear()
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.entities.alive--
}

// RemoveEntities removes a batch of entities.
//
// Parameters:
//   - ents: The entities to remove. Invalid or duplicate handles are skipped.
func (w *World) RemoveEntities(ents []Entity) {
	for _, e := range ents {
		w.RemoveEntity(e)
	}
}

// removeFromArchetype swaps the chunk's last entity into the freed slot and
// drops empty chunks.
func (w *World) removeFromArchetype(a *archetype, meta *entityMeta) {
	chunkIdx := meta.chunkIndex
	c := a.chunks[chunkIdx]
	idx := meta.index
	lastIdx := c.size - 1
	if idx < lastIdx {
		lastEnt := c.entityIDs[lastIdx]
		c.entityIDs[idx] = lastEnt
		for _, cid := range a.compOrder {
			size := a.compSizes[cid]
			src := unsafe.Add(c.compPointers[cid], uintptr(lastIdx)*size)
			dst := unsafe.Add(c.compPointers[cid], uintptr(idx)*size)
			memCopy(dst, src, size)
		}
		w.entities.metas[lastEnt.ID].index = idx
	}
	c.size--
	a.size--
	if c.size == 0 {
		lastChunkIdx := len(a.chunks) - 1
		if chunkIdx < lastChunkIdx {
			a.chunks[chunkIdx] = a.chunks[lastChunkIdx]
			moved := a.chunks[chunkIdx]
			for j := 0; j < moved.size; j++ {
				w.entities.metas[moved.entityIDs[j].ID].chunkIndex = chunkIdx
			}
		}
		a.chunks[lastChunkIdx] = nil
		a.chunks = a.chunks[:lastChunkIdx]
	}
}

func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}

func clearBytes(p unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	clear(unsafe.Slice((*byte)(p), size))
}
