// Package ecs provides the archetype-based entity store the billboard kernels
// run on. Components live in fixed-size chunks so an update pass can hand out
// typed per-chunk slices to worker goroutines without copying.
package ecs

// Entity represents a unique identifier for an object in the World. It combines
// a 32-bit ID with a 32-bit version to ensure that recycled IDs are not confused
// with new entities.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity. It indexes the
	// world's entity arena and stays stable while the entity is alive.
	ID uint32
	// Version is a generation counter to protect against stale entity references.
	Version uint32
}

// entityMeta holds the internal location and state of an entity.
type entityMeta struct {
	archetypeIndex int    // index in World.archetypes
	chunkIndex     int    // index in archetype.chunks
	index          int    // position inside the chunk's component arrays
	version        uint32 // current version, 0 if the entity is dead
}

func (m *entityMeta) clear() {
	m.archetypeIndex = -1
	m.chunkIndex = -1
	m.index = -1
	m.version = 0
}
