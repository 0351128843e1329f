// Package spawn generates the randomised starting state of a sprite
// population. A Generator is deterministic for a given seed so benchmark runs
// can be repeated exactly.
package spawn

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultHalfExtents is the half-size of the spawn volume (a 256 unit cube).
var DefaultHalfExtents = mgl32.Vec3{128, 128, 128}

// Generator draws positions and animation start states. It is not safe for
// concurrent use.
type Generator struct {
	rng         *rand.Rand
	halfExtents mgl32.Vec3
}

// NewGenerator returns a Generator seeded with seed that places entities
// uniformly inside the box [-halfExtents, +halfExtents].
func NewGenerator(seed uint64, halfExtents mgl32.Vec3) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		halfExtents: halfExtents,
	}
}

// HalfExtents returns the half-size of the spawn volume.
func (g *Generator) HalfExtents() mgl32.Vec3 {
	return g.halfExtents
}

// Position returns a point uniformly distributed in the spawn volume.
func (g *Generator) Position() mgl32.Vec3 {
	var p mgl32.Vec3
	for i := range p {
		p[i] = (g.rng.Float32()*2 - 1) * g.halfExtents[i]
	}
	return p
}

// PhaseHeader returns a phase offset in [0, 90).
func (g *Generator) PhaseHeader() int32 {
	return g.rng.Int32N(90)
}

// OscillatorStart picks a random starting frame in [0, frames) and returns it
// with the matching starting angle frame*step.
func (g *Generator) OscillatorStart(frames int, step float32) (frame int, angle float32) {
	if frames <= 0 {
		return 0, 0
	}
	frame = g.rng.IntN(frames)
	return frame, step * float32(frame)
}
