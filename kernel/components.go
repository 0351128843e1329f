package kernel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/ecs"
)

// Position is the fixed world position of a sprite.
type Position struct {
	Value mgl32.Vec3
}

// PhaseHeader offsets a table-driven sprite along the shared animation clock.
// It is drawn from [0, 90) at spawn and never changes.
type PhaseHeader struct {
	Value int32
}

// Oscillator is the per-sprite step state machine.
type Oscillator struct {
	DeltaAccum   float32 // seconds since the last step
	FrameCounter int32   // steps taken in the current direction
	StepAngle    float32 // signed degrees added per step
	CurrentAngle float32 // degrees
}

// Rotation is the world rotation produced by the oscillator strategies.
type Rotation struct {
	Value mgl32.Quat
}

// TransformMatrix is the final column-major world transform.
type TransformMatrix struct {
	Value mgl32.Mat4
}

// LocalOffset is a child's translation relative to its parent.
type LocalOffset struct {
	Value mgl32.Vec3
}

// LocalRotation is a child's rotation relative to its parent.
type LocalRotation struct {
	Value mgl32.Quat
}

// Parent links a child to the entity whose transform it inherits. The child is
// created and removed together with its parent.
type Parent struct {
	Entity ecs.Entity
}
