package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/billboard"
)

// Static is a camera that never moves.
type Static struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

// NewStatic returns a camera at pos looking at target.
func NewStatic(pos, target mgl32.Vec3) *Static {
	return &Static{Pos: pos, Rot: billboard.LookRotation(target.Sub(pos), billboard.WorldUp)}
}

func (s *Static) Position() mgl32.Vec3 { return s.Pos }
func (s *Static) Rotation() mgl32.Quat { return s.Rot }

// Orbit circles a target at a fixed radius and height, always looking at the
// target. Azimuth is in radians and advances by Speed radians per second.
type Orbit struct {
	Target  mgl32.Vec3
	Radius  float32
	Height  float32
	Speed   float32
	Azimuth float32
}

// Advance moves the camera along its orbit by dt seconds.
func (o *Orbit) Advance(dt float32) {
	o.Azimuth = float32(math.Mod(float64(o.Azimuth+o.Speed*dt), 2*math.Pi))
}

// Position recomputes the camera position from the orbit parameters.
func (o *Orbit) Position() mgl32.Vec3 {
	sin, cos := math.Sincos(float64(o.Azimuth))
	return mgl32.Vec3{
		o.Target[0] + o.Radius*float32(sin),
		o.Target[1] + o.Height,
		o.Target[2] + o.Radius*float32(cos),
	}
}

// Rotation looks from the current position toward the target.
func (o *Orbit) Rotation() mgl32.Quat {
	return billboard.LookRotation(o.Target.Sub(o.Position()), billboard.WorldUp)
}
