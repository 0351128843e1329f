package kernel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/billboard"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/spawn"
)

var axisX = mgl32.Vec3{1, 0, 0}

// oscillatorArchetype is shared by the rotate strategy and the parents of the
// parent strategy.
type oscillatorArchetype struct {
	builder *ecs.Builder4[Position, Oscillator, Rotation, TransformMatrix]
	states  ecs.Map[Oscillator]
	filter  *ecs.Filter4[Position, Oscillator, Rotation, TransformMatrix]
	views   []ecs.View4[Position, Oscillator, Rotation, TransformMatrix]
}

func newOscillatorArchetype(w *ecs.World) oscillatorArchetype {
	return oscillatorArchetype{
		builder: ecs.NewBuilder4[Position, Oscillator, Rotation, TransformMatrix](w),
		states:  ecs.NewMap[Oscillator](w),
		filter:  ecs.NewFilter4[Position, Oscillator, Rotation, TransformMatrix](w),
	}
}

// spawnOne creates a sprite at a random position and oscillator frame.
func (a *oscillatorArchetype) spawnOne(gen *spawn.Generator, opts Options) ecs.Entity {
	pos := gen.Position()
	step := opts.StepAngle()
	frame, angle := gen.OscillatorStart(opts.OscFrames, step)
	return a.builder.NewEntityWith(
		Position{Value: pos},
		Oscillator{FrameCounter: int32(frame), StepAngle: step, CurrentAngle: angle},
		Rotation{Value: mgl32.QuatIdent()},
		TransformMatrix{Value: mgl32.Translate3D(pos[0], pos[1], pos[2])},
	)
}

// tilt returns the local rotation of angle degrees about X.
func tilt(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(angle), axisX)
}

// rotationTransform returns T(pos) * R(rot).
func rotationTransform(pos mgl32.Vec3, rot mgl32.Quat) mgl32.Mat4 {
	m := rot.Mat4()
	m[12], m[13], m[14] = pos[0], pos[1], pos[2]
	return m
}

// rotateKernel is the oscillator strategy without a hierarchy. Each sprite
// faces the camera position on its own.
type rotateKernel struct {
	base
	oscillatorArchetype
}

func newRotateKernel(b base) *rotateKernel {
	return &rotateKernel{base: b, oscillatorArchetype: newOscillatorArchetype(b.world)}
}

func (k *rotateKernel) Spawn(gen *spawn.Generator, n int) error {
	if err := k.reserve(n); err != nil {
		return err
	}
	for range n {
		k.spawnOne(gen, k.opts)
	}
	k.count += n
	return nil
}

func (k *rotateKernel) Update(f Frame) error {
	if err := k.validate(f); err != nil {
		return err
	}
	cam := f.Camera.Position
	dt, interval, frames := f.Delta, k.opts.OscInterval, int32(k.opts.OscFrames)
	k.views = k.filter.Views(k.views)
	for _, v := range k.views {
		k.dispatch.Go(v.Len(), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				pos := v.C1[i].Value
				osc := &v.C2[i]
				osc.Step(dt, interval, frames)
				rot := billboard.Orient(pos, cam).Mul(tilt(osc.CurrentAngle))
				v.C3[i].Value = rot
				v.C4[i].Value = rotationTransform(pos, rot)
			}
		})
	}
	k.dispatch.Wait()
	return nil
}

func (k *rotateKernel) Remove(e ecs.Entity) error {
	return k.removeOwned(e, k.states.Has(e))
}
