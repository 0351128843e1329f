package kernel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/anim"
	"github.com/edwinsyarief/flipboard/billboard"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/spawn"
	"github.com/edwinsyarief/flipboard/trig"
)

// matrixKernel is the table-driven strategy. A sprite's transform is a pure
// function of the clock, its phase header and the camera position.
type matrixKernel struct {
	base
	table   *anim.Table
	trig    trig.Approximator
	builder *ecs.Builder3[Position, PhaseHeader, TransformMatrix]
	headers ecs.Map[PhaseHeader]
	filter  *ecs.Filter3[Position, PhaseHeader, TransformMatrix]
	views   []ecs.View3[Position, PhaseHeader, TransformMatrix]
}

func newMatrixKernel(b base) (*matrixKernel, error) {
	table, err := anim.NewTable(b.opts.AnimFrames)
	if err != nil {
		return nil, err
	}
	approx, err := trig.New(b.opts.Trig)
	if err != nil {
		return nil, err
	}
	return &matrixKernel{
		base:    b,
		table:   table,
		trig:    approx,
		builder: ecs.NewBuilder3[Position, PhaseHeader, TransformMatrix](b.world),
		headers: ecs.NewMap[PhaseHeader](b.world),
		filter:  ecs.NewFilter3[Position, PhaseHeader, TransformMatrix](b.world),
	}, nil
}

func (k *matrixKernel) Spawn(gen *spawn.Generator, n int) error {
	if err := k.reserve(n); err != nil {
		return err
	}
	for range n {
		pos := gen.Position()
		k.builder.NewEntityWith(
			Position{Value: pos},
			PhaseHeader{Value: gen.PhaseHeader()},
			TransformMatrix{Value: mgl32.Translate3D(pos[0], pos[1], pos[2])},
		)
	}
	k.count += n
	return nil
}

func (k *matrixKernel) Update(f Frame) error {
	if err := k.validate(f); err != nil {
		return err
	}
	cam := f.Camera.Position
	clock := f.Time * k.opts.Speed
	k.views = k.filter.Views(k.views)
	for _, v := range k.views {
		k.dispatch.Go(v.Len(), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				pos := v.C1[i].Value
				angle := k.tiltAngle(clock, v.C2[i].Value)
				v.C3[i].Value = k.compose(pos, billboard.Orient(pos, cam), angle)
			}
		})
	}
	k.dispatch.Wait()
	return nil
}

// tiltAngle returns the flip-book tilt in degrees for a sprite with the given
// phase header at the scaled clock value. The clock plus header is read as
// radians and truncated to whole degrees before the sine lookup.
func (k *matrixKernel) tiltAngle(clock float32, header int32) int {
	deg := trig.Normalize(int(float64(clock+float32(header)) * 180 / math.Pi))
	normal := (k.trig.Sin(deg) + 1) / 2
	return k.table.Angle(normal)
}

// compose builds (billboard + translation) * axis rotation, where the axis
// rotation tilts the sprite by angle degrees about local X around the pivot
// (0, PivotY, 0).
func (k *matrixKernel) compose(pos mgl32.Vec3, look mgl32.Quat, angle int) mgl32.Mat4 {
	sin, cos := k.trig.Sin(angle), k.trig.Cos(angle)
	py := k.opts.PivotY
	axis := mgl32.Ident4()
	axis[5], axis[6] = cos, sin
	axis[9], axis[10] = -sin, cos
	axis[13], axis[14] = py-py*cos, -py*sin
	model := look.Mat4()
	model[12], model[13], model[14] = pos[0], pos[1], pos[2]
	return model.Mul4(axis)
}

func (k *matrixKernel) Remove(e ecs.Entity) error {
	return k.removeOwned(e, k.headers.Has(e))
}

func (k *matrixKernel) Close() {
	k.base.Close()
	k.table.Release()
	if t, ok := k.trig.(*trig.Table); ok {
		t.Release()
	}
}
