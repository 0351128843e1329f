package kernel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/spawn"
)

// parentKernel steps the oscillator on invisible parent entities that share
// the camera's zero-roll rotation, then resolves one child quad per parent:
//
//	World(child) = World(parent) * T(offset) * R(local)
//
// Parents are finished before any child reads them; the two passes are
// separated by a dispatcher barrier.
type parentKernel struct {
	base
	oscillatorArchetype
	children   *ecs.Builder4[LocalOffset, LocalRotation, Parent, TransformMatrix]
	childViews []ecs.View4[LocalOffset, LocalRotation, Parent, TransformMatrix]
	childQuery *ecs.Filter4[LocalOffset, LocalRotation, Parent, TransformMatrix]
	transforms ecs.Map[TransformMatrix]
	childOf    map[ecs.Entity]ecs.Entity // parent to child
}

func newParentKernel(b base) *parentKernel {
	return &parentKernel{
		base:                b,
		oscillatorArchetype: newOscillatorArchetype(b.world),
		children:            ecs.NewBuilder4[LocalOffset, LocalRotation, Parent, TransformMatrix](b.world),
		childQuery:          ecs.NewFilter4[LocalOffset, LocalRotation, Parent, TransformMatrix](b.world),
		transforms:          ecs.NewMap[TransformMatrix](b.world),
		childOf:             make(map[ecs.Entity]ecs.Entity),
	}
}

func (k *parentKernel) Spawn(gen *spawn.Generator, n int) error {
	if err := k.reserve(n); err != nil {
		return err
	}
	for range n {
		p := k.spawnOne(gen, k.opts)
		k.childOf[p] = k.children.NewEntityWith(
			LocalOffset{Value: k.opts.ChildOffset},
			LocalRotation{Value: mgl32.QuatIdent()},
			Parent{Entity: p},
			TransformMatrix{Value: mgl32.Ident4()},
		)
	}
	k.count += n
	return nil
}

func (k *parentKernel) Update(f Frame) error {
	if err := k.validate(f); err != nil {
		return err
	}
	look := f.Camera.Billboard
	dt, interval, frames := f.Delta, k.opts.OscInterval, int32(k.opts.OscFrames)

	k.views = k.filter.Views(k.views)
	for _, v := range k.views {
		k.dispatch.Go(v.Len(), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				osc := &v.C2[i]
				osc.Step(dt, interval, frames)
				rot := look.Mul(tilt(osc.CurrentAngle))
				v.C3[i].Value = rot
				v.C4[i].Value = rotationTransform(v.C1[i].Value, rot)
			}
		})
	}
	k.dispatch.Wait()

	k.childViews = k.childQuery.Views(k.childViews)
	for _, v := range k.childViews {
		k.dispatch.Go(v.Len(), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				parent := k.transforms.Get(v.C3[i].Entity)
				if parent == nil {
					continue
				}
				local := rotationTransform(v.C1[i].Value, v.C2[i].Value)
				v.C4[i].Value = parent.Value.Mul4(local)
			}
		})
	}
	k.dispatch.Wait()
	return nil
}

// Remove deletes a parent together with its child. Children themselves are
// rejected; they only go away with their parent.
func (k *parentKernel) Remove(parent ecs.Entity) error {
	child, ok := k.childOf[parent]
	if err := k.removeOwned(parent, ok && k.states.Has(parent)); err != nil {
		return err
	}
	delete(k.childOf, parent)
	k.world.RemoveEntity(child)
	return nil
}
