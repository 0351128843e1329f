// Package camera maintains the single shared camera datum every billboard
// reads during an update pass.
//
// The datum lives on exactly one entity in the world. Once per frame the
// Broadcaster writes it and returns a Handle; the update pass receives that
// handle explicitly and validates it before reading anything.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/billboard"
	"github.com/edwinsyarief/flipboard/ecs"
)

var (
	// ErrDatumCount means the world does not hold exactly one camera datum.
	ErrDatumCount = errors.New("camera: shared datum count must be exactly 1")
	// ErrStaleHandle means the handle was not produced by this frame's broadcast.
	ErrStaleHandle = errors.New("camera: handle does not match the shared datum")
)

// Input is the camera transform sampled once per frame.
type Input interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
}

// Datum is the shared camera record. Billboard is the zero-roll rotation
// derived from Rotation, computed once per broadcast.
type Datum struct {
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Billboard mgl32.Quat
	Version   uint64
}

// Handle is a read-only snapshot of the datum handed to the update pass.
type Handle struct {
	Datum
}

// Broadcaster is the single writer of the shared datum.
type Broadcaster struct {
	world  *ecs.World
	entity ecs.Entity
	datums ecs.Map[Datum]
}

// NewBroadcaster creates the datum entity in w.
func NewBroadcaster(w *ecs.World) *Broadcaster {
	e := ecs.NewBuilder[Datum](w).NewEntityWith(Datum{
		Rotation:  mgl32.QuatIdent(),
		Billboard: mgl32.QuatIdent(),
	})
	return &Broadcaster{
		world:  w,
		entity: e,
		datums: ecs.NewMap[Datum](w),
	}
}

// Entity returns the entity that carries the datum.
func (b *Broadcaster) Entity() ecs.Entity {
	return b.entity
}

// Broadcast samples in, writes the datum and returns a handle for this frame.
func (b *Broadcaster) Broadcast(in Input) Handle {
	d := b.datums.Get(b.entity)
	if d == nil {
		panic("camera: shared datum entity was removed")
	}
	rot := in.Rotation()
	d.Position = in.Position()
	d.Rotation = rot
	d.Billboard = billboard.FromCameraRotation(rot)
	d.Version++
	return Handle{Datum: *d}
}

// Count returns the number of camera datums in w.
func Count(w *ecs.World) int {
	return ecs.NewFilter[Datum](w).Count()
}

// Validator checks the shared datum at the start of every update pass. The
// filter is built once so validation does not allocate per frame.
type Validator struct {
	datums *ecs.Filter[Datum]
}

// NewValidator returns a Validator for w.
func NewValidator(w *ecs.World) *Validator {
	return &Validator{datums: ecs.NewFilter[Datum](w)}
}

// Validate checks that the world holds exactly one datum and that h reflects
// its latest broadcast. A zero handle never validates, even against a datum
// that has not been broadcast yet.
func (v *Validator) Validate(h Handle) error {
	if n := v.datums.Count(); n != 1 {
		return fmt.Errorf("%w: found %d", ErrDatumCount, n)
	}
	if h.Version == 0 {
		return fmt.Errorf("%w: handle was never broadcast", ErrStaleHandle)
	}
	v.datums.Reset()
	v.datums.Next()
	if cur := v.datums.Get().Version; cur != h.Version {
		return fmt.Errorf("%w: handle version %d, datum version %d", ErrStaleHandle, h.Version, cur)
	}
	return nil
}
