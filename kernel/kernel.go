// Package kernel computes the per-frame world transforms of a sprite
// population. Three strategies share one interface; each runs its update pass
// as independent batches on a Dispatcher and reads the camera only through
// the handle passed in with the frame.
package kernel

import (
	"errors"
	"fmt"

	"github.com/edwinsyarief/flipboard/camera"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/spawn"
	"github.com/edwinsyarief/flipboard/sprite"
)

// ErrNotSprite is returned by Remove for entities the kernel did not spawn as
// animated sprites, including hierarchy children.
var ErrNotSprite = errors.New("kernel: entity is not an animated sprite of this kernel")

// Frame is the input of one update pass.
type Frame struct {
	Index  uint64
	Time   float32 // seconds since start
	Delta  float32 // seconds since the previous frame
	Camera camera.Handle
}

// Kernel updates the transforms of every sprite it spawned.
type Kernel interface {
	Strategy() Strategy
	// Spawn adds n sprites drawn from gen.
	Spawn(gen *spawn.Generator, n int) error
	// Update validates f.Camera against the world and runs one pass. Nothing
	// is written when validation fails.
	Update(f Frame) error
	// Count returns the number of animated sprites.
	Count() int
	// Remove deletes an animated sprite together with anything attached to
	// it. Entities that are not animated sprites of this kernel are rejected
	// with ErrNotSprite.
	Remove(e ecs.Entity) error
	// Look returns the shared look resolved at construction.
	Look() sprite.Look
	// Close stops the worker pool and releases lookup tables. The kernel must
	// not be updated afterwards.
	Close()
}

// New builds the kernel selected by opts.Strategy over w.
func New(w *ecs.World, opts Options) (Kernel, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	b := base{
		world:     w,
		opts:      opts,
		validator: camera.NewValidator(w),
		dispatch:  NewDispatcher(opts.Workers, opts.BatchSize),
	}
	if opts.Provider != nil {
		look, err := opts.Provider.Look(opts.LookName)
		if err != nil {
			return nil, fmt.Errorf("kernel: resolve look %q: %w", opts.LookName, err)
		}
		b.look = look
	}
	switch opts.Strategy {
	case StrategyMatrix:
		k, err := newMatrixKernel(b)
		if err != nil {
			return nil, err
		}
		return k, nil
	case StrategyRotate:
		return newRotateKernel(b), nil
	case StrategyParent:
		return newParentKernel(b), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, opts.Strategy)
}

// base holds what every strategy shares.
type base struct {
	world     *ecs.World
	opts      Options
	validator *camera.Validator
	dispatch  *Dispatcher
	look      sprite.Look
	count     int
}

func (b *base) Strategy() Strategy { return b.opts.Strategy }
func (b *base) Count() int         { return b.count }
func (b *base) Look() sprite.Look  { return b.look }

// reserve checks that n more sprites fit under the population cap.
func (b *base) reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("kernel: cannot spawn %d sprites", n)
	}
	if b.count+n > b.opts.MaxEntities {
		return fmt.Errorf("kernel: spawning %d sprites would exceed the limit of %d (have %d)",
			n, b.opts.MaxEntities, b.count)
	}
	return nil
}

// Close stops the dispatcher's workers.
func (b *base) Close() {
	b.dispatch.Close()
}

// removeOwned deletes e when owned reports it as one of this kernel's sprites.
func (b *base) removeOwned(e ecs.Entity, owned bool) error {
	if !owned {
		return fmt.Errorf("%w: %+v", ErrNotSprite, e)
	}
	b.world.RemoveEntity(e)
	b.count--
	return nil
}

func (b *base) validate(f Frame) error {
	if err := b.validator.Validate(f.Camera); err != nil {
		return fmt.Errorf("kernel: frame %d: %w", f.Index, err)
	}
	return nil
}
