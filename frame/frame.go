// Package frame drives the benchmark loop: sample the camera, broadcast the
// shared datum, run the kernel and announce the finished frame.
package frame

import (
	"context"
	"fmt"
	"time"

	"github.com/edwinsyarief/flipboard/camera"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/kernel"
)

// Stats is published on the event bus after every successful frame.
type Stats struct {
	Index    uint64
	Time     float32
	Delta    float32
	Strategy kernel.Strategy
	Sprites  int
	Update   time.Duration // wall time spent in Kernel.Update
}

// Advancer is implemented by camera inputs that move over time.
type Advancer interface {
	Advance(dt float32)
}

// Driver owns the frame clock. It is the only writer of the camera datum.
type Driver struct {
	world  *ecs.World
	kernel kernel.Kernel
	input  camera.Input
	bcast  *camera.Broadcaster
	bus    *ecs.EventBus

	time  float32
	index uint64
}

// NewDriver creates the camera datum in w and returns a driver for k. bus may
// be nil when nobody listens for Stats.
func NewDriver(w *ecs.World, k kernel.Kernel, in camera.Input, bus *ecs.EventBus) *Driver {
	if bus == nil {
		bus = &ecs.EventBus{}
	}
	return &Driver{
		world:  w,
		kernel: k,
		input:  in,
		bcast:  camera.NewBroadcaster(w),
		bus:    bus,
	}
}

// Bus returns the event bus Stats are published on.
func (d *Driver) Bus() *ecs.EventBus {
	return d.bus
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 {
	return d.index
}

// Step advances the clock by dt and runs one frame. A kernel error is returned
// unchanged in meaning and leaves the clock where it was.
func (d *Driver) Step(dt float32) error {
	if a, ok := d.input.(Advancer); ok {
		a.Advance(dt)
	}
	h := d.bcast.Broadcast(d.input)
	f := kernel.Frame{
		Index:  d.index,
		Time:   d.time + dt,
		Delta:  dt,
		Camera: h,
	}
	start := time.Now()
	if err := d.kernel.Update(f); err != nil {
		return fmt.Errorf("frame %d: %w", d.index, err)
	}
	elapsed := time.Since(start)
	d.time = f.Time
	d.index++
	ecs.Publish(d.bus, Stats{
		Index:    f.Index,
		Time:     f.Time,
		Delta:    dt,
		Strategy: d.kernel.Strategy(),
		Sprites:  d.kernel.Count(),
		Update:   elapsed,
	})
	return nil
}

// Run steps frames times with a fixed dt, or until ctx is done when frames is
// 0. Cancellation is checked between frames only.
func (d *Driver) Run(ctx context.Context, frames int, dt float32) error {
	for i := 0; frames == 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Step(dt); err != nil {
			return err
		}
	}
	return nil
}
