package kernel

import (
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/anim"
	"github.com/edwinsyarief/flipboard/sprite"
	"github.com/edwinsyarief/flipboard/trig"
)

// Reference harness constants.
const (
	DefaultMaxEntities  = 100000
	DefaultSpeed        = 1
	DefaultPivotY       = -0.5
	DefaultOscFrames    = 9
	DefaultOscInterval  = 0.2
	DefaultOscSweep     = 90
	DefaultLookName     = "dokaben"
	defaultChildOffsetY = 0.65
)

// Options configures a Kernel. The zero value of most fields selects its
// default; see DefaultOptions and withDefaults for the exceptions.
type Options struct {
	Strategy Strategy

	// MaxEntities caps the animated population across all Spawn calls.
	MaxEntities int

	// AnimFrames is the length of the animation table (table-driven strategy).
	AnimFrames int
	// Speed scales the global clock (table-driven strategy). Zero freezes it.
	Speed float32
	// PivotY is the local Y of the tilt axis (table-driven strategy).
	PivotY float32
	// Trig selects the sine/cosine approximator (table-driven strategy).
	Trig trig.Kind

	// OscFrames is the number of steps before the oscillator reverses.
	OscFrames int
	// OscInterval is the time between oscillator steps in seconds.
	OscInterval float32
	// OscSweep is the total angle covered in one direction, in degrees.
	OscSweep float32

	// ChildOffset is the child's local translation (parent strategy).
	ChildOffset mgl32.Vec3

	// BatchSize is the number of entities per dispatched batch.
	BatchSize int
	// Workers is the worker pool size; 1 runs every batch inline.
	Workers int

	// Provider resolves LookName once when the kernel is built. Nil skips it.
	Provider sprite.Provider
	LookName string
}

// DefaultOptions returns the reference harness configuration for s.
func DefaultOptions(s Strategy) Options {
	return Options{
		Strategy:    s,
		MaxEntities: DefaultMaxEntities,
		AnimFrames:  anim.DefaultFrames,
		Speed:       DefaultSpeed,
		PivotY:      DefaultPivotY,
		Trig:        trig.KindTable,
		OscFrames:   DefaultOscFrames,
		OscInterval: DefaultOscInterval,
		OscSweep:    DefaultOscSweep,
		ChildOffset: mgl32.Vec3{0, defaultChildOffsetY, 0},
		BatchSize:   DefaultBatchSize,
		Workers:     runtime.GOMAXPROCS(0),
		LookName:    DefaultLookName,
	}
}

// StepAngle is the oscillator step in degrees.
func (o Options) StepAngle() float32 {
	return o.OscSweep / float32(o.OscFrames)
}

// withDefaults fills zero fields from DefaultOptions. Speed, PivotY and
// ChildOffset are taken as given since zero is meaningful for each: a zero
// speed freezes the table-driven clock.
func (o Options) withDefaults() Options {
	d := DefaultOptions(o.Strategy)
	if o.MaxEntities == 0 {
		o.MaxEntities = d.MaxEntities
	}
	if o.AnimFrames == 0 {
		o.AnimFrames = d.AnimFrames
	}
	if o.Trig == "" {
		o.Trig = d.Trig
	}
	if o.OscFrames == 0 {
		o.OscFrames = d.OscFrames
	}
	if o.OscInterval == 0 {
		o.OscInterval = d.OscInterval
	}
	if o.OscSweep == 0 {
		o.OscSweep = d.OscSweep
	}
	if o.BatchSize == 0 {
		o.BatchSize = d.BatchSize
	}
	if o.Workers == 0 {
		o.Workers = d.Workers
	}
	if o.LookName == "" {
		o.LookName = d.LookName
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Strategy > StrategyParent:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, o.Strategy)
	case o.MaxEntities < 0:
		return fmt.Errorf("kernel: max entities must not be negative, got %d", o.MaxEntities)
	case o.OscFrames < 1:
		return fmt.Errorf("kernel: oscillator frames must be positive, got %d", o.OscFrames)
	case o.OscInterval <= 0:
		return fmt.Errorf("kernel: oscillator interval must be positive, got %v", o.OscInterval)
	case o.BatchSize < 1:
		return fmt.Errorf("kernel: batch size must be positive, got %d", o.BatchSize)
	}
	return nil
}
