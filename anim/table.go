// Package anim holds the flip-book animation table: a short, fixed ramp of
// tilt angles that a continuous phase is quantised onto.
package anim

import (
	"errors"
	"fmt"
	"math"
)

// DefaultFrames is the number of flip-book frames in the reference harness.
const DefaultFrames = 16

// MaxAngle is the tilt of the first frame, in degrees.
const MaxAngle = 90

// ErrFrameCount is returned for tables with fewer than two frames.
var ErrFrameCount = errors.New("anim: frame count must be at least 2")

// Table maps a normalised phase to one of Len() discrete tilt angles that ramp
// from MaxAngle down to 0. It is immutable once built and safe for concurrent
// reads.
type Table struct {
	angles  []int
	created bool
}

// NewTable builds a table with the given number of frames. Entry i is
// 90 - floor(90/(frames-1))*i; the last entry is pinned to 0 so the ramp always
// ends flat even when 90 is not a multiple of frames-1.
func NewTable(frames int) (*Table, error) {
	if frames < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrFrameCount, frames)
	}
	step := MaxAngle / (frames - 1)
	t := &Table{angles: make([]int, frames), created: true}
	for i := range t.angles {
		t.angles[i] = MaxAngle - step*i
	}
	t.angles[frames-1] = 0
	return t, nil
}

// MustTable is NewTable for constant frame counts.
func MustTable(frames int) *Table {
	t, err := NewTable(frames)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) check() {
	if t == nil || !t.created {
		panic("anim: table accessed before build or after release")
	}
}

// Len returns the number of frames.
func (t *Table) Len() int {
	t.check()
	return len(t.angles)
}

// At returns the tilt angle of frame i.
func (t *Table) At(i int) int {
	t.check()
	return t.angles[i]
}

// Index quantises phase onto a frame index: round(phase*(Len-1)). Phases
// outside [0, 1] are clamped, so the result is always a valid index.
func (t *Table) Index(phase float32) int {
	t.check()
	last := len(t.angles) - 1
	i := int(math.Round(float64(phase) * float64(last)))
	return min(max(i, 0), last)
}

// Angle returns the tilt angle for phase.
func (t *Table) Angle(phase float32) int {
	return t.angles[t.Index(phase)]
}

// IsCreated reports whether the table is built and not yet released.
func (t *Table) IsCreated() bool {
	return t != nil && t.created
}

// Release drops the table storage. Calling it twice is a no-op.
func (t *Table) Release() {
	if t == nil {
		return
	}
	t.angles = nil
	t.created = false
}
