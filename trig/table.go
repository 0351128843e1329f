package trig

import "math"

// TableLength is the number of precomputed entries, one per degree in [0, 90].
const TableLength = 91

// Table answers sine from a first-quadrant lookup table and derives the other
// quadrants by reflection. It must be built with NewTable and is unusable after
// Release; both misuses panic.
type Table struct {
	sin     []float32
	created bool
}

// NewTable precomputes sin(0°)..sin(90°).
func NewTable() *Table {
	t := &Table{sin: make([]float32, TableLength), created: true}
	for i := range t.sin {
		t.sin[i] = float32(math.Sin(float64(i) * math.Pi / 180))
	}
	return t
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
	t.sin = nil
	t.created = false
}

func (t *Table) Sin(deg int) float32 {
	if !t.IsCreated() {
		panic("trig: lookup table accessed before build or after release")
	}
	d := Normalize(deg)
	switch {
	case d <= 90:
		return t.sin[d]
	case d <= 180:
		return t.sin[180-d]
	case d <= 270:
		return -t.sin[d-180]
	default:
		return -t.sin[360-d]
	}
}

func (t *Table) Cos(deg int) float32 {
	return t.Sin(deg + 90)
}
