package spawn

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPositionInsideVolume(t *testing.T) {
	half := mgl32.Vec3{128, 64, 32}
	g := NewGenerator(7, half)
	for range 10000 {
		p := g.Position()
		for i := range p {
			if p[i] < -half[i] || p[i] > half[i] {
				t.Fatalf("position %v outside ±%v", p, half)
			}
		}
	}
}

func TestPhaseHeaderRange(t *testing.T) {
	g := NewGenerator(1, DefaultHalfExtents)
	for range 10000 {
		if h := g.PhaseHeader(); h < 0 || h >= 90 {
			t.Fatalf("phase header %d outside [0, 90)", h)
		}
	}
}

func TestOscillatorStart(t *testing.T) {
	g := NewGenerator(3, DefaultHalfExtents)
	seen := make(map[int]bool)
	for range 1000 {
		frame, angle := g.OscillatorStart(9, 10)
		if frame < 0 || frame >= 9 {
			t.Fatalf("frame %d outside [0, 9)", frame)
		}
		if angle != float32(frame)*10 {
			t.Fatalf("angle %v does not match frame %d", angle, frame)
		}
		seen[frame] = true
	}
	if len(seen) != 9 {
		t.Errorf("expected every frame to be drawn, saw %d", len(seen))
	}
	if f, a := g.OscillatorStart(0, 10); f != 0 || a != 0 {
		t.Errorf("zero frames: got %d, %v", f, a)
	}
}

func TestDeterministic(t *testing.T) {
	a := NewGenerator(42, DefaultHalfExtents)
	b := NewGenerator(42, DefaultHalfExtents)
	for range 100 {
		if a.Position() != b.Position() || a.PhaseHeader() != b.PhaseHeader() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
