package frame_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/camera"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/frame"
	"github.com/edwinsyarief/flipboard/kernel"
	"github.com/edwinsyarief/flipboard/spawn"
)

func newDriver(t *testing.T, s kernel.Strategy, in camera.Input) (*ecs.World, *frame.Driver) {
	t.Helper()
	w := ecs.NewWorld(256)
	opts := kernel.DefaultOptions(s)
	opts.Workers = 1
	k, err := kernel.New(w, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(k.Close)
	if err := k.Spawn(spawn.NewGenerator(1, spawn.DefaultHalfExtents), 100); err != nil {
		t.Fatal(err)
	}
	return w, frame.NewDriver(w, k, in, nil)
}

func TestStepPublishesStats(t *testing.T) {
	_, d := newDriver(t, kernel.StrategyRotate, camera.NewStatic(mgl32.Vec3{0, 0, -100}, mgl32.Vec3{}))
	var got []frame.Stats
	ecs.Subscribe(d.Bus(), func(s frame.Stats) {
		got = append(got, s)
	})
	for range 3 {
		if err := d.Step(0.5); err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 stats events, got %d", len(got))
	}
	last := got[2]
	if last.Index != 2 || last.Time != 1.5 || last.Sprites != 100 || last.Strategy != kernel.StrategyRotate {
		t.Errorf("unexpected stats %+v", last)
	}
	if d.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", d.Frames())
	}
}

func TestRunAdvancesOrbit(t *testing.T) {
	orbit := &camera.Orbit{Radius: 50, Speed: 1}
	_, d := newDriver(t, kernel.StrategyParent, orbit)
	if err := d.Run(context.Background(), 10, 0.1); err != nil {
		t.Fatal(err)
	}
	if orbit.Azimuth < 0.99 || orbit.Azimuth > 1.01 {
		t.Errorf("azimuth %v after 1s at 1 rad/s", orbit.Azimuth)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	_, d := newDriver(t, kernel.StrategyMatrix, &camera.Static{Rot: mgl32.QuatIdent()})
	ctx, cancel := context.WithCancel(context.Background())
	ecs.Subscribe(d.Bus(), func(s frame.Stats) {
		if s.Index == 4 {
			cancel()
		}
	})
	err := d.Run(ctx, 0, 0.016)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if d.Frames() != 5 {
		t.Errorf("ran %d frames, want 5", d.Frames())
	}
}

func TestDuplicateDatumIsFatal(t *testing.T) {
	w, d := newDriver(t, kernel.StrategyMatrix, &camera.Static{Rot: mgl32.QuatIdent()})
	camera.NewBroadcaster(w)
	err := d.Run(context.Background(), 5, 0.016)
	if !errors.Is(err, camera.ErrDatumCount) {
		t.Fatalf("expected ErrDatumCount, got %v", err)
	}
	if d.Frames() != 0 {
		t.Errorf("frames completed despite the error: %d", d.Frames())
	}
}
