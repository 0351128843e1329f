package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/flipboard/anim"
	"github.com/edwinsyarief/flipboard/camera"
	"github.com/edwinsyarief/flipboard/kernel"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Config)
	}{
		{
			name: "valid config",
			yamlContent: `
strategy: parent
seed: 42
frames: 120
spawn:
  count: 5000
  maxEntities: 10000
  halfExtents: [64, 32, 64]
  childOffset: [0, 1, 0]
oscillator:
  frames: 6
  interval: 0.1
dispatch:
  workers: 2
  batchSize: 16
camera:
  mode: static
  position: [0, 0, -100]
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Strategy != "parent" || cfg.Seed != 42 || cfg.Frames != 120 {
					t.Errorf("top-level fields not decoded: %+v", cfg)
				}
				if cfg.Spawn.HalfExtents != [3]float32{64, 32, 64} {
					t.Errorf("expected halfExtents [64 32 64], got %v", cfg.Spawn.HalfExtents)
				}
				if cfg.Oscillator.Frames != 6 || cfg.Oscillator.Interval != 0.1 {
					t.Errorf("oscillator not decoded: %+v", cfg.Oscillator)
				}
				// Fields absent from the file keep their defaults.
				if cfg.Animation.Frames != anim.DefaultFrames {
					t.Errorf("expected default animation frames, got %d", cfg.Animation.Frames)
				}
				if cfg.Oscillator.Sweep != kernel.DefaultOscSweep {
					t.Errorf("expected default sweep, got %v", cfg.Oscillator.Sweep)
				}
			},
		},
		{
			name:        "frozen animation",
			yamlContent: "animation:\n  speed: 0\n",
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Animation.Speed != 0 {
					t.Errorf("expected speed 0, got %v", cfg.Animation.Speed)
				}
				opts, err := cfg.KernelOptions()
				if err != nil {
					t.Fatal(err)
				}
				if opts.Speed != 0 {
					t.Errorf("kernel speed %v, want 0", opts.Speed)
				}
			},
		},
		{
			name:        "unknown strategy",
			yamlContent: "strategy: spin\n",
			wantErr:     true,
			errContains: "unknown strategy",
		},
		{
			name:        "count above max",
			yamlContent: "spawn:\n  count: 11\n  maxEntities: 10\n",
			wantErr:     true,
			errContains: "spawn.count",
		},
		{
			name:        "one frame table",
			yamlContent: "animation:\n  frames: 1\n",
			wantErr:     true,
			errContains: "animation.frames",
		},
		{
			name:        "bad trig",
			yamlContent: "animation:\n  trig: cordic\n",
			wantErr:     true,
			errContains: "cordic",
		},
		{
			name:        "bad camera mode",
			yamlContent: "camera:\n  mode: fly\n",
			wantErr:     true,
			errContains: "camera.mode",
		},
		{
			name:        "malformed yaml",
			yamlContent: "spawn: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bench.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestKernelOptions(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "rotate"
	cfg.Spawn.ChildOffset = [3]float32{1, 2, 3}
	opts, err := cfg.KernelOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Strategy != kernel.StrategyRotate {
		t.Errorf("strategy %v, want rotate", opts.Strategy)
	}
	if opts.ChildOffset != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("child offset %v", opts.ChildOffset)
	}
	if opts.Provider == nil || opts.LookName != cfg.Look.Name {
		t.Error("look provider not configured")
	}
}

func TestCameraInput(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.CameraInput().(*camera.Orbit); !ok {
		t.Errorf("default camera should orbit, got %T", cfg.CameraInput())
	}
	cfg.Camera.Mode = "static"
	in, ok := cfg.CameraInput().(*camera.Static)
	if !ok {
		t.Fatalf("expected *camera.Static, got %T", cfg.CameraInput())
	}
	if in.Position() != mgl32.Vec3(cfg.Camera.Position) {
		t.Errorf("static camera at %v", in.Position())
	}
}
