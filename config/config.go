// Package config loads benchmark settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/edwinsyarief/flipboard/anim"
	"github.com/edwinsyarief/flipboard/camera"
	"github.com/edwinsyarief/flipboard/kernel"
	"github.com/edwinsyarief/flipboard/sprite"
	"github.com/edwinsyarief/flipboard/trig"
)

// Config is the full benchmark configuration.
type Config struct {
	Strategy   string           `yaml:"strategy"` // matrix, rotate or parent
	Seed       uint64           `yaml:"seed"`
	Frames     int              `yaml:"frames"` // frames to run, 0 runs until cancelled
	Delta      float32          `yaml:"delta"`  // fixed frame time in seconds
	Spawn      SpawnConfig      `yaml:"spawn"`
	Animation  AnimationConfig  `yaml:"animation"`
	Oscillator OscillatorConfig `yaml:"oscillator"`
	Dispatch   DispatchConfig   `yaml:"dispatch"`
	Camera     CameraConfig     `yaml:"camera"`
	Look       LookConfig       `yaml:"look"`
	Profiler   ProfilerConfig   `yaml:"profiler"`
}

// SpawnConfig sizes the population and its volume.
type SpawnConfig struct {
	Count       int        `yaml:"count"`
	MaxEntities int        `yaml:"maxEntities"`
	HalfExtents [3]float32 `yaml:"halfExtents"`
	ChildOffset [3]float32 `yaml:"childOffset"`
}

// AnimationConfig drives the table-driven strategy.
type AnimationConfig struct {
	Frames int     `yaml:"frames"`
	Speed  float32 `yaml:"speed"`
	PivotY float32 `yaml:"pivotY"`
	Trig   string  `yaml:"trig"` // table, polynomial or reference
}

// OscillatorConfig drives the rotate and parent strategies.
type OscillatorConfig struct {
	Frames   int     `yaml:"frames"`
	Interval float32 `yaml:"interval"`
	Sweep    float32 `yaml:"sweep"`
}

// DispatchConfig sizes the worker pool. Workers 0 uses GOMAXPROCS.
type DispatchConfig struct {
	Workers   int `yaml:"workers"`
	BatchSize int `yaml:"batchSize"`
}

// CameraConfig selects the camera input.
type CameraConfig struct {
	Mode     string     `yaml:"mode"` // static or orbit
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Radius   float32    `yaml:"radius"`
	Height   float32    `yaml:"height"`
	Speed    float32    `yaml:"speed"` // orbit radians per second
}

// LookConfig describes the shared sprite quad.
type LookConfig struct {
	Name   string  `yaml:"name"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// ProfilerConfig controls frame statistics reporting.
type ProfilerConfig struct {
	ReportEvery int `yaml:"reportEvery"` // frames between reports, 0 disables
}

// Default returns the reference harness configuration.
func Default() *Config {
	o := kernel.DefaultOptions(kernel.StrategyMatrix)
	return &Config{
		Strategy: kernel.StrategyMatrix.String(),
		Seed:     1,
		Frames:   600,
		Delta:    1.0 / 60,
		Spawn: SpawnConfig{
			Count:       o.MaxEntities,
			MaxEntities: o.MaxEntities,
			HalfExtents: [3]float32{128, 128, 128},
			ChildOffset: o.ChildOffset,
		},
		Animation: AnimationConfig{
			Frames: anim.DefaultFrames,
			Speed:  o.Speed,
			PivotY: o.PivotY,
			Trig:   string(trig.KindTable),
		},
		Oscillator: OscillatorConfig{
			Frames:   o.OscFrames,
			Interval: o.OscInterval,
			Sweep:    o.OscSweep,
		},
		Dispatch: DispatchConfig{BatchSize: kernel.DefaultBatchSize},
		Camera: CameraConfig{
			Mode:     "orbit",
			Position: [3]float32{0, 0, -300},
			Radius:   300,
			Height:   60,
			Speed:    0.2,
		},
		Look: LookConfig{
			Name:   kernel.DefaultLookName,
			Width:  1,
			Height: 1,
		},
		Profiler: ProfilerConfig{ReportEvery: 60},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if _, err := kernel.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", c.Frames)
	}
	if c.Delta <= 0 {
		return fmt.Errorf("delta must be > 0, got %v", c.Delta)
	}
	if c.Spawn.MaxEntities < 1 {
		return fmt.Errorf("spawn.maxEntities must be >= 1, got %d", c.Spawn.MaxEntities)
	}
	if c.Spawn.Count < 0 || c.Spawn.Count > c.Spawn.MaxEntities {
		return fmt.Errorf("spawn.count must be between 0 and %d, got %d", c.Spawn.MaxEntities, c.Spawn.Count)
	}
	for i, h := range c.Spawn.HalfExtents {
		if h < 0 {
			return fmt.Errorf("spawn.halfExtents[%d] must be >= 0, got %v", i, h)
		}
	}
	if c.Animation.Frames < 2 {
		return fmt.Errorf("animation.frames: %w", anim.ErrFrameCount)
	}
	if _, err := trig.ParseKind(c.Animation.Trig); err != nil {
		return err
	}
	if c.Oscillator.Frames < 1 {
		return fmt.Errorf("oscillator.frames must be >= 1, got %d", c.Oscillator.Frames)
	}
	if c.Oscillator.Interval <= 0 {
		return fmt.Errorf("oscillator.interval must be > 0, got %v", c.Oscillator.Interval)
	}
	if c.Dispatch.Workers < 0 {
		return fmt.Errorf("dispatch.workers must be >= 0, got %d", c.Dispatch.Workers)
	}
	if c.Dispatch.BatchSize < 1 {
		return fmt.Errorf("dispatch.batchSize must be >= 1, got %d", c.Dispatch.BatchSize)
	}
	switch c.Camera.Mode {
	case "static", "orbit":
	default:
		return fmt.Errorf("camera.mode must be static or orbit, got %q", c.Camera.Mode)
	}
	if c.Look.Name == "" {
		return fmt.Errorf("look.name: %w", sprite.ErrEmptyName)
	}
	if c.Look.Width <= 0 || c.Look.Height <= 0 {
		return fmt.Errorf("look size must be positive, got %vx%v", c.Look.Width, c.Look.Height)
	}
	if c.Profiler.ReportEvery < 0 {
		return fmt.Errorf("profiler.reportEvery must be >= 0, got %d", c.Profiler.ReportEvery)
	}
	return nil
}

// KernelOptions converts c into kernel options.
func (c *Config) KernelOptions() (kernel.Options, error) {
	s, err := kernel.ParseStrategy(c.Strategy)
	if err != nil {
		return kernel.Options{}, err
	}
	return kernel.Options{
		Strategy:    s,
		MaxEntities: c.Spawn.MaxEntities,
		AnimFrames:  c.Animation.Frames,
		Speed:       c.Animation.Speed,
		PivotY:      c.Animation.PivotY,
		Trig:        trig.Kind(c.Animation.Trig),
		OscFrames:   c.Oscillator.Frames,
		OscInterval: c.Oscillator.Interval,
		OscSweep:    c.Oscillator.Sweep,
		ChildOffset: mgl32.Vec3(c.Spawn.ChildOffset),
		BatchSize:   c.Dispatch.BatchSize,
		Workers:     c.Dispatch.Workers,
		Provider:    sprite.NewQuadProvider(c.Look.Width, c.Look.Height, c.Animation.PivotY),
		LookName:    c.Look.Name,
	}, nil
}

// HalfExtents returns the spawn volume half-size.
func (c *Config) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3(c.Spawn.HalfExtents)
}

// CameraInput builds the configured camera input.
func (c *Config) CameraInput() camera.Input {
	if c.Camera.Mode == "static" {
		return camera.NewStatic(mgl32.Vec3(c.Camera.Position), mgl32.Vec3(c.Camera.Target))
	}
	return &camera.Orbit{
		Target: mgl32.Vec3(c.Camera.Target),
		Radius: c.Camera.Radius,
		Height: c.Camera.Height,
		Speed:  c.Camera.Speed,
	}
}
