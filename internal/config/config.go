// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Gear    GearConfig    `yaml:"gear" toml:"gear"`
	Train   TrainConfig   `yaml:"train" toml:"train"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Light   LightConfig   `yaml:"light" toml:"light"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Capture CaptureConfig `yaml:"capture" toml:"capture"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// Vec3 is a point or colour written as {x, y, z} in config files.
type Vec3 struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// Vec returns v as a math vector.
func (v Vec3) Vec() math.Vec3 { return math.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Array returns v as an RGB triple.
func (v Vec3) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Background Vec3   `yaml:"background" toml:"background"`
}

// GearConfig is the template for new gears and the live-edit target.
type GearConfig struct {
	Width       float32 `yaml:"width" toml:"width"`
	InnerRadius float32 `yaml:"inner_radius" toml:"inner_radius"`
	OuterRadius float32 `yaml:"outer_radius" toml:"outer_radius"`
	ToothDepth  float32 `yaml:"tooth_depth" toml:"tooth_depth"`
	Teeth       int     `yaml:"teeth" toml:"teeth"`
	Shininess   float32 `yaml:"shininess" toml:"shininess"`
	// Spawn is where gears created from the viewer appear.
	Spawn Vec3 `yaml:"spawn" toml:"spawn"`
}

// Spec converts the template to a gear.Spec positioned at Spawn.
func (g GearConfig) Spec() gear.Spec {
	return gear.Spec{
		Width:       g.Width,
		InnerRadius: g.InnerRadius,
		OuterRadius: g.OuterRadius,
		ToothDepth:  g.ToothDepth,
		Teeth:       g.Teeth,
		Position:    g.Spawn.Vec(),
	}
}

// SetSpec copies the shape parameters of s into the template.
func (g *GearConfig) SetSpec(s gear.Spec) {
	g.Width = s.Width
	g.InnerRadius = s.InnerRadius
	g.OuterRadius = s.OuterRadius
	g.ToothDepth = s.ToothDepth
	g.Teeth = s.Teeth
}

// TrainConfig lays out the startup scene: a driven gear on +X meshing with
// a centre gear, which meshes with an idler on -X.
type TrainConfig struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	Spacing     float32 `yaml:"spacing" toml:"spacing"`
	DriverSpeed float32 `yaml:"driver_speed" toml:"driver_speed"` // rad/s
}

// PhysicsConfig holds rigid body settings.
type PhysicsConfig struct {
	Mass            float32 `yaml:"mass" toml:"mass"`
	ProxyHalfHeight float32 `yaml:"proxy_half_height" toml:"proxy_half_height"`
	Iterations      int     `yaml:"iterations" toml:"iterations"`
	DebugDraw       bool    `yaml:"debug_draw" toml:"debug_draw"`
}

// LightConfig describes the single point light.
type LightConfig struct {
	Position Vec3    `yaml:"position" toml:"position"`
	Ambient  float32 `yaml:"ambient" toml:"ambient"`
	Diffuse  float32 `yaml:"diffuse" toml:"diffuse"`
	Specular float32 `yaml:"specular" toml:"specular"`
}

// CameraConfig holds orbit camera settings. FOV is in degrees.
type CameraConfig struct {
	Distance    float32 `yaml:"distance" toml:"distance"`
	MinDistance float32 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance" toml:"max_distance"`
	FOV         float32 `yaml:"fov" toml:"fov"`
	Near        float32 `yaml:"near" toml:"near"`
	Far         float32 `yaml:"far" toml:"far"`
}

// CaptureConfig controls screenshots.
type CaptureConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
	Format string `yaml:"format" toml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	Format  string `yaml:"format" toml:"format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	g := gear.Default()
	return &Config{
		Window: WindowConfig{
			Title:      "Gears",
			Width:      1280,
			Height:     720,
			VSync:      true,
			Background: Vec3{0.1, 0.1, 0.12},
		},
		Gear: GearConfig{
			Width:       g.Width,
			InnerRadius: g.InnerRadius,
			OuterRadius: g.OuterRadius,
			ToothDepth:  g.ToothDepth,
			Teeth:       g.Teeth,
			Shininess:   32,
			Spawn:       Vec3{0, 6, 0},
		},
		Train: TrainConfig{
			Enabled:     true,
			Spacing:     6,
			DriverSpeed: 3.5,
		},
		Physics: PhysicsConfig{
			Mass:            6.28,
			ProxyHalfHeight: 0.5,
			Iterations:      10,
		},
		Light: LightConfig{
			Position: Vec3{2.5, 2.5, 5},
			Ambient:  0.1,
			Diffuse:  0.7,
			Specular: 0.3,
		},
		Camera: CameraConfig{
			Distance:    15,
			MinDistance: 4,
			MaxDistance: 60,
			FOV:         45,
			Near:        0.1,
			Far:         200,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "gears",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks settings that would break the viewer.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if err := c.Gear.Spec().Validate(); err != nil {
		return fmt.Errorf("gear: %w", err)
	}
	switch c.Capture.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("capture format %q: %w", c.Capture.Format, ErrUnsupportedFormat)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%g, %g] is empty", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
