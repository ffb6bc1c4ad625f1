// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Terrain TerrainConfig `yaml:"terrain"`
	Lights  []LightConfig `yaml:"lights"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`

	// path is the file the config was loaded from.
	path string
}

// RenderConfig holds window and tracing settings.
type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Threads    int     `yaml:"threads"` // 0 or 1 renders on the main goroutine
	Scene      string  `yaml:"scene"`   // linear, quadtree, kdtree
	Mode       string  `yaml:"mode"`    // rays, columns, slope_columns
	Split      string  `yaml:"split"`   // even, sah
	ShadowBias float32 `yaml:"shadow_bias"`
	Seed       int64   `yaml:"seed"`
	VSync      bool    `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig holds the initial pose and the control speeds.
type CameraConfig struct {
	Position  [3]float32 `yaml:"position"`
	Direction [3]float32 `yaml:"direction"`
	FOV       float32    `yaml:"fov"` // degrees

	MoveSpeed        float32 `yaml:"move_speed"`   // grid cells per second
	RotateSpeed      float32 `yaml:"rotate_speed"` // radians per second
	LightSpeed       float32 `yaml:"light_speed"`  // radians per second
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`

	// Clearance keeps the camera above the terrain. Zero disables it.
	Clearance float32 `yaml:"clearance"`

	// Remember writes the final pose back to the config file on exit.
	Remember bool `yaml:"remember"`
}

// TerrainConfig selects the heightmap. Image wins over the procedural
// settings when set.
type TerrainConfig struct {
	Image string  `yaml:"image"`
	Scale float32 `yaml:"scale"` // height of a white pixel

	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Seed      int64   `yaml:"seed"`
	Amplitude float32 `yaml:"amplitude"`
}

// LightConfig describes a directional light. Direction points towards the
// light; when empty, Azimuth and Elevation (degrees) are used instead.
type LightConfig struct {
	Direction []float32  `yaml:"direction,omitempty"`
	Azimuth   float32    `yaml:"azimuth"`
	Elevation float32    `yaml:"elevation"`
	Color     [3]float32 `yaml:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	// Listen is the address of the /metrics endpoint. Empty disables it.
	Listen string `yaml:"listen"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      640,
			Height:     480,
			Threads:    8,
			Scene:      "kdtree",
			Mode:       "columns",
			Split:      "even",
			ShadowBias: 1.0,
			Seed:       1,
			VSync:      false,
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 0, 8},
			Direction:        [3]float32{1, 1, -1},
			FOV:              90,
			MoveSpeed:        100,
			RotateSpeed:      0.25,
			LightSpeed:       0.25,
			MouseSensitivity: 0.005,
			Clearance:        0.5,
		},
		Terrain: TerrainConfig{
			Scale:     32,
			Width:     257,
			Height:    257,
			Seed:      1,
			Amplitude: 32,
		},
		Lights: []LightConfig{
			{Azimuth: 45, Elevation: 30, Color: [3]float32{1, 1, 1}},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Vec converts a YAML triple.
func Vec(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Dir returns the unit direction towards the light.
func (l LightConfig) Dir() math.Vec3 {
	if len(l.Direction) == 3 {
		return math.Vec3{X: l.Direction[0], Y: l.Direction[1], Z: l.Direction[2]}.Normalize()
	}
	return lighting.SunDirection(l.Azimuth, l.Elevation)
}

// Light builds the light source.
func (l LightConfig) Light() *lighting.DirectionalLight {
	c := lighting.Color{R: l.Color[0], G: l.Color[1], B: l.Color[2]}
	return lighting.NewDirectionalLight(l.Dir(), c)
}
