package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Faultbox/prayground/internal/engine/renderer"
	"github.com/Faultbox/prayground/internal/engine/scene"
	"github.com/Faultbox/prayground/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Scene != "kdtree" {
		t.Errorf("expected scene kdtree, got %s", cfg.Render.Scene)
	}
	if cfg.Camera.FOV != 90 {
		t.Errorf("expected fov 90, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.MoveSpeed != 100 {
		t.Errorf("expected move speed 100, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.MouseSensitivity != 0.005 {
		t.Errorf("expected mouse sensitivity 0.005, got %f", cfg.Camera.MouseSensitivity)
	}
	if len(cfg.Lights) != 1 {
		t.Errorf("expected one default light, got %d", len(cfg.Lights))
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Metrics.Listen != "" {
		t.Errorf("expected metrics disabled, got %s", cfg.Metrics.Listen)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "prayground.yaml")

	yamlContent := `
render:
  width: 320
  height: 200
  threads: 16
  scene: quadtree
  mode: slope_columns
  split: sah

camera:
  position: [10, 20, 30]
  fov: 60

terrain:
  image: "maps/island.png"
  scale: 12.5

lights:
  - direction: [0, 0, 1]
    color: [1, 0.5, 0.25]
  - azimuth: 90
    elevation: 45
    color: [0.2, 0.2, 0.2]

logging:
  level: "debug"
  log_file: "prayground.log"

metrics:
  listen: ":9100"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Width != 320 || cfg.Render.Height != 200 {
		t.Errorf("expected 320x200, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Threads != 16 {
		t.Errorf("expected 16 threads, got %d", cfg.Render.Threads)
	}
	if cfg.Render.Mode != "slope_columns" {
		t.Errorf("expected mode slope_columns, got %s", cfg.Render.Mode)
	}
	if cfg.Camera.Position != [3]float32{10, 20, 30} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	// untouched keys keep their defaults
	if cfg.Camera.Direction != [3]float32{1, 1, -1} {
		t.Errorf("expected default direction, got %v", cfg.Camera.Direction)
	}
	if cfg.Terrain.Scale != 12.5 {
		t.Errorf("expected scale 12.5, got %f", cfg.Terrain.Scale)
	}
	if len(cfg.Lights) != 2 {
		t.Fatalf("expected lights to be replaced by 2 entries, got %d", len(cfg.Lights))
	}
	if d := cfg.Lights[0].Dir(); d.Z != 1 {
		t.Errorf("expected light 0 straight up, got %v", d)
	}
	if d := cfg.Lights[1].Dir(); d.Y < 0.7 || d.Z < 0.7 {
		t.Errorf("expected light 1 at azimuth 90 elevation 45, got %v", d)
	}
	if cfg.Metrics.Listen != ":9100" {
		t.Errorf("expected metrics on :9100, got %s", cfg.Metrics.Listen)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("render:\n  width: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "size",
			args: []string{"-width", "800", "-height", "600"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Width != 800 || cfg.Render.Height != 600 {
					t.Errorf("expected 800x600, got %dx%d", cfg.Render.Width, cfg.Render.Height)
				}
			},
		},
		{
			name: "synchronous",
			args: []string{"-threads", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Threads != 0 {
					t.Errorf("expected 0 threads, got %d", cfg.Render.Threads)
				}
			},
		},
		{
			name: "unset threads keep default",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Threads != 8 {
					t.Errorf("expected default 8 threads, got %d", cfg.Render.Threads)
				}
			},
		},
		{
			name: "scene mode heightmap metrics",
			args: []string{"-scene", "linear", "-mode", "rays", "-heightmap", "h.png", "-metrics", ":9000"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Scene != "linear" || cfg.Render.Mode != "rays" {
					t.Errorf("unexpected scene/mode %s/%s", cfg.Render.Scene, cfg.Render.Mode)
				}
				if cfg.Terrain.Image != "h.png" {
					t.Errorf("expected image h.png, got %s", cfg.Terrain.Image)
				}
				if cfg.Metrics.Listen != ":9000" {
					t.Errorf("expected metrics :9000, got %s", cfg.Metrics.Listen)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			f := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			f.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
render:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-width", "1920"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// width from the flag, height from the file
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		is      error
	}{
		{"threads", func(c *Config) { c.Render.Threads = 6 }, "6 threads", renderer.ErrUnsupportedThreadCount},
		{"scene", func(c *Config) { c.Render.Scene = "bsp" }, "bsp", scene.ErrUnknownKind},
		{"mode", func(c *Config) { c.Render.Mode = "tiles" }, "tiles", renderer.ErrUnknownMode},
		{"split", func(c *Config) { c.Render.Split = "median" }, "median", nil},
		{"size", func(c *Config) { c.Render.Width = 0 }, "view size", nil},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }, "fov", nil},
		{"direction", func(c *Config) { c.Camera.Direction = [3]float32{} }, "zero direction", nil},
		{"scale", func(c *Config) { c.Terrain.Scale = 0 }, "scale", nil},
		{"procedural", func(c *Config) { c.Terrain.Width = 1 }, "below 2x2", nil},
		{"light", func(c *Config) { c.Lights[0].Direction = []float32{1, 2} }, "lights[0]", nil},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "loud", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %q is not %v", err, tt.is)
			}
		})
	}
}

func TestValidateImageSkipsProceduralSize(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Image = "map.png"
	cfg.Terrain.Width = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Scene = "quadtree"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Render.Scene != "quadtree" {
		t.Errorf("expected quadtree, got %s", loaded.Render.Scene)
	}
}

func TestSavePoseKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prayground.yaml")
	content := `
render:
  threads: 4
camera:
  fov: 60
  remember: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(&Flags{Config: path, Threads: 16})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %s, want %s", cfg.Path(), path)
	}

	pos := math.Vec3{X: 10, Y: 20, Z: 30}
	dir := math.Vec3{X: 0, Y: 1, Z: -0.5}
	if err := cfg.SavePose(pos, dir); err != nil {
		t.Fatalf("save pose: %v", err)
	}
	if cfg.Camera.Position != [3]float32{10, 20, 30} {
		t.Errorf("in-memory position = %v", cfg.Camera.Position)
	}

	stored := Default()
	if err := loadFromFile(stored, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Camera.Position != [3]float32{10, 20, 30} {
		t.Errorf("stored position = %v", stored.Camera.Position)
	}
	if stored.Camera.Direction != [3]float32{0, 1, -0.5} {
		t.Errorf("stored direction = %v", stored.Camera.Direction)
	}
	if stored.Render.Threads != 4 {
		t.Errorf("flag override leaked into file: threads = %d", stored.Render.Threads)
	}
	if stored.Camera.FOV != 60 || !stored.Camera.Remember {
		t.Errorf("file settings lost: fov %v remember %v", stored.Camera.FOV, stored.Camera.Remember)
	}
}

func TestSavePoseWithoutFile(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not redirected by XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	want := filepath.Join(ConfigDir(), "config.yaml")
	if cfg.Path() != want {
		t.Fatalf("Path() = %s, want %s", cfg.Path(), want)
	}

	if err := cfg.SavePose(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1}); err != nil {
		t.Fatalf("save pose: %v", err)
	}

	stored := Default()
	if err := loadFromFile(stored, want); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("stored position = %v", stored.Camera.Position)
	}
}
