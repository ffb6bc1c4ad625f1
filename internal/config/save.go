package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/prayground/pkg/math"
)

// Path returns the file the config was loaded from, or config.yaml in
// ConfigDir when it came from defaults only.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SavePose records the camera pose and stores it in the file at Path.
// The rest of that file is kept as it is, so flag overrides are not
// written back.
func (c *Config) SavePose(pos, dir math.Vec3) error {
	c.Camera.Position = [3]float32{pos.X, pos.Y, pos.Z}
	c.Camera.Direction = [3]float32{dir.X, dir.Y, dir.Z}

	path := c.Path()
	stored := Default()
	if err := loadFromFile(stored, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	stored.Camera.Position = c.Camera.Position
	stored.Camera.Direction = c.Camera.Direction
	return stored.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
