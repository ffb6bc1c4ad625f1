package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/prayground/internal/engine/renderer"
	"github.com/Faultbox/prayground/internal/engine/scene"
	"github.com/Faultbox/prayground/internal/logger"
)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	r := c.Render
	if r.Width < 1 || r.Height < 1 {
		errs = append(errs, fmt.Errorf("render: invalid view size %dx%d", r.Width, r.Height))
	}
	if r.Threads < 0 {
		errs = append(errs, fmt.Errorf("render: negative thread count %d", r.Threads))
	} else if !renderer.SupportedThreads(r.Threads) {
		errs = append(errs, fmt.Errorf("render: %d threads: %w", r.Threads, renderer.ErrUnsupportedThreadCount))
	}
	if _, err := scene.ParseKind(r.Scene); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := renderer.ParseMode(r.Mode); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := ParseSplit(r.Split); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if r.ShadowBias < 0 {
		errs = append(errs, fmt.Errorf("render: negative shadow bias %g", r.ShadowBias))
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %g outside (0, 180)", c.Camera.FOV))
	}
	if Vec(c.Camera.Direction).Length() == 0 {
		errs = append(errs, errors.New("camera: zero direction"))
	}

	t := c.Terrain
	if t.Scale <= 0 {
		errs = append(errs, fmt.Errorf("terrain: scale must be positive, got %g", t.Scale))
	}
	if t.Image == "" && (t.Width < 2 || t.Height < 2) {
		errs = append(errs, fmt.Errorf("terrain: procedural size %dx%d below 2x2", t.Width, t.Height))
	}

	for i, l := range c.Lights {
		if len(l.Direction) != 0 && len(l.Direction) != 3 {
			errs = append(errs, fmt.Errorf("lights[%d]: direction needs 3 components", i))
		}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

// ParseSplit maps a split name to the kd-tree strategy.
func ParseSplit(s string) (scene.SplitStrategy, error) {
	switch s {
	case "", "even":
		return scene.SplitEven, nil
	case "sah":
		return scene.SplitSAH, nil
	}
	return scene.SplitEven, fmt.Errorf("unknown split strategy %q", s)
}
