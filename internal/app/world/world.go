// Package world assembles the traced world from configuration: heightmap,
// scene, lights, camera and renderer.
package world

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Faultbox/prayground/internal/config"
	"github.com/Faultbox/prayground/internal/engine/camera"
	"github.com/Faultbox/prayground/internal/engine/input"
	"github.com/Faultbox/prayground/internal/engine/renderer"
	"github.com/Faultbox/prayground/internal/engine/scene"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/internal/logger"
)

// World is a loaded heightmap together with everything needed to render it.
type World struct {
	Heightmap *terrain.Heightmap
	Scene     scene.Scene
	Camera    *camera.Camera
	Renderer  *renderer.Renderer
}

// Build loads the terrain and starts a renderer over it. reg receives the
// renderer metrics and may be nil.
func Build(cfg *config.Config, reg prometheus.Registerer) (*World, error) {
	log := logger.Named("world")

	hm, err := LoadHeightmap(cfg.Terrain)
	if err != nil {
		return nil, err
	}
	lo, hi := hm.MinMax()
	log.Info("heightmap ready",
		zap.Int("width", hm.Width()),
		zap.Int("height", hm.Height()),
		zap.Float32("min", lo),
		zap.Float32("max", hi),
	)

	sc, err := NewScene(cfg.Render, hm)
	if err != nil {
		return nil, err
	}
	st := sc.Stats()
	log.Info("scene built",
		zap.String("kind", cfg.Render.Scene),
		zap.Int("cells", st.Cells),
		zap.Int("nodes", st.Nodes),
		zap.Int("depth", st.Depth),
	)

	mode, err := renderer.ParseMode(cfg.Render.Mode)
	if err != nil {
		return nil, err
	}

	cam := camera.New(
		config.Vec(cfg.Camera.Position),
		config.Vec(cfg.Camera.Direction),
		cfg.Camera.FOV,
		cfg.Render.Width,
		cfg.Render.Height,
	)

	rcfg := renderer.Config{
		Threads:    cfg.Render.Threads,
		Mode:       mode,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Seed:       cfg.Render.Seed,
		Registerer: reg,
	}
	if cfg.Camera.Clearance > 0 {
		rcfg.Ground = hm
		rcfg.Clearance = cfg.Camera.Clearance
		cam.ClampAboveTerrain(hm, cfg.Camera.Clearance)
	}

	r, err := renderer.New(rcfg, sc, cam)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	for _, l := range cfg.Lights {
		r.AssignLight(l.Light())
	}

	return &World{
		Heightmap: hm,
		Scene:     sc,
		Camera:    cam,
		Renderer:  r,
	}, nil
}

// LoadHeightmap reads the configured image or generates a procedural
// heightmap when no image is set.
func LoadHeightmap(cfg config.TerrainConfig) (*terrain.Heightmap, error) {
	if cfg.Image != "" {
		hm, err := terrain.Load(cfg.Image, cfg.Scale)
		if err != nil {
			return nil, fmt.Errorf("loading heightmap: %w", err)
		}
		return hm, nil
	}
	return terrain.Procedural(cfg.Width, cfg.Height, cfg.Seed, cfg.Amplitude), nil
}

// NewScene creates the configured scene variant and assigns hm to it.
func NewScene(cfg config.RenderConfig, hm *terrain.Heightmap) (scene.Scene, error) {
	kind, err := scene.ParseKind(cfg.Scene)
	if err != nil {
		return nil, err
	}
	split, err := config.ParseSplit(cfg.Split)
	if err != nil {
		return nil, err
	}

	sc, err := scene.New(kind, scene.Options{
		ShadowBias: cfg.ShadowBias,
		Split:      split,
	})
	if err != nil {
		return nil, err
	}
	sc.AssignHeightmap(hm)
	return sc, nil
}

// Controls converts the input state of one frame into renderer controls.
func Controls(st input.State) renderer.Controls {
	return renderer.Controls{
		Move:       st.Move,
		Yaw:        st.Yaw,
		Pitch:      st.Pitch,
		LightYaw:   st.LightYaw,
		LightPitch: st.LightPitch,
		Drag: renderer.Drag{
			Yaw:        st.DragYaw,
			Pitch:      st.DragPitch,
			LightYaw:   st.DragLightYaw,
			LightPitch: st.DragLightPitch,
		},
	}
}

// Close stops the renderer workers.
func (w *World) Close() {
	if w.Renderer != nil {
		w.Renderer.Close()
	}
}
