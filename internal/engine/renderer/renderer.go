// Package renderer drives frame rendering over a scene.
//
// A Renderer owns a fixed set of worker goroutines, each bound to one
// region of the viewport. Frames run in two phases separated by barriers:
// the calling goroutine publishes a Frame snapshot and releases the
// workers, then waits for all of them to finish. Camera moves and light
// rotations happen only in Update, between frames, while every worker is
// parked.
package renderer

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Faultbox/prayground/internal/engine/camera"
	"github.com/Faultbox/prayground/internal/engine/framebuffer"
	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/scene"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/internal/logger"
	"github.com/Faultbox/prayground/pkg/math"
)

const (
	// RayJitter is the horizontal jitter of slope columns, in pixels.
	RayJitter = 0.5

	// MaxFrameTime caps the time step applied by Update, in seconds.
	MaxFrameTime = 1.0
)

// ErrClosed is returned by RenderFrame after Close.
var ErrClosed = errors.New("renderer closed")

// Config holds renderer settings.
type Config struct {
	Threads int
	Mode    Mode
	Width   int
	Height  int

	// Seed feeds the per-worker jitter sources.
	Seed int64

	// Ground, when set, keeps the camera Clearance above the terrain.
	Ground    *terrain.Heightmap
	Clearance float32

	// Registerer receives the frame metrics. Nil disables registration.
	Registerer prometheus.Registerer
}

// Controls are the motion rates applied by Update, per second, plus the
// one-off rotations accumulated from mouse drags.
type Controls struct {
	Move       float32
	Yaw        float32
	Pitch      float32
	LightYaw   float32
	LightPitch float32

	Drag Drag
}

// Drag holds rotations in radians, applied without scaling by time.
type Drag struct {
	Yaw        float32
	Pitch      float32
	LightYaw   float32
	LightPitch float32
}

// Frame is the immutable per-frame state workers read.
type Frame struct {
	Seq    uint64
	Camera camera.Camera
	// Slopes holds one slope per image row, shared by all slope columns.
	Slopes []float32
}

// Renderer renders a scene into a framebuffer.
type Renderer struct {
	cfg     Config
	scene   scene.Scene
	cam     *camera.Camera
	fb      *framebuffer.Framebuffer
	log     *zap.Logger
	metrics *metrics

	lights int

	frame   Frame
	workers []*worker

	start *Barrier
	done  *Barrier
	quit  atomic.Bool
	wg    sync.WaitGroup
}

// New creates a renderer and starts its workers. Threads must be one of
// the partition table counts, or at most one for synchronous rendering.
func New(cfg Config, sc scene.Scene, cam *camera.Camera) (*Renderer, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("invalid viewport %dx%d", cfg.Width, cfg.Height)
	}

	regions, err := Partition(cfg.Width, cfg.Height, cfg.Threads)
	if err != nil {
		return nil, err
	}

	cam.Resize(cfg.Width, cfg.Height)

	r := &Renderer{
		cfg:     cfg,
		scene:   sc,
		cam:     cam,
		fb:      framebuffer.New(cfg.Width, cfg.Height),
		log:     logger.Named("renderer"),
		metrics: newMetrics(cfg.Registerer),
		frame:   Frame{Slopes: make([]float32, cfg.Height)},
	}

	for i, reg := range regions {
		r.workers = append(r.workers, newWorker(i, reg, cfg.Seed+int64(i)))
	}

	if cfg.Threads > 1 {
		r.start = NewBarrier(len(r.workers) + 1)
		r.done = NewBarrier(len(r.workers) + 1)
		r.wg.Add(len(r.workers))
		for _, w := range r.workers {
			go r.run(w)
		}
	}

	r.log.Info("renderer started",
		zap.Int("threads", cfg.Threads),
		zap.Int("regions", len(regions)),
		zap.Stringer("mode", cfg.Mode),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return r, nil
}

// run is the worker loop: wait for a frame, render, report.
func (r *Renderer) run(w *worker) {
	defer r.wg.Done()
	for {
		r.start.Wait()
		if r.quit.Load() {
			return
		}
		w.render(r.scene, &r.frame, r.cfg.Mode, r.fb)
		r.done.Wait()
	}
}

// AssignLight adds a light to the scene. Call it between frames.
func (r *Renderer) AssignLight(l lighting.Light) {
	r.scene.AssignLightSource(l)
	r.lights++
}

// Update advances the camera and light 0 by dt seconds of c and applies
// its drag. dt is capped at MaxFrameTime. Call it between frames.
func (r *Renderer) Update(dt float32, c Controls) {
	dt = min(dt, MaxFrameTime)

	if c.Move != 0 {
		r.cam.Move(c.Move * dt)
	}
	yaw := c.Yaw*dt + c.Drag.Yaw
	pitch := c.Pitch*dt + c.Drag.Pitch
	if yaw != 0 || pitch != 0 {
		r.cam.Rotate(yaw, pitch)
	}
	if r.cfg.Ground != nil {
		r.cam.ClampAboveTerrain(r.cfg.Ground, r.cfg.Clearance)
	}

	lyaw := c.LightYaw*dt + c.Drag.LightYaw
	lpitch := c.LightPitch*dt + c.Drag.LightPitch
	if r.lights > 0 && (lyaw != 0 || lpitch != 0) {
		r.scene.ModifyLightSource(0, lyaw, lpitch)
	}
}

// RenderFrame renders one frame and returns the framebuffer. The
// framebuffer is reused by the next call.
func (r *Renderer) RenderFrame() (*framebuffer.Framebuffer, error) {
	if r.quit.Load() {
		return nil, ErrClosed
	}

	begin := time.Now()

	r.frame.Seq++
	r.frame.Camera = *r.cam
	if r.cfg.Mode == ModeSlopeColumns {
		r.frame.Camera.Slopes(r.frame.Slopes)
	}

	if r.start == nil {
		r.workers[0].render(r.scene, &r.frame, r.cfg.Mode, r.fb)
	} else {
		r.start.Wait()
		r.done.Wait()
	}

	r.metrics.observeFrame(r.cfg.Mode, time.Since(begin).Seconds(), r.cfg.Width*r.cfg.Height)
	return r.fb, nil
}

// Camera returns the live camera. Mutate it only between frames.
func (r *Renderer) Camera() *camera.Camera {
	return r.cam
}

// Framebuffer returns the output buffer.
func (r *Renderer) Framebuffer() *framebuffer.Framebuffer {
	return r.fb
}

// Mode returns the trace mode.
func (r *Renderer) Mode() Mode {
	return r.cfg.Mode
}

// Close stops the workers and waits for them to exit. It is safe to call
// more than once.
func (r *Renderer) Close() {
	if r.quit.Swap(true) {
		return
	}
	if r.start != nil {
		r.start.Wait()
		r.wg.Wait()
	}
	r.log.Info("renderer stopped", zap.Uint64("frames", r.frame.Seq))
}

// worker renders one fixed region with its own scratch buffers.
type worker struct {
	id     int
	region Region
	rng    *rand.Rand

	dirs   []math.Vec3
	colors []lighting.Color
}

func newWorker(id int, reg Region, seed int64) *worker {
	return &worker{
		id:     id,
		region: reg,
		rng:    rand.New(rand.NewSource(seed)),
		dirs:   make([]math.Vec3, reg.Height()),
		colors: make([]lighting.Color, reg.Height()),
	}
}

func (w *worker) render(sc scene.Scene, f *Frame, mode Mode, fb *framebuffer.Framebuffer) {
	reg := w.region
	cam := &f.Camera

	switch mode {
	case ModeColumns:
		for x := reg.X0; x < reg.X1; x++ {
			h := cam.ColumnDirs(float32(x), reg.Y0, w.dirs)
			sc.TraceRayColumn(scene.NewRayColumn(cam.Pos, w.dirs, h.X, h.Y), w.colors)
			fb.SetColumn(x, reg.Y0, w.colors)
		}

	case ModeSlopeColumns:
		slopes := f.Slopes[reg.Y0:reg.Y1]
		for x := reg.X0; x < reg.X1; x++ {
			jx := float32(x) + (w.rng.Float32()-0.5)*RayJitter
			h := cam.ColumnHeading(jx)
			sc.TraceSlopeRayColumn(scene.NewSlopeRayColumn(cam.Pos, h.X, h.Y, slopes), w.colors)
			fb.SetColumn(x, reg.Y0, w.colors)
		}

	default:
		for y := reg.Y0; y < reg.Y1; y++ {
			for x := reg.X0; x < reg.X1; x++ {
				fb.Set(x, y, sc.TraceRay(cam.PixelRay(x, y)))
			}
		}
	}
}
