// Package app implements the interactive viewer loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Faultbox/prayground/internal/app/world"
	"github.com/Faultbox/prayground/internal/config"
	"github.com/Faultbox/prayground/internal/engine/framebuffer"
	"github.com/Faultbox/prayground/internal/engine/input"
	"github.com/Faultbox/prayground/internal/engine/renderer"
	"github.com/Faultbox/prayground/internal/engine/window"
	"github.com/Faultbox/prayground/internal/logger"
)

// Title is the window title prefix.
const Title = "prayground"

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	world   *world.World
	window  *window.Window
	input   *input.Controller
	shots   *framebuffer.Screenshots
	metrics *metricsServer
}

// New builds the world and opens the window.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.Int("threads", cfg.Render.Threads),
		zap.String("scene", cfg.Render.Scene),
		zap.String("mode", cfg.Render.Mode),
	)

	var reg prometheus.Registerer
	if cfg.Metrics.Listen != "" {
		reg = prometheus.DefaultRegisterer
	}

	var err error
	a.world, err = world.Build(cfg, reg)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:  Title,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		VSync:  cfg.Render.VSync,
	})
	if err != nil {
		a.world.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.input = input.NewController(input.Speeds{
		Move:        cfg.Camera.MoveSpeed,
		Rotate:      cfg.Camera.RotateSpeed,
		Light:       cfg.Camera.LightSpeed,
		MouseRadian: cfg.Camera.MouseSensitivity,
	})
	a.shots = framebuffer.NewScreenshots(cfg.Render.ScreenshotDir, Title)

	if cfg.Metrics.Listen != "" {
		a.metrics = serveMetrics(cfg.Metrics.Listen, a.log)
	}

	a.log.Info("viewer initialized")
	return a, nil
}

// Run renders frames until the user quits.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting render loop")

	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		a.window.PollEvents(a.input)
		st := a.input.Take()
		if st.Quit {
			return nil
		}
		if st.Resized {
			a.log.Debug("window resized",
				zap.Int("width", st.Width),
				zap.Int("height", st.Height),
			)
		}

		a.world.Renderer.Update(dt, world.Controls(st))

		fb, err := a.world.Renderer.RenderFrame()
		if errors.Is(err, renderer.ErrClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if err := a.window.Present(fb); err != nil {
			return fmt.Errorf("present error: %w", err)
		}

		if st.Screenshot {
			a.screenshot(fb)
		}

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			a.window.SetTitle(fmt.Sprintf("%s - %.1f fps", Title, fps))
			cam := a.world.Camera
			a.log.Debug("fps",
				zap.Float64("fps", fps),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float32("x", cam.Pos.X),
				zap.Float32("y", cam.Pos.Y),
				zap.Float32("z", cam.Pos.Z),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) screenshot(fb *framebuffer.Framebuffer) {
	path, err := a.shots.Capture(fb)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) savePose() {
	cam := a.world.Camera
	if err := a.cfg.SavePose(cam.Pos, cam.Dir); err != nil {
		a.log.Warn("saving camera pose failed", zap.Error(err))
		return
	}
	a.log.Info("camera pose saved", zap.String("path", a.cfg.Path()))
}

// Close releases the viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.metrics != nil {
		a.metrics.close()
	}
	if a.world != nil {
		if a.cfg.Camera.Remember {
			a.savePose()
		}
		a.world.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
