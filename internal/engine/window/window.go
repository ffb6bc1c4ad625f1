// Package window handles the SDL2 window that displays rendered frames.
package window

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/prayground/internal/engine/framebuffer"
	"github.com/Faultbox/prayground/internal/engine/input"
	"github.com/Faultbox/prayground/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps an SDL2 window, its renderer and the streaming texture
// frames are uploaded to.
type Window struct {
	config Config
	log    *zap.Logger

	sdlWindow   *sdl.Window
	sdlRenderer *sdl.Renderer
	texture     *sdl.Texture
	texW, texH  int

	pixels []byte
}

// New creates the window.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.sdlRenderer, err = sdl.CreateRenderer(w.sdlWindow, -1, flags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.sdlRenderer != nil {
		_ = w.sdlRenderer.Destroy()
	}
	if w.sdlWindow != nil {
		_ = w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// ensureTexture recreates the streaming texture when the frame size
// changes.
func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.texW == width && w.texH == height {
		return nil
	}
	if w.texture != nil {
		_ = w.texture.Destroy()
		w.texture = nil
	}

	tex, err := w.sdlRenderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_RGB24),
		sdl.TEXTUREACCESS_STREAMING,
		int32(width),
		int32(height),
	)
	if err != nil {
		return fmt.Errorf("SDL_CreateTexture failed: %w", err)
	}

	w.texture = tex
	w.texW, w.texH = width, height
	w.log.Debug("texture resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Present uploads fb and shows it scaled to the window.
func (w *Window) Present(fb *framebuffer.Framebuffer) error {
	width, height := fb.Size()
	if err := w.ensureTexture(width, height); err != nil {
		return err
	}

	w.pixels = fb.RGB24(w.pixels)
	if err := w.texture.Update(nil, unsafe.Pointer(&w.pixels[0]), width*3); err != nil {
		return fmt.Errorf("SDL_UpdateTexture failed: %w", err)
	}

	if err := w.sdlRenderer.Clear(); err != nil {
		return err
	}
	if err := w.sdlRenderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("SDL_RenderCopy failed: %w", err)
	}
	w.sdlRenderer.Present()
	return nil
}

// PollEvents drains the SDL event queue into c.
func (w *Window) PollEvents(c *input.Controller) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			c.Handle(e)
		}
	}
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
