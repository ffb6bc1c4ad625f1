package config

import (
	"flag"
	"os"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config    string
	Debug     bool
	Width     int
	Height    int
	Threads   int
	Scene     string
	Mode      string
	Heightmap string
	Metrics   string
}

// BindFlags registers the overrides on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Viewport width")
	fs.IntVar(&f.Height, "height", 0, "Viewport height")
	fs.IntVar(&f.Threads, "threads", -1, "Render threads (0 or 1 renders synchronously)")
	fs.StringVar(&f.Scene, "scene", "", "Scene structure: linear, quadtree, kdtree")
	fs.StringVar(&f.Mode, "mode", "", "Trace mode: rays, columns, slope_columns")
	fs.StringVar(&f.Heightmap, "heightmap", "", "Heightmap image (PNG, JPEG, GIF, BMP, TIFF)")
	fs.StringVar(&f.Metrics, "metrics", "", "Serve Prometheus metrics on this address")
	return f
}

// ParseFlags parses the process arguments. Call this early in main().
func ParseFlags() (*Flags, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Render.Height = f.Height
	}
	if f.Threads >= 0 {
		cfg.Render.Threads = f.Threads
	}
	if f.Scene != "" {
		cfg.Render.Scene = f.Scene
	}
	if f.Mode != "" {
		cfg.Render.Mode = f.Mode
	}
	if f.Heightmap != "" {
		cfg.Terrain.Image = f.Heightmap
	}
	if f.Metrics != "" {
		cfg.Metrics.Listen = f.Metrics
	}
}
