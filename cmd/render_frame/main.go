// Package main renders particle field frames without a window.
//
// It mounts a field lifecycle on a software canvas, advances a fixed number
// of frames with a stepped clock, and writes the last frame as a PNG.
//
// Usage:
//
//	go run ./cmd/render_frame [flags]
//
// Flags:
//
//	--preset <id>     Preset to render (default hero)
//	--width <px>      Canvas width (default 1200)
//	--height <px>     Canvas height (default 800)
//	--frames <n>      Frames to advance before capturing (default 120)
//	--fps <n>         Frames per second of the stepped clock (default 60)
//	--mobile          Render with the mobile layout rules
//	--landscape       Mobile landscape
//	--config <path>   Field config (default data/field.yaml, built-in defaults if missing)
//	--seed <n>        Random seed (default 1)
//	--out <file>      Output PNG (default frame.png)
//	--verbose         Enable verbose logging
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/presets"
	"github.com/gonewx/dotfield/pkg/systems"
	"github.com/gonewx/dotfield/pkg/types"
)

var (
	presetFlag    = flag.String("preset", string(types.PresetHero), "Preset to render")
	widthFlag     = flag.Int("width", config.ViewerWindowWidth, "Canvas width")
	heightFlag    = flag.Int("height", config.ViewerWindowHeight, "Canvas height")
	framesFlag    = flag.Int("frames", 120, "Frames to advance before capturing")
	fpsFlag       = flag.Int("fps", 60, "Frames per second of the stepped clock")
	mobileFlag    = flag.Bool("mobile", false, "Use mobile layout rules")
	landscapeFlag = flag.Bool("landscape", false, "Mobile landscape")
	configFlag    = flag.String("config", config.DefaultFieldConfigPath, "Field config path")
	seedFlag      = flag.Int64("seed", 1, "Random seed")
	outFlag       = flag.String("out", "frame.png", "Output PNG")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// steppedClock advances by a fixed step each frame.
type steppedClock struct {
	now time.Duration
}

func (c *steppedClock) Now() time.Duration { return c.now }

// softwareCanvas is a fixed-size canvas backed by the software rasterizer.
type softwareCanvas struct {
	width, height int
	background    string
	surface       *systems.SoftwareSurface
}

func (c *softwareCanvas) ContainerRect() (components.Rect, bool) {
	return components.Rect{W: float64(c.width), H: float64(c.height)}, c.width > 0 && c.height > 0
}

func (c *softwareCanvas) Resize(width, height int) {
	if c.surface != nil {
		if w, h := c.surface.Size(); w == width && h == height {
			return
		}
	}
	c.surface = systems.NewSoftwareSurface(width, height, c.background)
}

func (c *softwareCanvas) Surface() systems.Surface {
	if c.surface == nil {
		return nil
	}
	return c.surface
}

func loadConfig(path string) (*config.FieldConfig, error) {
	cfg, err := config.LoadFieldConfig(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[render_frame] %s not found, using built-in defaults", path)
		return config.DefaultFieldConfig(), nil
	}
	return nil, err
}

func run() error {
	preset := types.PresetID(*presetFlag)
	if !preset.IsKnown() {
		return fmt.Errorf("unknown preset %q", preset)
	}
	if *fpsFlag <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *fpsFlag)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	clock := &steppedClock{}
	queue := systems.NewFrameQueue()
	canvas := &softwareCanvas{width: *widthFlag, height: *heightFlag, background: cfg.Render.Background}

	life := systems.NewFieldLifecycle(cfg, systems.LifecycleDeps{
		Registry:  presets.DefaultRegistry(cfg, *seedFlag),
		Scheduler: queue,
		Clock:     clock,
		Seed:      *seedFlag,
	}, systems.FieldProps{Preset: preset, IsMobile: *mobileFlag, IsLandscape: *landscapeFlag})

	life.Mount(canvas)
	defer life.Unmount()
	if canvas.surface == nil {
		return fmt.Errorf("canvas has no geometry (%dx%d)", *widthFlag, *heightFlag)
	}

	step := time.Second / time.Duration(*fpsFlag)
	for i := 0; i < *framesFlag; i++ {
		clock.now += step
		queue.Tick(clock.now)
	}

	stats := life.Renderer().LastStats()
	log.Printf("[render_frame] %s: %d frames, drawn=%d skipped=%d batches=%d", preset, life.Frames(), stats.Drawn, stats.Skipped, stats.Batches)

	return writePNG(*outFlag, canvas.surface.Image())
}

// writePNG 编码并写入文件；关闭失败同样视为写入失败
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("render_frame: %v", err)
	}
	fmt.Printf("wrote %s\n", *outFlag)
}
