// Command glhdemo renders a spinning, pulsing textured quad. It is the
// round-trip exercise for every handle type in glh: five lines of
// shader plumbing, one texture, one mesh, per-frame uniform updates.
package main

import (
	"flag"
	"image/color"
	"log"
	"log/slog"
	"os"

	_ "embed"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glh"
	"github.com/gogpu/glh/mesh"
	"github.com/gogpu/glh/texture"
	"github.com/gogpu/glh/window"
)

//go:embed quad.vert
var quadVert string

//go:embed quad.frag
var quadFrag string

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		width      = flag.Int("width", 0, "window width (overrides config)")
		height     = flag.Int("height", 0, "window height (overrides config)")
		title      = flag.String("title", "", "window title (overrides config)")
		texPath    = flag.String("texture", "", "texture image file (overrides config)")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		glh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := loadConfig(*configPath, demoConfig{
		Width:   *width,
		Height:  *height,
		Title:   *title,
		Texture: *texPath,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg demoConfig) error {
	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()

	wcfg := window.DefaultConfig()
	wcfg.Width = cfg.Width
	wcfg.Height = cfg.Height
	wcfg.Title = cfg.Title
	win, err := window.New(wcfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	// Deferred teardown runs newest-first, so every GL resource is
	// released before the window and its context go away.
	vs, err := glh.NewVertexShader(quadVert)
	if err != nil {
		return err
	}
	defer vs.Delete()

	fs, err := glh.NewFragmentShader(quadFrag)
	if err != nil {
		return err
	}
	defer fs.Delete()

	program, err := glh.NewProgram(vs, fs)
	if err != nil {
		return err
	}
	defer program.Delete()

	tex, err := loadTexture(cfg.Texture)
	if err != nil {
		return err
	}
	defer tex.Delete()

	quad, err := mesh.Quad()
	if err != nil {
		return err
	}
	defer quad.Delete()

	program.Use()
	tex.Bind(0)
	if err := program.SetInt("tex", 0); err != nil {
		return err
	}

	win.SetClearColor(0.2, 0.3, 0.3, 1.0)
	return win.Run(func() error {
		t := float32(win.Time())
		if err := program.SetMat4("transform", mgl32.HomogRotate3DZ(t)); err != nil {
			return err
		}
		if err := program.SetFloat("level", 0.75+0.25*math32.Sin(2*t)); err != nil {
			return err
		}
		quad.Draw()
		return nil
	})
}

// loadTexture opens the configured image, or falls back to a
// procedural checkerboard when none is configured.
func loadTexture(path string) (*texture.Texture, error) {
	if path == "" {
		img := texture.Checkerboard(256, 256, 32,
			color.RGBA{R: 240, G: 240, B: 240, A: 255},
			color.RGBA{R: 40, G: 40, B: 60, A: 255})
		return texture.FromImage(img, texture.DefaultConfig())
	}
	return texture.Load(path, texture.DefaultConfig())
}
