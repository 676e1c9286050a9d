// teapot - software 3D rasterizer demo
// Renders a model on the CPU and shows it in a window, in the terminal, or
// as PNG files.
//
// Controls:
//
//	W/A/S/D     - Move (fly camera in the teapot scene, player in the game)
//	Mouse       - Look around / orbit the chase camera
//	Tab         - Toggle wireframe (teapot scene)
//	Space       - Spin the model
//	R           - Reset view
//	Q/E         - Switch to the teapot / game scene
//	F           - Toggle FPS overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/teapot/pkg/app"
	"github.com/taigrr/teapot/pkg/config"
	"github.com/taigrr/teapot/pkg/models"
	"github.com/taigrr/teapot/pkg/platform"
	"github.com/taigrr/teapot/pkg/platform/window"
	"github.com/taigrr/teapot/pkg/render"
	"github.com/taigrr/teapot/pkg/scene"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	display    = flag.String("display", "window", "Output: window, terminal or png")
	sceneName  = flag.String("scene", "teapot", "Start scene: teapot or game")
	modelPath  = flag.String("model", "", "Model file (.obj, .glb, .gltf)")
	pakPath    = flag.String("pak", "", "Pak archive to load the model from")
	assetName  = flag.String("asset", "", "OBJ asset name inside -pak")
	width      = flag.Int("width", 1280, "Framebuffer width (window and png)")
	height     = flag.Int("height", 720, "Framebuffer height (window and png)")
	frames     = flag.Int("frames", 1, "Frames to render with -display png")
	outPath    = flag.String("out", "frame.png", "PNG output path; a %d verb numbers each frame")
	wireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "0,0,0", "Background color (R,G,B or #RRGGBB)")
	verbose    = flag.Bool("v", false, "Debug logging")
	dumpConfig = flag.String("dump-config", "", "Write the effective config as YAML to this path and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "teapot - software 3D rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: teapot [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  Mouse       - Look around\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  Space       - Spin the model\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Teapot / game scene\n")
		fmt.Fprintf(os.Stderr, "  F           - Toggle FPS overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads -config, if given, and applies the flags that were set
// explicitly on top of it.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "display":
			cfg.Window.Display = *display
		case "scene":
			cfg.Scene.Start = *sceneName
		case "model":
			cfg.Assets.Model = *modelPath
		case "pak":
			cfg.Assets.Pak = *pakPath
		case "asset":
			cfg.Assets.Asset = *assetName
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "wireframe":
			cfg.Render.Wireframe = *wireframe
		case "fps":
			cfg.Window.FPS = *targetFPS
		case "bg":
			cfg.Render.Clear = *bgColor
		}
	})
	if flag.NArg() > 0 {
		cfg.Assets.Model = flag.Arg(0)
	}
	return cfg, cfg.Validate()
}

func loadMesh(cfg config.Config) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	switch {
	case cfg.Assets.Model != "":
		mesh, err = models.LoadModel(cfg.Assets.Model)
	case cfg.Assets.Pak != "":
		if cfg.Assets.Asset == "" {
			return nil, fmt.Errorf("-pak needs -asset")
		}
		mesh, err = models.LoadModelFromPak(cfg.Assets.Pak, cfg.Assets.Asset)
	default:
		slog.Info("no model given, using a cube")
		mesh = models.NewCube("cube", 2)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	mesh.Normalize(cfg.Assets.NormalizeSize)
	slog.Info("loaded", "model", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return mesh, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *dumpConfig != "" {
		if err := config.Write(*dumpConfig, cfg); err != nil {
			return err
		}
		slog.Info("wrote config", "path", *dumpConfig)
		return nil
	}

	mesh, err := loadMesh(cfg)
	if err != nil {
		return err
	}

	tuning, err := cfg.Tuning()
	if err != nil {
		return err
	}
	kind, err := scene.ParseKind(cfg.Scene.Start)
	if err != nil {
		return err
	}
	winding, err := render.ParseWinding(cfg.Render.Winding)
	if err != nil {
		return err
	}
	bg, err := render.ParseColor(cfg.Render.Clear)
	if err != nil {
		return err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	if cfg.Window.Display == "terminal" {
		// Resized to the terminal once it starts.
		w, h = render.FramebufferSize(80, 24)
	}

	a, err := app.New(mesh, app.Options{
		Width:   w,
		Height:  h,
		Scene:   kind,
		Winding: winding,
		Clear:   bg,
		ShowFPS: cfg.ShowFPS(),
		SceneOptions: scene.Options{
			Tuning:     tuning,
			Wireframe:  cfg.Render.Wireframe,
			FPS:        cfg.Window.FPS,
			ShowGround: cfg.Scene.ShowGround,
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Window.Display {
	case "window":
		return window.New(a, w, h, cfg.Window.Title, cfg.Window.FPS, cfg.Window.Scale).Run()
	case "terminal":
		return platform.RunTerminal(ctx, a, cfg.Window.FPS)
	case "png":
		out := &render.PNGDisplay{Path: *outPath}
		a.SetDisplay(out)
		err := platform.RunHeadless(ctx, a, max(*frames, 1), 1/float64(cfg.Window.FPS))
		slog.Info("wrote frames", "count", out.Frames(), "path", *outPath)
		return err
	}
	return fmt.Errorf("unknown display %q (use window, terminal or png)", cfg.Window.Display)
}
