// Command holy-portfolio renders the floating "Developer / Designer" scene:
// extruded matcap text among scattered cubes, with a camera that eases
// after the cursor and a panel for the background color and matcap.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/config"
	"github.com/toxichemicals/GO/holy-portfolio/core"
	"github.com/toxichemicals/GO/holy-portfolio/field"
	"github.com/toxichemicals/GO/holy-portfolio/interaction"
	"github.com/toxichemicals/GO/holy-portfolio/logging"
	"github.com/toxichemicals/GO/holy-portfolio/loop"
	"github.com/toxichemicals/GO/holy-portfolio/panel"
	"github.com/toxichemicals/GO/holy-portfolio/scene"
	"github.com/toxichemicals/GO/holy-portfolio/tween"
)

func init() {
	// GLFW must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logging.Logger().Error("portfolio failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		// The configured logger is not installed yet.
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		return err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := logging.Logger()

	coreLib := core.NewCore(core.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	if err := coreLib.Init(); err != nil {
		return err
	}
	defer coreLib.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := assets.NewCatalog(cfg.Assets.TextureDir)
	catalog.Start(ctx)
	go func() {
		if err := catalog.Wait(); err != nil {
			log.Warn("some matcaps are unavailable, using fallback shading", "err", err)
			return
		}
		log.Info("matcaps decoded", "count", len(catalog.Names()))
	}()
	fonts := assets.LoadFont(ctx, cfg.Assets.FontPath)

	width, height := coreLib.Size()
	camera := scene.NewCamera(float32(width) / float32(height))
	composer := scene.NewComposer(catalog, camera,
		scene.WithBackground(cfg.Scene.Background),
		scene.WithTexture(cfg.Scene.Texture),
	)
	runner := tween.NewRunner()
	controller := interaction.NewController(camera, runner)

	coreLib.SetCamera(camera)
	coreLib.SetHandlers(core.Handlers{
		PointerMove: controller.PointerMove,
		Resize: func(width, height int, ratio float32) {
			log.Debug("window resized", "width", width, "height", height, "pixel_ratio", ratio)
		},
		Export: func() {
			if err := scene.ExportGLB(composer.Scene(), cfg.Export.Path); err != nil {
				log.Warn("export failed", "err", err)
			}
		},
	})

	// The font gates population, and population gates the panel.
	onFont := func(res assets.FontResult) {
		if res.Err != nil {
			log.Warn("continuing without text and cubes", "err", res.Err)
			return
		}
		if err := composer.Populate(res.Font, field.GlobalSource()); err != nil {
			log.Warn("scene population failed", "err", err)
			return
		}
		coreLib.SetPanel(panel.New(panel.Options{
			Background: composer.BackgroundStyle(),
			Textures:   catalog.Names(),
			Selected:   composer.ActiveTexture(),
			OnColor: func(style string) {
				if err := composer.SetBackgroundColor(style); err != nil {
					log.Warn("background not applied", "err", err)
				}
			},
			OnTexture: func(name string) {
				if err := composer.SetActiveTexture(name); err != nil {
					log.Warn("texture not applied", "err", err)
				}
			},
		}))
	}

	l := &loop.Loop{
		Scene: composer.Scene(),
		Timer: &loop.Timer{},
		Hooks: []loop.Hook{
			func(float64) {
				if fonts == nil {
					return
				}
				select {
				case res, ok := <-fonts:
					fonts = nil
					if ok {
						onFont(res)
					}
				default:
				}
			},
			func(delta float64) { runner.Update(float32(delta)) },
		},
	}

	log.Info("portfolio initialized, starting main loop",
		"width", width, "height", height, "texture", composer.ActiveTexture(), "background", composer.BackgroundStyle())
	l.Run(coreLib)
	log.Info("portfolio shutting down")
	return nil
}
