package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"desk-portfolio/internal/app"
	"desk-portfolio/internal/assets"
	"desk-portfolio/internal/capture"
	"desk-portfolio/internal/commands"
	"desk-portfolio/internal/config"
	"desk-portfolio/internal/debug"
	"desk-portfolio/internal/env"
	"desk-portfolio/internal/fonts"
	"desk-portfolio/internal/graphics"
	"desk-portfolio/internal/logger"
	"desk-portfolio/internal/overlay"
	"desk-portfolio/internal/scene"
	"desk-portfolio/internal/terminal"
	"desk-portfolio/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// maxShotWidth caps saved screenshots; fullscreen captures on large monitors are scaled down.
const maxShotWidth = 1920

func main() {
	if _, err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	log := logger.New(logger.FilePath)

	cfg, err := config.Load(config.Path)
	if err != nil {
		log.Log(err.Error())
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	manifest, err := assets.LoadManifest(cfg.Assets.Manifest)
	if err != nil {
		log.Log(err.Error())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	content, err := ui.LoadContent(cfg.UI.Content)
	if err != nil {
		log.Log(err.Error())
		content = ui.DefaultContent()
	}

	scn := scene.New(manifest, overlay.Anchor{
		Position: cfg.Anchor.Position,
		Rotation: cfg.Anchor.Rotation,
		Width:    cfg.Anchor.Width,
		Height:   cfg.Anchor.Height,
	}, cfg.Anchor.Color)

	var ctx *app.Context
	engine := ui.New()
	page := ui.NewPage(engine, content, func() { ctx.Back() }, scn.SetAnchorVisible)
	ctx = app.New(cfg, page, log, time.Now())

	bg, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := assets.NewCounter(len(manifest.Models), ctx.AssetsReady)
	counter.OnProgress = ctx.Progress
	loader := assets.NewLoader(cfg.Assets.Base, cfg.Assets.CacheDir, counter, log)
	loader.Start(bg, manifest.Models)

	fontCh := make(chan string, 1)
	go func() {
		p, err := fonts.Resolve(bg, fonts.Dir, cfg.UI.Font)
		if err != nil {
			log.Log(err.Error())
			return
		}
		fontCh <- p
	}()

	carpetCh := make(chan image.Image, 1)
	go func() {
		img, err := loadCarpet(bg, loader, manifest.Carpet, manifest.Lights.Point.Position)
		if err != nil {
			log.Log(err.Error())
			return
		}
		carpetCh <- img
	}()

	dbg := debug.New()
	dbg.SetShowFPS(cfg.ShowFPS)
	dbg.Status = func() string {
		snap := ctx.Pan.Snapshot()
		return fmt.Sprintf("%s %.2f", snap.State, snap.Progress)
	}

	var pendingShot string
	reg := commands.NewRegistry()
	commands.RegisterPortfolio(reg, &console{ctx: ctx, dbg: dbg, cfg: &cfg, shot: &pendingShot}, log.Log)
	term := terminal.New(log, reg)

	inspector := ui.NewInspector()
	inspectorUI := ui.New()

	var dragging bool
	loop := graphics.Loop{
		Setup: func() {
			if err := engine.LoadCSS(cfg.UI.Stylesheet); err != nil {
				log.Log(err.Error())
			}
			inspectorUI.SetStylesheet(engine.Stylesheet())
			if err := page.LoadCursors(cfg.UI.Cursor, cfg.UI.CursorHover); err != nil {
				log.Log(err.Error())
			}
			page.ApplyTheme()
		},
		Update: func() {
			term.Update()

			select {
			case p := <-fontCh:
				if err := engine.LoadFont(p, cfg.UI.FontSize); err != nil {
					log.Log(err.Error())
					break
				}
				page.ApplyTheme()
				term.SetFont(engine.Font())
				dbg.SetFont(engine.Font())
			case img := <-carpetCh:
				scn.SetCarpet(img)
			default:
			}

			loader.Drain(func(p assets.Placement) error {
				target, err := scn.Upload(p)
				if err != nil {
					return err
				}
				if target != nil {
					ctx.SetTarget(target)
				}
				return nil
			})

			if !term.IsOpen() {
				m := rl.GetMousePosition()
				ctx.PointerMoved(m.X, m.Y)
				onPage := page.Captures(m.X, m.Y)
				if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
					dragging = !onPage
					if !onPage {
						ctx.Click()
					}
				}
				if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
					dragging = false
				}
				if dragging {
					d := rl.GetMouseDelta()
					ctx.Drag(d.X, d.Y)
				}
				if wheel := rl.GetMouseWheelMove(); wheel != 0 {
					if onPage {
						page.Scroll(wheel)
					} else {
						ctx.Wheel(wheel)
					}
				}
			}

			ctx.Tick(time.Now())
			scn.Sync(ctx.Pose, ctx.Lens)
		},
		Resize: ctx.Resize,
		Scene:  scn.Draw,
		Overlay: func() {
			page.Draw()
			if pendingShot != "" {
				saveScreen(pendingShot, log)
				pendingShot = ""
			}
			snap := ctx.Pan.Snapshot()
			inspectorUI.SetNodes(inspector.AppendNodes(nil, term.IsOpen(), ui.Selection{
				State:         snap.State.String(),
				Progress:      snap.Progress,
				Position:      [3]float32(ctx.Pose.Position),
				Look:          [3]float32(ctx.Pose.Look),
				Hover:         ctx.Hover(),
				RevealPending: snap.RevealPending,
			}))
			inspectorUI.Draw()
			term.Draw()
			dbg.Draw()
			page.DrawCursor()
		},
		Teardown: func() {
			cancel()
			page.Unload()
			engine.Unload()
			scn.Unload()
		},
	}

	graphics.Run(graphics.Options{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Fullscreen:  cfg.Window.Fullscreen,
		TargetFPS:   cfg.Window.TargetFPS,
		PixelFactor: cfg.Window.PixelFactor,
		Bloom: graphics.Bloom{
			Strength:  cfg.Bloom.Strength,
			Radius:    cfg.Bloom.Radius,
			Threshold: cfg.Bloom.Threshold,
		},
	}, loop)
}

// loadCarpet resolves the carpet textures through the loader, so a remote asset base
// works for them too, and bakes the relief and occlusion into the albedo.
func loadCarpet(ctx context.Context, loader *assets.Loader, c assets.Carpet, light mgl32.Vec3) (image.Image, error) {
	if c.BaseColor == "" {
		return nil, fmt.Errorf("assets: carpet has no base_color texture")
	}
	for _, p := range []*string{&c.BaseColor, &c.Normal, &c.ORM} {
		if *p == "" {
			continue
		}
		local, err := loader.Resolve(ctx, *p)
		if err != nil {
			return nil, err
		}
		*p = local
	}
	return assets.LoadCarpet(c, light)
}

// saveScreen grabs the frame drawn so far and encodes it off the render thread.
func saveScreen(path string, log *logger.Logger) {
	shot := rl.LoadImageFromScreen()
	img := shot.ToImage()
	rl.UnloadImage(shot)
	go func() {
		if err := capture.Save(capture.Fit(img, maxShotWidth), path); err != nil {
			log.Log(err.Error())
			return
		}
		log.Log("saved " + path)
	}()
}
