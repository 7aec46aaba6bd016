package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Bloom tunes the composite pass: pixels brighter than Threshold glow with Strength,
// spread over Radius (a fraction of the low-res target's height).
type Bloom struct {
	Strength  float32
	Radius    float32
	Threshold float32
}

// Options configures the window and the pixelated render target.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
	// PixelFactor divides the window size to get the 3D render size.
	PixelFactor int
	Bloom       Bloom
}

// Loop is what the render loop calls each frame, in this order: Update, then Scene into the
// low-res target, then Overlay on the full-res screen. Setup runs once after the window
// exists, Resize whenever the window size changes, and Teardown before it closes.
type Loop struct {
	Setup    func()
	Update   func()
	Resize   func(width, height int)
	Scene    func(width, height int32)
	Overlay  func()
	Teardown func()
}

// Run opens the window and drives one frame per display refresh until it is closed.
// There is no catch-up: a slow frame simply delays the next one.
func Run(opts Options, loop Loop) {
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), opts.Title)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle the console, not to quit; close via window button
	fps := opts.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	if loop.Setup != nil {
		loop.Setup()
	}
	if loop.Teardown != nil {
		defer loop.Teardown()
	}

	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	target := newPixelTarget(w, h, opts.PixelFactor)
	defer target.unload()
	bloom := newBloomPass(opts.Bloom)
	defer bloom.unload()
	if loop.Resize != nil {
		loop.Resize(w, h)
	}

	for !rl.WindowShouldClose() {
		if nw, nh := int(rl.GetScreenWidth()), int(rl.GetScreenHeight()); nw != w || nh != h {
			w, h = nw, nh
			target.resize(w, h, opts.PixelFactor)
			if loop.Resize != nil {
				loop.Resize(w, h)
			}
		}

		if loop.Update != nil {
			loop.Update()
		}

		rl.BeginTextureMode(target.rt)
		if loop.Scene != nil {
			loop.Scene(target.width, target.height)
		}
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		bloom.composite(target, int32(w), int32(h))
		if loop.Overlay != nil {
			loop.Overlay()
		}
		rl.EndDrawing()
	}
}

// LowRes returns the size of the pixelated render target for a window of width x height.
// Each side is at least one pixel.
func LowRes(width, height, factor int) (int32, int32) {
	if factor < 1 {
		factor = 1
	}
	w, h := width/factor, height/factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return int32(w), int32(h)
}

// pixelTarget is the low-res render texture the scene draws into. It is upscaled with
// nearest filtering so each scene pixel covers PixelFactor screen pixels.
type pixelTarget struct {
	rt            rl.RenderTexture2D
	width, height int32
}

func newPixelTarget(w, h, factor int) *pixelTarget {
	t := &pixelTarget{}
	t.resize(w, h, factor)
	return t
}

func (t *pixelTarget) resize(w, h, factor int) {
	t.unload()
	t.width, t.height = LowRes(w, h, factor)
	t.rt = rl.LoadRenderTexture(t.width, t.height)
	rl.SetTextureFilter(t.rt.Texture, rl.FilterPoint)
}

func (t *pixelTarget) unload() {
	if t.rt.ID != 0 {
		rl.UnloadRenderTexture(t.rt)
		t.rt = rl.RenderTexture2D{}
	}
}
