package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Path is the config file, relative to the process working directory.
const Path = "config/portfolio.yaml"

// Window controls the OS window and the low-resolution render target.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
	// PixelFactor divides the window size to get the 3D render size; the result is upscaled
	// with nearest filtering for the pixelated look.
	PixelFactor int `yaml:"pixel_factor"`
}

// Camera holds the lens and the two fixed poses the pan moves between.
type Camera struct {
	FovY           float32    `yaml:"fov"`
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	HomePosition   mgl32.Vec3 `yaml:"home_position"`
	HomeLook       mgl32.Vec3 `yaml:"home_look"`
	ZoomedPosition mgl32.Vec3 `yaml:"zoomed_position"`
	ZoomedLook     mgl32.Vec3 `yaml:"zoomed_look"`
}

// Pan tunes the camera transition.
type Pan struct {
	Step           float32       `yaml:"step"`
	RevealDelay    time.Duration `yaml:"reveal_delay"`
	DriftAmplitude float32       `yaml:"drift_amplitude"`
	DriftRate      float32       `yaml:"drift_rate"`
}

// Orbit tunes the orbit controls used while the camera is at home.
type Orbit struct {
	Target           mgl32.Vec3 `yaml:"target"`
	RotateSpeed      float32    `yaml:"rotate_speed"`
	ZoomSpeed        float32    `yaml:"zoom_speed"`
	MinDistance      float32    `yaml:"min_distance"`
	MaxDistance      float32    `yaml:"max_distance"`
	DampingFrequency float64    `yaml:"damping_frequency"`
}

// Bloom parameters for the composite pass.
type Bloom struct {
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
}

// Anchor is the world-space rectangle the navigation overlay follows.
type Anchor struct {
	Position mgl32.Vec3 `yaml:"position"`
	Rotation mgl32.Vec3 `yaml:"rotation"`
	Width    float32    `yaml:"width"`
	Height   float32    `yaml:"height"`
	Color    string     `yaml:"color"`
}

// Assets locates the manifest and the asset root.
type Assets struct {
	// Base is prepended to every asset path; it may be a directory or an http(s) URL.
	Base     string `yaml:"base"`
	Manifest string `yaml:"manifest"`
	// CacheDir receives assets fetched from a remote Base.
	CacheDir string `yaml:"cache_dir"`
}

// UI locates the overlay stylesheet, text, font and cursor images.
type UI struct {
	Stylesheet string `yaml:"stylesheet"`
	Content    string `yaml:"content"`
	// Font is a Google Fonts family; it is fetched into assets/fonts when missing.
	Font        string `yaml:"font"`
	FontSize    int32  `yaml:"font_size"`
	Cursor      string `yaml:"cursor"`
	CursorHover string `yaml:"cursor_hover"`
}

// Config is the whole runtime configuration.
type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Pan    Pan    `yaml:"pan"`
	Orbit  Orbit  `yaml:"orbit"`
	Bloom  Bloom  `yaml:"bloom"`
	Anchor Anchor `yaml:"anchor"`
	Assets Assets `yaml:"assets"`
	UI     UI     `yaml:"ui"`
	// ShowFPS turns on the debug overlay at startup.
	ShowFPS bool `yaml:"show_fps"`
}

// Default returns the scene as it ships: camera poses, pan pacing and overlay anchor.
func Default() Config {
	return Config{
		Window: Window{
			Title:       "Portfolio",
			Width:       1280,
			Height:      720,
			TargetFPS:   60,
			PixelFactor: 4,
		},
		Camera: Camera{
			FovY:           75,
			Near:           0.1,
			Far:            1000,
			HomePosition:   mgl32.Vec3{1.4, 1.1, 1.8},
			HomeLook:       mgl32.Vec3{0, 0.6, 0},
			ZoomedPosition: mgl32.Vec3{0.0118, 1.14, 0.6},
			ZoomedLook:     mgl32.Vec3{0.0118, 1.14, 0},
		},
		Pan: Pan{
			Step:           0.015,
			RevealDelay:    300 * time.Millisecond,
			DriftAmplitude: 0.001,
			DriftRate:      1,
		},
		Orbit: Orbit{
			Target:           mgl32.Vec3{0, 0.8, 0},
			RotateSpeed:      0.005,
			ZoomSpeed:        0.05,
			MinDistance:      0.5,
			MaxDistance:      6,
			DampingFrequency: 3,
		},
		Bloom: Bloom{Strength: 0.1, Radius: 0.1, Threshold: 0.8},
		Anchor: Anchor{
			Position: mgl32.Vec3{0.012, 1.139, -0.0705},
			Rotation: mgl32.Vec3{mgl32.DegToRad(180), 0, 0},
			Width:    0.878,
			Height:   0.51,
			Color:    "#AAAAAA",
		},
		Assets: Assets{
			Base:     "./",
			Manifest: "assets/scene.yaml",
			CacheDir: "cache/assets",
		},
		UI: UI{
			Stylesheet:  "assets/ui/portfolio.css",
			Content:     "assets/ui/content.yaml",
			Font:        "VT323",
			FontSize:    24,
			Cursor:      "assets/cursors/retrocursor.png",
			CursorHover: "assets/cursors/retrocursorsel.png",
		},
	}
}

// Load reads path over Default(). A missing file is not an error and yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides selected fields from environment variables (usually loaded from .env).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORTFOLIO_ASSET_BASE"); v != "" {
		c.Assets.Base = v
	}
	if v := os.Getenv("PORTFOLIO_FULLSCREEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Window.Fullscreen = b
		}
	}
	if v := os.Getenv("PORTFOLIO_SHOW_FPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ShowFPS = b
		}
	}
}

// Validate rejects values the render loop cannot work with.
func (c Config) Validate() error {
	if c.Pan.Step <= 0 || c.Pan.Step > 1 {
		return fmt.Errorf("config: pan.step must be in (0,1], got %v", c.Pan.Step)
	}
	if c.Window.PixelFactor < 1 {
		return fmt.Errorf("config: window.pixel_factor must be >= 1, got %d", c.Window.PixelFactor)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("config: camera near/far invalid (%v, %v)", c.Camera.Near, c.Camera.Far)
	}
	if c.Anchor.Width <= 0 || c.Anchor.Height <= 0 {
		return fmt.Errorf("config: anchor size must be positive")
	}
	return nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
