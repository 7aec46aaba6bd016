package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"desk-portfolio/internal/app"
	"desk-portfolio/internal/capture"
	"desk-portfolio/internal/config"
	"desk-portfolio/internal/debug"
)

// console adapts the running scene to the debug console commands.
type console struct {
	ctx  *app.Context
	dbg  *debug.Debug
	cfg  *config.Config
	shot *string
}

func (c *console) Back() bool         { return c.ctx.Back() }
func (c *console) PanIn() bool        { return c.ctx.PanIn() }
func (c *console) State() string      { return c.ctx.Pan.State().String() }
func (c *console) SetShowFPS(on bool) { c.dbg.SetShowFPS(on) }

func (c *console) SetDrift(on bool) {
	if on {
		c.ctx.Pan.SetDrift(c.cfg.Pan.DriftAmplitude)
		return
	}
	c.ctx.Pan.SetDrift(0)
}

// Screenshot queues a capture of the next frame; it is written after the page is drawn.
func (c *console) Screenshot(path string) (string, error) {
	if path == "" {
		path = capture.DefaultPath(time.Now())
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".webp" && ext != ".png" {
		return "", fmt.Errorf("shot: %s: use a .webp or .png file", path)
	}
	*c.shot = path
	return path, nil
}

// SaveConfig writes the running config, including the console toggles, to config.Path.
func (c *console) SaveConfig() (string, error) {
	c.cfg.ShowFPS = c.dbg.ShowFPS
	if err := config.Save(config.Path, *c.cfg); err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return config.Path, nil
}
