package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Console is what the portfolio commands act on.
type Console interface {
	Back() bool
	PanIn() bool
	State() string
	SetShowFPS(on bool)
	SetDrift(on bool)
	Screenshot(path string) (string, error)
	SaveConfig() (string, error)
}

// RegisterPortfolio adds help, back, pan, state, fps, drift, shot and config. Output lines go to print.
func RegisterPortfolio(r *Registry, c Console, print func(string)) {
	r.Register("help", newFlagSet("help"), func() error {
		print("commands: " + strings.Join(r.Names(), ", "))
		return nil
	})

	r.Register("back", newFlagSet("back"), func() error {
		if !c.Back() {
			return fmt.Errorf("back: not zoomed in (state %s)", c.State())
		}
		return nil
	})

	r.Register("pan", newFlagSet("pan"), func() error {
		if !c.PanIn() {
			return fmt.Errorf("pan: cannot start from state %s", c.State())
		}
		return nil
	})

	r.Register("state", newFlagSet("state"), func() error {
		print("state: " + c.State())
		return nil
	})

	fps := newFlagSet("fps")
	fpsOn := fps.Bool("on", false, "show the FPS counter")
	fpsOff := fps.Bool("off", false, "hide the FPS counter")
	r.Register("fps", fps, func() error {
		on, err := toggle("fps", *fpsOn, *fpsOff)
		if err != nil {
			return err
		}
		c.SetShowFPS(on)
		return nil
	})

	drift := newFlagSet("drift")
	driftOn := drift.Bool("on", false, "sway the camera while idle")
	driftOff := drift.Bool("off", false, "hold the camera still while idle")
	r.Register("drift", drift, func() error {
		on, err := toggle("drift", *driftOn, *driftOff)
		if err != nil {
			return err
		}
		c.SetDrift(on)
		return nil
	})

	shot := newFlagSet("shot")
	shotOut := shot.String("o", "", "output file (.webp or .png); default screenshots/<time>.webp")
	r.Register("shot", shot, func() error {
		path, err := c.Screenshot(*shotOut)
		if err != nil {
			return err
		}
		print("screenshot " + path)
		return nil
	})

	cfg := newFlagSet("config")
	r.Register("config", cfg, func() error {
		if args := cfg.Args(); len(args) != 1 || args[0] != "save" {
			return fmt.Errorf("usage: cmd config save")
		}
		path, err := c.SaveConfig()
		if err != nil {
			return err
		}
		print("saved " + path)
		return nil
	})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// toggle resolves an -on/-off pair.
func toggle(name string, on, off bool) (bool, error) {
	if on == off {
		return false, fmt.Errorf("%s: use exactly one of -on or -off", name)
	}
	return on, nil
}
