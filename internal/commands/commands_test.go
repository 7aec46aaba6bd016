package commands

import (
	"errors"
	"strings"
	"testing"
)

type fakeConsole struct {
	state    string
	backOK   bool
	panOK    bool
	fps      []bool
	drift    []bool
	shotPath string
	shotErr  error
	saved    int
}

func (f *fakeConsole) Back() bool         { return f.backOK }
func (f *fakeConsole) PanIn() bool        { return f.panOK }
func (f *fakeConsole) State() string      { return f.state }
func (f *fakeConsole) SetShowFPS(on bool) { f.fps = append(f.fps, on) }
func (f *fakeConsole) SetDrift(on bool)   { f.drift = append(f.drift, on) }
func (f *fakeConsole) Screenshot(path string) (string, error) {
	f.shotPath = path
	if path == "" {
		path = "screenshots/default.webp"
	}
	return path, f.shotErr
}
func (f *fakeConsole) SaveConfig() (string, error) {
	f.saved++
	return "config/portfolio.yaml", nil
}

func setup() (*Registry, *fakeConsole, *[]string) {
	r := NewRegistry()
	c := &fakeConsole{state: "Idle"}
	var out []string
	RegisterPortfolio(r, c, func(s string) { out = append(out, s) })
	return r, c, &out
}

func run(t *testing.T, r *Registry, line string) error {
	t.Helper()
	args, ok := Parse(line)
	if !ok {
		t.Fatalf("Parse(%q) not a command", line)
	}
	return r.Execute(args)
}

func TestParse(t *testing.T) {
	if _, ok := Parse("hello"); ok {
		t.Fatalf("plain text parsed as command")
	}
	args, ok := Parse("cmd  shot   -o  a.png ")
	if !ok || strings.Join(args, ",") != "shot,-o,a.png" {
		t.Fatalf("Parse=%v,%v", args, ok)
	}
	if args, ok := Parse("cmd "); !ok || args != nil {
		t.Fatalf("empty command=%v,%v", args, ok)
	}
	args, _ = Parse(`cmd shot -o "my shots/a.png"`)
	if len(args) != 3 || args[2] != "my shots/a.png" {
		t.Fatalf("quoted args=%q", args)
	}
	if args, _ := Parse(`cmd shot -o ""`); len(args) != 3 || args[2] != "" {
		t.Fatalf("empty quoted arg=%q", args)
	}
}

func TestExecute_Errors(t *testing.T) {
	r, _, _ := setup()
	if err := r.Execute(nil); err == nil {
		t.Fatalf("missing subcommand accepted")
	}
	if err := run(t, r, "cmd warp"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("unknown command err=%v", err)
	}
	if err := run(t, r, "cmd fps -bogus"); err == nil {
		t.Fatalf("bad flag accepted")
	}
}

func TestToggleFlagsResetBetweenRuns(t *testing.T) {
	r, c, _ := setup()
	for _, line := range []string{"cmd fps -on", "cmd fps -off", "cmd drift -off", "cmd drift -on"} {
		if err := run(t, r, line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if len(c.fps) != 2 || !c.fps[0] || c.fps[1] {
		t.Fatalf("fps=%v", c.fps)
	}
	if len(c.drift) != 2 || c.drift[0] || !c.drift[1] {
		t.Fatalf("drift=%v", c.drift)
	}
	if err := run(t, r, "cmd fps"); err == nil {
		t.Fatalf("fps with no flag accepted")
	}
	if err := run(t, r, "cmd fps -on -off"); err == nil {
		t.Fatalf("fps with both flags accepted")
	}
}

func TestBackAndPan(t *testing.T) {
	r, c, out := setup()
	if err := run(t, r, "cmd back"); err == nil || !strings.Contains(err.Error(), "Idle") {
		t.Fatalf("back while idle err=%v", err)
	}
	c.panOK = true
	if err := run(t, r, "cmd pan"); err != nil {
		t.Fatalf("pan: %v", err)
	}
	c.state, c.backOK = "Panned", true
	if err := run(t, r, "cmd back"); err != nil {
		t.Fatalf("back: %v", err)
	}
	if err := run(t, r, "cmd state"); err != nil {
		t.Fatalf("state: %v", err)
	}
	if (*out)[len(*out)-1] != "state: Panned" {
		t.Fatalf("out=%v", *out)
	}
}

func TestShotAndConfig(t *testing.T) {
	r, c, out := setup()
	if err := run(t, r, "cmd shot -o shots/a.png"); err != nil {
		t.Fatalf("shot: %v", err)
	}
	if c.shotPath != "shots/a.png" {
		t.Fatalf("shot path=%q", c.shotPath)
	}
	if err := run(t, r, "cmd shot"); err != nil {
		t.Fatalf("shot: %v", err)
	}
	if c.shotPath != "" {
		t.Fatalf("-o kept its previous value: %q", c.shotPath)
	}
	c.shotErr = errors.New("disk full")
	if err := run(t, r, "cmd shot"); err == nil {
		t.Fatalf("shot error swallowed")
	}
	if err := run(t, r, "cmd config"); err == nil {
		t.Fatalf("config without save accepted")
	}
	if err := run(t, r, "cmd config save"); err != nil || c.saved != 1 {
		t.Fatalf("config save err=%v saved=%d", err, c.saved)
	}
	if err := run(t, r, "cmd help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	want := "commands: back, config, drift, fps, help, pan, shot, state"
	if (*out)[len(*out)-1] != want {
		t.Fatalf("help=%q", (*out)[len(*out)-1])
	}
}
