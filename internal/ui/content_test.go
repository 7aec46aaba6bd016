package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	data := `title: Jane Doe
subtitle: developer
sections:
  - id: aboutme
    link: AboutMe
    title: About Me
    body: hello
  - id: projects
    link: Projects
    title: Projects
    story: long
    toggle: Read Project Story
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadContent(path)
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if c.Title != "Jane Doe" || len(c.Sections) != 2 {
		t.Fatalf("content=%+v", c)
	}
	if got := c.Sections[1].ToggleLabel(false); got != "Read Project Story ▼" {
		t.Fatalf("collapsed label=%q", got)
	}
	if got := c.Sections[0].ToggleLabel(false); got != "Read Full Story ▼" {
		t.Fatalf("default label=%q", got)
	}
	if got := c.Sections[0].ToggleLabel(true); got != "Hide Story ▲" {
		t.Fatalf("expanded label=%q", got)
	}
}

func TestLoadContent_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"nolink": "sections:\n  - id: a\n",
		"dup":    "sections:\n  - {id: a, link: A}\n  - {id: b, link: A}\n",
		"yaml":   "sections: [",
	} {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadContent(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadContent(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("missing file: expected error")
	}
}
