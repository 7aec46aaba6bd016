package ui

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Section is one page of the nav: a link label and the panel it opens.
type Section struct {
	ID    string `yaml:"id"`
	Link  string `yaml:"link"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	// Story is hidden behind a toggle; Toggle labels the collapsed button.
	Story  string `yaml:"story"`
	Toggle string `yaml:"toggle"`
}

// Content is the page text: the landing title and the nav sections.
type Content struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Sections []Section `yaml:"sections"`
}

// DefaultContent has the four sections the nav always offers, with placeholder text.
func DefaultContent() Content {
	return Content{
		Title:    "Portfolio",
		Subtitle: "click the computer",
		Sections: []Section{
			{ID: "aboutme", Link: "AboutMe", Title: "About Me"},
			{ID: "experience", Link: "Experience", Title: "Experience"},
			{ID: "education", Link: "Education", Title: "Education"},
			{ID: "projects", Link: "Projects", Title: "Projects"},
		},
	}
}

// LoadContent reads page text from a YAML file. Sections without a link or id are rejected.
func LoadContent(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("ui: %w", err)
	}
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("ui: %s: %w", path, err)
	}
	seen := make(map[string]bool)
	for i, s := range c.Sections {
		if s.ID == "" || s.Link == "" {
			return Content{}, fmt.Errorf("ui: %s: section %d needs id and link", path, i)
		}
		if seen[s.Link] {
			return Content{}, fmt.Errorf("ui: %s: duplicate link %q", path, s.Link)
		}
		seen[s.Link] = true
	}
	return c, nil
}

// ToggleLabel is the story button text for the given state.
func (s Section) ToggleLabel(expanded bool) string {
	if expanded {
		return "Hide Story ▲"
	}
	if s.Toggle != "" {
		return s.Toggle + " ▼"
	}
	return "Read Full Story ▼"
}
