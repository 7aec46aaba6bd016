package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"desk-portfolio/internal/download"
	"desk-portfolio/internal/googlefonts"
)

// Exts are the extensions we consider font files.
var Exts = []string{".ttf", ".otf"}

// Dir is where fonts are looked up and fetched fonts are saved, relative to the working directory.
const Dir = "assets/fonts"

// ScanDir returns relative paths of all font files under dir (e.g. "VT323/VT323-Regular.ttf").
// Paths use forward slashes. Only .ttf and .otf are included.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindFont searches dir for a font file whose path matches the family name.
// Returns the full path, or os.ErrNotExist if none match.
// When multiple files match, prefers one whose path contains "Regular".
func FindFont(dir, family string) (string, error) {
	norm := normalizeForMatch(family)
	if norm == "" {
		return "", os.ErrNotExist
	}
	list, err := ScanDir(dir)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, rel := range list {
		if strings.Contains(normalizeForMatch(rel), norm) {
			matches = append(matches, rel)
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, rel := range matches {
		if strings.Contains(strings.ToLower(rel), "regular") {
			return filepath.Join(dir, filepath.FromSlash(rel)), nil
		}
	}
	return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
}

// Resolve returns a local file for family, fetching it from Google Fonts into dir/<family>
// when no match is on disk yet.
func Resolve(ctx context.Context, dir, family string) (string, error) {
	if p, err := FindFont(dir, family); err == nil {
		return p, nil
	}
	u, err := googlefonts.FetchDownloadURLByFamily(ctx, family)
	if err != nil {
		return "", fmt.Errorf("fonts: %s: %w", family, err)
	}
	p, err := download.Fetch(ctx, u, filepath.Join(dir, strings.ReplaceAll(family, " ", "_")))
	if err != nil {
		return "", fmt.Errorf("fonts: %s: %w", family, err)
	}
	return p, nil
}
