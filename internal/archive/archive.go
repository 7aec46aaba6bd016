package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// doneMarker is written into destDir after a complete extraction.
const doneMarker = ".unzipped"

// Unzipped reports whether destDir holds a completed extraction.
func Unzipped(destDir string) bool {
	_, err := os.Stat(filepath.Join(destDir, doneMarker))
	return err == nil
}

// Unzip extracts zipPath into destDir, preserving directory structure, and marks the
// directory complete. Entries that would land outside destDir are rejected.
// Returns the extracted file paths relative to destDir, with forward slashes.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Join(absDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			return nil, fmt.Errorf("unzip: %s: entry %q escapes the destination", zipPath, f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if err := extract(f, dest); err != nil {
			return nil, err
		}
		extracted = append(extracted, filepath.ToSlash(f.Name))
	}
	if err := os.WriteFile(filepath.Join(absDir, doneMarker), nil, 0644); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	rc, err := f.Open()
	if err != nil {
		out.Close()
		return fmt.Errorf("unzip: %w", err)
	}
	_, err = io.Copy(out, rc)
	rc.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("unzip: %s: %w", f.Name, err)
	}
	return nil
}
