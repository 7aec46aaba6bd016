package googlefonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// APIBase lists the ofl families of the google/fonts repository. Tests point it at a local server.
var APIBase = "https://api.github.com/repos/google/fonts/contents/ofl"

// AllowedRawPrefix is the only download host accepted from a listing.
var AllowedRawPrefix = "https://raw.githubusercontent.com/google/fonts/"

// Client is the HTTP client used for listings.
var Client = &http.Client{Timeout: 15 * time.Second}

// ErrNotFound reports a family with no folder in the listing.
var ErrNotFound = errors.New("google fonts: family not found")

// Entry is one item of a family folder listing.
type Entry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// NormalizeFamily converts a display name to the folder names used in google/fonts ofl.
// e.g. "VT323" -> "vt323", "Press Start 2P" -> "pressstart2p", "press-start-2p".
func NormalizeFamily(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return nil
	}
	joined := strings.Join(strings.Fields(lower), "")
	hyphens := strings.Join(strings.Fields(lower), "-")
	if joined == hyphens {
		return []string{joined}
	}
	return []string{joined, hyphens}
}

// List returns the entries of one ofl folder.
func List(ctx context.Context, folder string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, APIBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return nil, fmt.Errorf("google fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, folder)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("google fonts: %s: HTTP %d", folder, resp.StatusCode)
	}
	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("google fonts: %s: %w", folder, err)
	}
	return entries, nil
}

// rank orders usable font files: upright regular first, then other upright styles, then italics.
// Zero means the entry is not a downloadable font.
func rank(e Entry) int {
	if e.Type != "file" || !strings.HasPrefix(e.DownloadURL, AllowedRawPrefix) {
		return 0
	}
	name := strings.ToLower(e.Name)
	switch path.Ext(name) {
	case ".ttf", ".otf":
	default:
		return 0
	}
	switch {
	case strings.Contains(name, "italic"):
		return 1
	case strings.Contains(name, "regular"):
		return 3
	}
	return 2
}

// Pick returns the download URL of the best font file among entries.
func Pick(entries []Entry) (string, bool) {
	best, bestRank := "", 0
	for _, e := range entries {
		if r := rank(e); r > bestRank {
			best, bestRank = e.DownloadURL, r
		}
	}
	return best, bestRank > 0
}

// FetchDownloadURL returns the raw download URL for a TTF/OTF file in the given folder.
func FetchDownloadURL(ctx context.Context, folder string) (string, error) {
	entries, err := List(ctx, folder)
	if err != nil {
		return "", err
	}
	u, ok := Pick(entries)
	if !ok {
		return "", fmt.Errorf("google fonts: no .ttf/.otf file in %s", folder)
	}
	return u, nil
}

// FetchDownloadURLByFamily tries each NormalizeFamily variant and returns the first hit.
func FetchDownloadURLByFamily(ctx context.Context, name string) (string, error) {
	candidates := NormalizeFamily(name)
	if len(candidates) == 0 {
		return "", fmt.Errorf("google fonts: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := FetchDownloadURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
		if !errors.Is(err, ErrNotFound) {
			break
		}
	}
	return "", lastErr
}
