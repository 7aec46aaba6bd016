package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"desk-portfolio/internal/googlefonts"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("font"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindFont_PrefersRegular(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "VT323", "VT323-Bold.ttf"))
	writeFile(t, filepath.Join(dir, "VT323", "VT323-Regular.ttf"))
	writeFile(t, filepath.Join(dir, "VT323", "OFL.txt"))

	got, err := FindFont(dir, "VT 323")
	if err != nil {
		t.Fatalf("FindFont: %v", err)
	}
	if filepath.Base(got) != "VT323-Regular.ttf" {
		t.Fatalf("FindFont=%s", got)
	}
	if _, err := FindFont(dir, "Inter"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing family err=%v", err)
	}
	if _, err := FindFont(filepath.Join(dir, "nope"), "VT323"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing dir err=%v", err)
	}
}

func TestResolve_FetchesMissingFamily(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ofl/vt323":
			_ = json.NewEncoder(w).Encode([]map[string]string{
				{"name": "VT323-Regular.ttf", "type": "file", "download_url": srv.URL + "/raw/VT323-Regular.ttf"},
			})
		case strings.HasPrefix(r.URL.Path, "/raw/"):
			_, _ = w.Write([]byte("ttf bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	oldBase, oldPrefix := googlefonts.APIBase, googlefonts.AllowedRawPrefix
	googlefonts.APIBase, googlefonts.AllowedRawPrefix = srv.URL+"/ofl", srv.URL+"/raw/"
	defer func() { googlefonts.APIBase, googlefonts.AllowedRawPrefix = oldBase, oldPrefix }()

	dir := t.TempDir()
	got, err := Resolve(context.Background(), dir, "VT323")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(dir, "VT323", "VT323-Regular.ttf") {
		t.Fatalf("Resolve=%s", got)
	}
	data, err := os.ReadFile(got)
	if err != nil || string(data) != "ttf bytes" {
		t.Fatalf("saved font=%q err=%v", data, err)
	}

	srv.Close()
	again, err := Resolve(context.Background(), dir, "VT323")
	if err != nil || again != got {
		t.Fatalf("second Resolve should use disk: %s %v", again, err)
	}
}
