package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestFetch_SavesAndReusesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("glTF-binary"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	p, err := Fetch(context.Background(), srv.URL+"/models/8_bit_pc.glb", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p != filepath.Join(dir, "8_bit_pc.glb") {
		t.Fatalf("saved path=%q", p)
	}
	data, _ := os.ReadFile(p)
	if string(data) != "glTF-binary" {
		t.Fatalf("content=%q", data)
	}

	if _, err := Fetch(context.Background(), srv.URL+"/models/8_bit_pc.glb", dir); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("server hit %d times, want 1 (cache reuse)", hits.Load())
	}
}

func TestFetch_HTTPErrorLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := Fetch(context.Background(), srv.URL+"/models/missing.glb", dir); err == nil {
		t.Fatalf("Fetch 404 succeeded")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("files left after failure: %v", entries)
	}
}

func TestFetch_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Fetch(ctx, srv.URL+"/a.glb", t.TempDir()); err == nil {
		t.Fatalf("Fetch with cancelled context succeeded")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"8_bit_pc.glb", "8_bit_pc.glb"},
		{"my model.glb", "my_model.glb"},
		{"", "download"},
		{"/", "download"},
	}
	for _, c := range tests {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://example.com/a.glb") || IsRemote("./models/a.glb") {
		t.Fatalf("IsRemote misclassified")
	}
}
