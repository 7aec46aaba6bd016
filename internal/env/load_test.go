package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := `# portfolio overrides
PORTFOLIO_TEST_BASE="https://example.com/"
export PORTFOLIO_TEST_FULL='true'
PORTFOLIO_TEST_KEEP=from-file
not a pair
=novalue
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORTFOLIO_TEST_KEEP", "from-env")
	// Registered with t.Setenv so they are restored after the test.
	t.Setenv("PORTFOLIO_TEST_BASE", "")
	os.Unsetenv("PORTFOLIO_TEST_BASE")
	t.Setenv("PORTFOLIO_TEST_FULL", "")
	os.Unsetenv("PORTFOLIO_TEST_FULL")

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("set=%v, want 2 keys", set)
	}
	if got := os.Getenv("PORTFOLIO_TEST_BASE"); got != "https://example.com/" {
		t.Fatalf("base=%q", got)
	}
	if got := os.Getenv("PORTFOLIO_TEST_FULL"); got != "true" {
		t.Fatalf("full=%q", got)
	}
	if got := os.Getenv("PORTFOLIO_TEST_KEEP"); got != "from-env" {
		t.Fatalf("existing variable overwritten: %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil || len(set) != 0 {
		t.Fatalf("Load missing = %v, %v", set, err)
	}
}
