package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLog_WritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "portfolio.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local) }
	l.Logf("asset load failed: %s", "models/8_bit_pc.glb")

	lines := l.Lines()
	want := "[2024-05-06 07:08:09] asset load failed: models/8_bit_pc.glb"
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("lines=%q, want [%q]", lines, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.TrimSpace(string(data)) != want {
		t.Fatalf("file=%q", data)
	}
}

func TestLog_BoundedAndConcurrent(t *testing.T) {
	l := New("")
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Log("line")
			}
		}()
	}
	wg.Wait()
	if n := len(l.Lines()); n != maxLines {
		t.Fatalf("retained %d lines, want %d", n, maxLines)
	}
}
