package graphics

import "testing"

func TestLowRes(t *testing.T) {
	tests := []struct {
		w, h, factor int
		wantW, wantH int32
	}{
		{1280, 720, 4, 320, 180},
		{1281, 723, 4, 320, 180},
		{800, 600, 1, 800, 600},
		{800, 600, 0, 800, 600},
		{3, 2, 4, 1, 1},
	}
	for _, c := range tests {
		w, h := LowRes(c.w, c.h, c.factor)
		if w != c.wantW || h != c.wantH {
			t.Errorf("LowRes(%d,%d,%d) = %dx%d, want %dx%d", c.w, c.h, c.factor, w, h, c.wantW, c.wantH)
		}
	}
}
