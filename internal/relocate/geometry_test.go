package relocate

import (
	"testing"

	"github.com/1broseidon/winomove/internal/platform"
)

func TestOffsetWithin(t *testing.T) {
	tests := []struct {
		name     string
		window   platform.Rect
		display  platform.Rect
		expected Offset
	}{
		{"primary origin", platform.RectFromEdges(100, 100, 900, 700), platform.RectFromEdges(0, 0, 1920, 1080), Offset{100, 100}},
		{"secondary right", platform.RectFromEdges(2020, 150, 2820, 750), platform.RectFromEdges(1920, 0, 3840, 1080), Offset{100, 150}},
		{"negative coordinates", platform.RectFromEdges(-1200, -100, -400, 500), platform.RectFromEdges(-1280, -200, 0, 824), Offset{80, 100}},
		{"window hanging off the left", platform.RectFromEdges(-50, 10, 750, 610), platform.RectFromEdges(0, 0, 1920, 1080), Offset{-50, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OffsetWithin(tt.window, tt.display)
			if got != tt.expected {
				t.Errorf("OffsetWithin(%+v, %+v) = %+v, want %+v", tt.window, tt.display, got, tt.expected)
			}
		})
	}
}

func TestOffset_RoundTrip(t *testing.T) {
	displays := []platform.Rect{
		platform.RectFromEdges(0, 0, 1920, 1080),
		platform.RectFromEdges(1920, 0, 3840, 1080),
		platform.RectFromEdges(-2560, -360, 0, 1080),
		platform.RectFromEdges(3840, 217, 5120, 1241),
	}
	windows := []platform.Rect{
		{X: 0, Y: 0, Width: 100, Height: 50},
		{X: 13, Y: 7, Width: 801, Height: 333},
		{X: 1900, Y: 1000, Width: 640, Height: 480},
	}

	for _, d := range displays {
		for _, w := range windows {
			// Put the window's top-left inside d.
			r := platform.Rect{X: d.X + w.X, Y: d.Y + w.Y, Width: w.Width, Height: w.Height}

			off := OffsetWithin(r, d)
			back := Project(off, r.Width, r.Height, d)
			if back != r {
				t.Errorf("round trip of %+v in %+v = %+v", r, d, back)
			}
		}
	}
}

func TestTranslate_PreservesSize(t *testing.T) {
	src := platform.RectFromEdges(0, 0, 1920, 1080)
	dst := platform.RectFromEdges(1920, 0, 4480, 1440)
	window := platform.RectFromEdges(100, 100, 900, 700)

	got := Translate(window, src, dst)
	want := platform.RectFromEdges(2020, 100, 2820, 700)
	if got != want {
		t.Errorf("Translate = %+v, want %+v", got, want)
	}
	if got.Width != window.Width || got.Height != window.Height {
		t.Errorf("Translate changed size: %dx%d -> %dx%d", window.Width, window.Height, got.Width, got.Height)
	}
}

func TestTranslate_ThereAndBack(t *testing.T) {
	a := platform.RectFromEdges(0, 0, 1920, 1080)
	b := platform.RectFromEdges(-1280, 300, 0, 1324)
	window := platform.RectFromEdges(333, 444, 1100, 999)

	if got := Translate(Translate(window, a, b), b, a); got != window {
		t.Errorf("A->B->A = %+v, want %+v", got, window)
	}
}
