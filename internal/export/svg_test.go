package export

import (
	"strings"
	"testing"
)

func TestBarsToSVG(t *testing.T) {
	svg := BarsToSVG([]int{100, 50}, 100, 200, 100, "#5f87d7")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if n := strings.Count(svg, "<rect x="); n != 2 {
		t.Errorf("expected 2 bars, got %d", n)
	}
	if !strings.Contains(svg, `y="0.0" width="80.0" height="100.0"`) {
		t.Errorf("expected a full-height first bar in %q", svg)
	}
	if !strings.Contains(svg, `x="110.0" y="50.0" width="80.0" height="50.0"`) {
		t.Errorf("expected a half-height second bar in %q", svg)
	}

	if BarsToSVG(nil, 100, 10, 10, "#fff") != "" {
		t.Error("expected empty output without values")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 1, 2}, 100, 50, "#00ff88")
	if !strings.Contains(svg, `d="M0.0,`) {
		t.Errorf("expected path starting at x=0: %q", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments: %q", svg)
	}

	if SeriesToSVG([]float64{1}, 10, 10, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}
