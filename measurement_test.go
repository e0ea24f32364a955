package golabel

import (
	"math"
	"testing"
)

func TestCentimeterToPixels(t *testing.T) {
	cases := []struct {
		cm   float64
		dpi  float64
		want int
	}{
		{8.4, 300, 992},
		{4.3, 300, 508},
		{2.54, 300, 300},
		{0, 300, 0},
	}
	for _, c := range cases {
		if got := CentimeterToPixels(c.cm, c.dpi); got != c.want {
			t.Errorf("CentimeterToPixels(%g, %g) = %d, want %d", c.cm, c.dpi, got, c.want)
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	px := CentimeterToPixels(8.4, 300)
	cm := PixelsToCentimeter(px, 300)
	if math.Abs(cm-8.4) > 0.01 {
		t.Errorf("round trip: 8.4cm -> %dpx -> %gcm", px, cm)
	}
}

func TestPointToPixels(t *testing.T) {
	if got := PointToPixels(72, 300); got != 300 {
		t.Errorf("PointToPixels(72, 300) = %d, want 300", got)
	}
	if got := InchToPixels(2, 300); got != 600 {
		t.Errorf("InchToPixels(2, 300) = %d, want 600", got)
	}
}

func TestClampPixels(t *testing.T) {
	if got := clampPixels(1e18); got != maxPixels {
		t.Errorf("clampPixels(1e18) = %d, want %d", got, maxPixels)
	}
	if got := clampPixels(-1e18); got != -maxPixels {
		t.Errorf("clampPixels(-1e18) = %d, want %d", got, -maxPixels)
	}
}
