package golabel

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fixedFace is a fake font.Face where every glyph advances exactly 10 pixels
// and occupies an ink box from 10 above the baseline to 2 below. Measurement
// arithmetic becomes exact: a line of n runes is 10n wide and 12 tall.
type fixedFace struct{}

func (fixedFace) Close() error { return nil }

func (fixedFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rect(0, 0, 10, 12), image.NewUniform(color.Black), image.Point{}, fixed.I(10), true
}

func (fixedFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.R(0, -10, 10, 2), fixed.I(10), true
}

func (fixedFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) { return fixed.I(10), true }

func (fixedFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (fixedFace) Metrics() font.Metrics {
	return font.Metrics{Height: fixed.I(12), Ascent: fixed.I(10), Descent: fixed.I(2)}
}

func TestLayoutTextCentersSingleLine(t *testing.T) {
	box := LayoutBox{X: 100, Y: 100, MaxWidth: 200, MaxHeight: 400}
	res := LayoutText("abcd", box, fixedFace{}, NopShaper{}, LayoutOptions{})

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
	line := res.Lines[0]
	if line.Width != 40 {
		t.Errorf("width = %d, want 40", line.Width)
	}
	// Line is centered in the box: 100 + (200-40)/2.
	if line.X != 180 {
		t.Errorf("x = %d, want 180", line.X)
	}
	if res.TotalHeight != 12 {
		t.Errorf("total height = %d, want 12", res.TotalHeight)
	}
	// Block centered on Y=100: top at 94, baseline 10px below the ink top.
	if line.Top != 94 {
		t.Errorf("top = %d, want 94", line.Top)
	}
	if line.Y != 104 {
		t.Errorf("baseline = %d, want 104", line.Y)
	}
}

func TestLayoutTextWrapsOnWidth(t *testing.T) {
	// Each word is 40px, the joined pair is 90px, the box allows 80px.
	box := LayoutBox{X: 0, Y: 100, MaxWidth: 80}
	res := LayoutText("abcd efgh", box, fixedFace{}, NopShaper{}, LayoutOptions{})

	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(res.Lines))
	}
	if res.Lines[0].Text != "abcd" || res.Lines[1].Text != "efgh" {
		t.Errorf("lines = %q, %q", res.Lines[0].Text, res.Lines[1].Text)
	}
}

func TestLayoutTextWordCapAndSpacing(t *testing.T) {
	box := LayoutBox{X: 0, Y: 200, MaxWidth: 1000}
	res := LayoutText("a b c d e", box, fixedFace{}, NopShaper{}, LayoutOptions{
		MaxWordsPerLine: 2,
		LineSpacing:     24,
	})

	if len(res.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(res.Lines))
	}
	for i, want := range []string{"a b", "c d", "e"} {
		if res.Lines[i].Text != want {
			t.Errorf("line %d = %q, want %q", i, res.Lines[i].Text, want)
		}
	}
	// Three 12px lines plus two 24px gaps.
	if res.TotalHeight != 84 {
		t.Errorf("total height = %d, want 84", res.TotalHeight)
	}
	// Spacing applies strictly between lines.
	if gap := res.Lines[1].Top - (res.Lines[0].Top + res.Lines[0].Height); gap != 24 {
		t.Errorf("gap = %d, want 24", gap)
	}
}

func TestLayoutTextOverwideWordCommittedAlone(t *testing.T) {
	long := strings.Repeat("x", 30) // 300px, box is 100
	box := LayoutBox{X: 0, Y: 0, MaxWidth: 100}
	res := LayoutText("ab "+long+" cd", box, fixedFace{}, NopShaper{}, LayoutOptions{})

	if len(res.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(res.Lines))
	}
	if res.Lines[1].Text != long {
		t.Errorf("middle line = %q, want the unsplit word", res.Lines[1].Text)
	}
	if res.Lines[1].Width != 300 {
		t.Errorf("middle width = %d, want 300", res.Lines[1].Width)
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	res := LayoutText("   ", LayoutBox{MaxWidth: 100}, fixedFace{}, NopShaper{}, LayoutOptions{})
	if len(res.Lines) != 0 || res.TotalHeight != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestBreakLinesConservesWords(t *testing.T) {
	inputs := []string{
		"a b c d e f g",
		"one twotwotwo three four fivefivefive six",
		strings.Repeat("word ", 20),
	}
	for _, input := range inputs {
		words := strings.Fields(input)
		lines := breakLines(words, 50, fixedFace{}, NopShaper{}, 0)

		var got []string
		for _, line := range lines {
			got = append(got, strings.Fields(line)...)
		}
		if strings.Join(got, " ") != strings.Join(words, " ") {
			t.Errorf("words not conserved: in %q, out %q", words, got)
		}
	}
}
