package golabel

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// testFaces returns faces backed by the built-in 7x13 bitmap font. It has no
// Arabic glyphs, so rendering tests use Latin names with the NopShaper; the
// geometry under test is script-independent.
func testFaces() Faces {
	f := basicfont.Face7x13
	return Faces{Name: f, Price: f, Plus: f, Tax: f}
}

func testRenderer(t *testing.T, name string) (*Renderer, *Profile) {
	t.Helper()
	p, ok := LookupProfile(name)
	if !ok {
		t.Fatalf("profile %q missing", name)
	}
	r, err := NewRenderer(p, testFaces(), NopShaper{})
	if err != nil {
		t.Fatal(err)
	}
	return r, p
}

func TestRenderLabelGeometry(t *testing.T) {
	r, p := testRenderer(t, "classic")

	img, err := r.Render("Toast Bread", 45000)
	if err != nil {
		t.Fatal(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != p.Width || bounds.Dy() != p.Height {
		t.Fatalf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), p.Width, p.Height)
	}

	// Top-left corner of the gold panel. The panel is flush left and
	// vertically centered.
	goldTop := (p.Height - p.GoldHeight) / 2
	if got := img.At(2, goldTop+2); got != p.Gold.RGBA() {
		t.Errorf("gold panel pixel = %v, want %v", got, p.Gold.RGBA())
	}
	// Above the panel is background.
	if got := img.At(2, goldTop-2); got != p.Background.RGBA() {
		t.Errorf("background pixel = %v, want %v", got, p.Background.RGBA())
	}
	// Far right edge is background too.
	if got := img.At(p.Width-2, 2); got != p.Background.RGBA() {
		t.Errorf("right edge pixel = %v, want %v", got, p.Background.RGBA())
	}
}

// nameInkBands counts the contiguous horizontal bands of rows that carry
// name-ink pixels to the right of the gold panel. One drawn line of text is
// one band.
func nameInkBands(img image.Image, p *Profile) int {
	ink := p.NameInk.RGBA()
	bands := 0
	inBand := false
	for y := 0; y < p.Height; y++ {
		found := false
		for x := p.GoldWidth + 1; x < p.Width; x++ {
			if img.At(x, y) == ink {
				found = true
				break
			}
		}
		if found && !inBand {
			bands++
		}
		inBand = found
	}
	return bands
}

// nameInkBelow reports whether any name-ink pixel right of the gold panel
// sits strictly below row y0.
func nameInkBelow(img image.Image, p *Profile, y0 int) bool {
	ink := p.NameInk.RGBA()
	for y := y0 + 1; y < p.Height; y++ {
		for x := p.GoldWidth + 1; x < p.Width; x++ {
			if img.At(x, y) == ink {
				return true
			}
		}
	}
	return false
}

func TestRenderWrapsWithMeasureFace(t *testing.T) {
	p, _ := LookupProfile("classic")
	// 41 runes: 287px under the 7px render face (fits the 374px name box on
	// one line), 410px under the 10px measure face (must wrap).
	name := strings.Repeat("a", 20) + " " + strings.Repeat("b", 20)

	narrow, err := NewRenderer(p, testFaces(), NopShaper{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := narrow.Render(name, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got := nameInkBands(img, p); got != 1 {
		t.Fatalf("render-face measurement: %d line bands, want 1", got)
	}

	faces := testFaces()
	faces.NameMeasure = fixedFace{}
	wide, err := NewRenderer(p, faces, NopShaper{})
	if err != nil {
		t.Fatal(err)
	}
	img, err = wide.Render(name, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got := nameInkBands(img, p); got != 2 {
		t.Fatalf("measure-face measurement: %d line bands, want 2", got)
	}
}

func TestRenderOverflowPolicies(t *testing.T) {
	// 45 words wrap to 15 three-word lines, far taller than the compact
	// profile's name box.
	name := strings.TrimSpace(strings.Repeat("word ", 45))

	truncating, _ := LookupProfile("compact")
	if truncating.Overflow != OverflowTruncate {
		t.Fatalf("compact overflow = %q, want truncate", truncating.Overflow)
	}
	// The name box is centered on (H-M)/2 with height H-M.
	boxY := (truncating.Height - truncating.NameBoxMargin) / 2
	boxBottom := boxY + (truncating.Height-truncating.NameBoxMargin)/2

	r, err := NewRenderer(truncating, testFaces(), NopShaper{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(name, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if nameInkBelow(img, truncating, boxBottom) {
		t.Error("truncate policy drew name ink below the box bottom")
	}

	ignoring, _ := LookupProfile("compact")
	ignoring.Overflow = OverflowIgnore
	r, err = NewRenderer(ignoring, testFaces(), NopShaper{})
	if err != nil {
		t.Fatal(err)
	}
	img, err = r.Render(name, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !nameInkBelow(img, ignoring, boxBottom) {
		t.Error("ignore policy did not draw the overflowing lines")
	}
}

func TestRenderRejectsNegativePrice(t *testing.T) {
	r, _ := testRenderer(t, "classic")
	if _, err := r.Render("x", -1); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestNewRendererValidation(t *testing.T) {
	if _, err := NewRenderer(nil, testFaces(), nil); err == nil {
		t.Error("expected error for nil profile")
	}

	p, _ := LookupProfile("classic")
	faces := testFaces()
	faces.Price = nil
	if _, err := NewRenderer(p, faces, nil); err == nil {
		t.Error("expected error for missing face")
	}

	broken, _ := LookupProfile("classic")
	broken.Width = 0
	if _, err := NewRenderer(broken, testFaces(), nil); err == nil {
		t.Error("expected error for invalid profile")
	}
}

func TestSaveImageFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	dir := t.TempDir()

	jpegProfile := defaultProfile("t")
	path := filepath.Join(dir, "nested", "label.jpg")
	if err := SaveImage(img, path, jpegProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("jpeg file not written: %v", err)
	}

	pngProfile := defaultProfile("t")
	pngProfile.Format = ImageFormatPNG
	path = filepath.Join(dir, "label.png")
	if err := SaveImage(img, path, pngProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("png file not written: %v", err)
	}
}
