package golabel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Faces bundles the render faces for the four text fields of a label.
// NameMeasure is the unhinted face used for the product name's wrapping
// decisions; when nil the render face measures too.
type Faces struct {
	Name        font.Face
	NameMeasure font.Face
	Price       font.Face
	Plus        font.Face
	Tax         font.Face
}

// FacesFromCache resolves the profile's font at its four field sizes.
// Returns an error if the font is missing from the cache.
func FacesFromCache(p *Profile, cache *FontCache) (Faces, error) {
	if err := cache.Require(p.FontFile); err != nil {
		return Faces{}, err
	}
	return Faces{
		Name:        cache.GetFace(p.FontFile, p.NameSize),
		NameMeasure: cache.GetMeasureFace(p.FontFile, p.NameSize),
		Price:       cache.GetFace(p.FontFile, p.PriceSize),
		Plus:        cache.GetFace(p.FontFile, p.PlusSize),
		Tax:         cache.GetFace(p.FontFile, p.TaxSize),
	}, nil
}

// Renderer draws shelf labels for one profile. It is stateless between
// Render calls; the faces and shaper are shared, read-only collaborators.
type Renderer struct {
	profile *Profile
	faces   Faces
	shaper  Shaper
	printer *message.Printer
}

// NewRenderer creates a Renderer for the given profile. A nil shaper
// defaults to PersianShaper.
func NewRenderer(p *Profile, faces Faces, shaper Shaper) (*Renderer, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if faces.Name == nil || faces.Price == nil || faces.Plus == nil || faces.Tax == nil {
		return nil, fmt.Errorf("profile %s: missing font face", p.Name)
	}
	if faces.NameMeasure == nil {
		faces.NameMeasure = faces.Name
	}
	if shaper == nil {
		shaper = PersianShaper{}
	}
	return &Renderer{
		profile: p,
		faces:   faces,
		shaper:  shaper,
		// Western digits with comma thousand separators, as on the shop's
		// printed tags.
		printer: message.NewPrinter(language.English),
	}, nil
}

// Render draws one label: dark background, gold price panel on the left,
// formatted price with currency, plus sign and tax note inside the panel,
// and the wrapped product name centered in the remaining area.
func (r *Renderer) Render(name string, price int64) (image.Image, error) {
	if price < 0 {
		return nil, fmt.Errorf("negative price %d", price)
	}
	p := r.profile

	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{p.Background.RGBA()}, image.Point{}, draw.Src)

	// Gold panel flush with the left edge, vertically centered.
	goldTop := (p.Height - p.GoldHeight) / 2
	goldRect := image.Rect(0, goldTop, p.GoldWidth, goldTop+p.GoldHeight)
	draw.Draw(img, goldRect, &image.Uniform{p.Gold.RGBA()}, image.Point{}, draw.Src)

	ink := p.Ink.RGBA()
	priceAreaWidth := p.GoldWidth - p.InnerMargin
	centerX := p.InnerMargin + priceAreaWidth/2

	priceText := r.shaper.Display(r.printer.Sprintf("%d", price) + " " + p.Currency)
	r.drawStringCentered(img, priceText, r.faces.Price, ink, centerX+p.PriceNudgeX, p.PriceY)
	r.drawStringCentered(img, "+", r.faces.Plus, ink, centerX, p.PlusY)
	r.drawStringCentered(img, r.shaper.Display(p.TaxText), r.faces.Tax, ink, centerX, p.TaxY)

	// Product name block to the right of the panel.
	box := LayoutBox{
		X:         p.GoldWidth + p.NameLeftMargin,
		Y:         (p.Height - p.NameBoxMargin) / 2,
		MaxWidth:  p.NameBoxWidth(),
		MaxHeight: p.Height - p.NameBoxMargin,
	}
	laid := LayoutText(name, box, r.faces.NameMeasure, r.shaper, LayoutOptions{
		MaxWordsPerLine: p.MaxWordsPerLine,
		LineSpacing:     p.LineSpacing,
	})

	nameInk := &image.Uniform{p.NameInk.RGBA()}
	bottom := box.Y + box.MaxHeight/2
	for _, line := range laid.Lines {
		if p.Overflow == OverflowTruncate && line.Top+line.Height > bottom {
			break
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  nameInk,
			Face: r.faces.Name,
			Dot:  fixed.P(line.X, line.Y),
		}
		d.DrawString(line.Text)
	}

	return img, nil
}

// drawStringCentered draws text with its advance width centered on cx and
// its ink box centered on cy.
func (r *Renderer) drawStringCentered(dst *image.RGBA, text string, face font.Face, c color.RGBA, cx, cy int) {
	bounds, advance := font.BoundString(face, text)
	mid := (bounds.Min.Y + bounds.Max.Y) / 2
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(cx-advance.Ceil()/2, cy-mid.Round()),
	}
	d.DrawString(text)
}

// SaveImage writes img to path in the profile's format, creating parent
// directories as needed.
func SaveImage(img image.Image, path string, p *Profile) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch p.Format {
	case ImageFormatPNG:
		return png.Encode(f, img)
	default:
		quality := p.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 95
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	}
}
