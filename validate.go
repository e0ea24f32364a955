package golabel

import (
	"fmt"
	"strings"
)

// Validate checks the profile for structural issues and returns an error
// describing all problems found, or nil if the profile is usable.
func (p *Profile) Validate() error {
	var errs []string

	if p.Width <= 0 {
		errs = append(errs, "width must be positive")
	}
	if p.Height <= 0 {
		errs = append(errs, "height must be positive")
	}
	if p.DPI <= 0 {
		errs = append(errs, "dpi must be positive")
	}
	if p.GoldWidth <= 0 || p.GoldWidth > p.Width {
		errs = append(errs, "gold panel width must be positive and fit the label")
	}
	if p.GoldHeight <= 0 || p.GoldHeight > p.Height {
		errs = append(errs, "gold panel height must be positive and fit the label")
	}
	if p.NameBoxWidth() <= 0 {
		errs = append(errs, "no room left for the product name (check margins and gold panel width)")
	}
	if p.FontFile == "" {
		errs = append(errs, "font file is not set")
	}
	for _, size := range []struct {
		name  string
		value float64
	}{
		{"name-size", p.NameSize},
		{"price-size", p.PriceSize},
		{"plus-size", p.PlusSize},
		{"tax-size", p.TaxSize},
	} {
		if size.value <= 0 {
			errs = append(errs, size.name+" must be positive")
		}
	}
	if p.LineSpacing < 0 {
		errs = append(errs, "line-spacing must not be negative")
	}
	if p.MaxWordsPerLine < 0 {
		errs = append(errs, "max-words must not be negative")
	}
	if p.Overflow != OverflowIgnore && p.Overflow != OverflowTruncate {
		errs = append(errs, fmt.Sprintf("unknown overflow policy %q", p.Overflow))
	}
	if p.JPEGQuality < 1 || p.JPEGQuality > 100 {
		errs = append(errs, "quality must be between 1 and 100")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("profile %s invalid:\n  %s", p.Name, strings.Join(errs, "\n  "))
}

// NameBoxWidth is the horizontal room available to the product name after
// the gold panel and the margins are taken out.
func (p *Profile) NameBoxWidth() int {
	return p.Width - p.GoldWidth - p.NameLeftMargin - p.InnerMargin - p.NameRightPad
}
