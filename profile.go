package golabel

import (
	"fmt"
	"os"
	"sync"
)

// OverflowPolicy decides what happens when the laid-out product-name block
// is taller than its box.
type OverflowPolicy string

const (
	// OverflowIgnore draws every line even past the box. This is what most
	// label formats do: a slightly cramped name beats a missing one.
	OverflowIgnore OverflowPolicy = "ignore"
	// OverflowTruncate silently stops drawing lines once the box height is
	// exceeded.
	OverflowTruncate OverflowPolicy = "truncate"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatJPEG ImageFormat = iota
	ImageFormatPNG
)

// Ext returns the file extension for the format, including the dot.
func (f ImageFormat) Ext() string {
	if f == ImageFormatPNG {
		return ".png"
	}
	return ".jpg"
}

// Profile holds every constant that distinguishes one label format from
// another: pixel geometry, margins, palette, font sizes and the drawing
// anchors inside the gold price panel. All lengths are pixels at the
// profile's DPI.
type Profile struct {
	Name string

	Width  int
	Height int
	DPI    float64

	// InnerMargin is the left margin inside the gold panel for the price
	// block; NameLeftMargin separates the panel from the product name;
	// NameRightPad keeps the name off the right edge beyond InnerMargin.
	InnerMargin    int
	NameLeftMargin int
	NameRightPad   int
	// NameBoxMargin is subtracted from the label height to form the
	// product-name box (and its vertical center).
	NameBoxMargin int

	GoldWidth  int
	GoldHeight int

	Background Color // label background
	Gold       Color // price panel
	Ink        Color // price, plus sign and tax line
	NameInk    Color // product name

	FontFile  string
	NameSize  float64
	PriceSize float64
	PlusSize  float64
	TaxSize   float64

	LineSpacing     int
	MaxWordsPerLine int
	Overflow        OverflowPolicy

	Format      ImageFormat
	JPEGQuality int

	// Anchors inside the gold panel. PriceY/PlusY/TaxY are vertical centers;
	// PriceNudgeX shifts the price off the panel's horizontal center.
	PriceY      int
	PriceNudgeX int
	PlusY       int
	TaxY        int

	TaxText  string // drawn under the plus sign
	Currency string // appended after the formatted price
}

// defaultProfile returns a Profile preloaded with the classic 8.4cm x 4.3cm
// shelf tag constants at 300 DPI. Profile files override individual fields.
func defaultProfile(name string) *Profile {
	return &Profile{
		Name:            name,
		Width:           992, // 8.4 cm at 300 DPI
		Height:          508, // 4.3 cm at 300 DPI
		DPI:             300,
		InnerMargin:     71, // 0.6 cm
		NameLeftMargin:  35, // 0.3 cm
		NameRightPad:    10,
		NameBoxMargin:   40,
		GoldWidth:       502,
		GoldHeight:      289,
		Background:      ColorDarkCharcoal,
		Gold:            ColorGold,
		Ink:             ColorDarkCharcoal,
		NameInk:         ColorGold,
		FontFile:        "PeydaFaNum-Bold.ttf",
		NameSize:        62,
		PriceSize:       64,
		PlusSize:        60,
		TaxSize:         36,
		LineSpacing:     24,
		MaxWordsPerLine: 3,
		Overflow:        OverflowIgnore,
		Format:          ImageFormatJPEG,
		JPEGQuality:     95,
		PriceY:          174,
		PriceNudgeX:     -24,
		PlusY:           238,
		TaxY:            312,
		TaxText:         "%10 مالیات ارزش افزوده",
		Currency:        "تومان",
	}
}

// builtinProfileSrc defines the shipped label formats in the profile DSL.
// "classic" is the original 8.4x4.3 cm tag; "compact" is a 6.0x3.5 cm tag
// for narrow shelf rails and truncates names that do not fit; "wide" is a
// 10.0x4.0 cm tag for promotion rails.
const builtinProfileSrc = `
profile classic {
}

profile compact {
	size: 709 413
	gold-area: 358 236
	inner-margin: 50
	name-left-margin: 25
	name-box-margin: 30
	name-size: 44
	price-size: 46
	plus-size: 42
	tax-size: 26
	line-spacing: 17
	overflow: truncate
	price-anchor: 124 -17
	plus-y: 170
	tax-y: 223
}

profile wide {
	size: 1181 472
	gold-area: 560 269
	inner-margin: 83
	name-left-margin: 35
	name-size: 66
	price-size: 68
	plus-size: 62
	tax-size: 38
	line-spacing: 26
	max-words: 4
	price-anchor: 162 -24
	plus-y: 222
	tax-y: 292
}
`

var builtinProfiles = sync.OnceValue(func() map[string]*Profile {
	profiles, err := ParseProfiles(builtinProfileSrc)
	if err != nil {
		panic(fmt.Sprintf("golabel: built-in profiles: %v", err))
	}
	return profiles
})

// LookupProfile returns a copy of a built-in profile by name.
func LookupProfile(name string) (*Profile, bool) {
	p, ok := builtinProfiles()[name]
	if !ok {
		return nil, false
	}
	clone := *p
	return &clone, true
}

// BuiltinProfileNames lists the names of the shipped profiles.
func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles()))
	for name := range builtinProfiles() {
		names = append(names, name)
	}
	return names
}

// LoadProfiles parses a profile file and returns the profiles it defines,
// validated. Profiles in the file may redefine built-in names.
func LoadProfiles(path string) (map[string]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	profiles, err := ParseProfiles(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}
	return profiles, nil
}
