package golabel

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The profile DSL is a brace-delimited list of `key: value...` entries:
//
//	profile compact {
//		size: 709 413
//		gold-area: 358 236
//		font: "PeydaFaNum-Bold.ttf"
//		background: #1a1a1a
//		overflow: truncate
//	}
//
// Every key is optional; omitted keys keep the classic defaults.

var (
	profileLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6})`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}:;]`},
	})

	profileParser = participle.MustBuild[profileDocument](
		participle.Lexer(profileLexer),
		participle.Elide("Whitespace", "LineComment"),
		participle.Unquote("String"),
	)
)

// profileDocument is the root AST node for a profile file.
type profileDocument struct {
	Profiles []*profileDecl `parser:"Newline* ( @@ Newline* )*"`
}

// profileDecl is one named profile block.
type profileDecl struct {
	Name    string          `parser:"'profile' @Ident '{' Newline*"`
	Entries []*profileEntry `parser:"( @@ ( ';' | Newline )+ )* '}'"`
}

// profileEntry is a single `key: value...` line.
type profileEntry struct {
	Key    string        `parser:"@Ident ':'"`
	Values []*entryValue `parser:"@@+"`
}

// entryValue is one value token after the colon.
type entryValue struct {
	String *string `parser:"  @String"`
	Color  *string `parser:"| @Color"`
	Number *string `parser:"| @Number"`
	Ident  *string `parser:"| @Ident"`
}

// ParseProfiles parses profile DSL source into named Profiles, each starting
// from the classic defaults.
func ParseProfiles(src string) (map[string]*Profile, error) {
	doc, err := profileParser.ParseString("", src)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*Profile, len(doc.Profiles))
	for _, decl := range doc.Profiles {
		if _, dup := profiles[decl.Name]; dup {
			return nil, fmt.Errorf("profile %s defined twice", decl.Name)
		}
		p := defaultProfile(decl.Name)
		for _, entry := range decl.Entries {
			if err := applyEntry(p, entry); err != nil {
				return nil, fmt.Errorf("profile %s: %w", decl.Name, err)
			}
		}
		profiles[decl.Name] = p
	}
	return profiles, nil
}

func applyEntry(p *Profile, e *profileEntry) error {
	switch e.Key {
	case "size":
		return e.twoInts(&p.Width, &p.Height)
	case "size-cm":
		// Resolved against the profile's dpi; a dpi entry must come first
		// when it differs from the default.
		return e.twoCentimeters(&p.Width, &p.Height, p.DPI)
	case "gold-area":
		return e.twoInts(&p.GoldWidth, &p.GoldHeight)
	case "gold-area-cm":
		return e.twoCentimeters(&p.GoldWidth, &p.GoldHeight, p.DPI)
	case "price-anchor":
		return e.twoInts(&p.PriceY, &p.PriceNudgeX)
	case "dpi":
		return e.oneFloat(&p.DPI)
	case "inner-margin":
		return e.oneInt(&p.InnerMargin)
	case "name-left-margin":
		return e.oneInt(&p.NameLeftMargin)
	case "name-right-pad":
		return e.oneInt(&p.NameRightPad)
	case "name-box-margin":
		return e.oneInt(&p.NameBoxMargin)
	case "line-spacing":
		return e.oneInt(&p.LineSpacing)
	case "max-words":
		return e.oneInt(&p.MaxWordsPerLine)
	case "quality":
		return e.oneInt(&p.JPEGQuality)
	case "plus-y":
		return e.oneInt(&p.PlusY)
	case "tax-y":
		return e.oneInt(&p.TaxY)
	case "name-size":
		return e.oneFloat(&p.NameSize)
	case "price-size":
		return e.oneFloat(&p.PriceSize)
	case "plus-size":
		return e.oneFloat(&p.PlusSize)
	case "tax-size":
		return e.oneFloat(&p.TaxSize)
	case "background":
		return e.oneColor(&p.Background)
	case "gold":
		return e.oneColor(&p.Gold)
	case "ink":
		return e.oneColor(&p.Ink)
	case "name-ink":
		return e.oneColor(&p.NameInk)
	case "font":
		return e.oneString(&p.FontFile)
	case "tax-text":
		return e.oneString(&p.TaxText)
	case "currency":
		return e.oneString(&p.Currency)
	case "overflow":
		ident, err := e.oneIdent()
		if err != nil {
			return err
		}
		switch OverflowPolicy(ident) {
		case OverflowIgnore, OverflowTruncate:
			p.Overflow = OverflowPolicy(ident)
			return nil
		default:
			return fmt.Errorf("overflow: unknown policy %q", ident)
		}
	case "format":
		ident, err := e.oneIdent()
		if err != nil {
			return err
		}
		switch ident {
		case "jpeg", "jpg":
			p.Format = ImageFormatJPEG
		case "png":
			p.Format = ImageFormatPNG
		default:
			return fmt.Errorf("format: unknown format %q", ident)
		}
		return nil
	default:
		return fmt.Errorf("unknown key %q", e.Key)
	}
}

func (e *profileEntry) numbers(n int) ([]float64, error) {
	if len(e.Values) != n {
		return nil, fmt.Errorf("%s: expected %d value(s), got %d", e.Key, n, len(e.Values))
	}
	out := make([]float64, n)
	for i, v := range e.Values {
		if v.Number == nil {
			return nil, fmt.Errorf("%s: expected a number", e.Key)
		}
		f, err := strconv.ParseFloat(*v.Number, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Key, err)
		}
		out[i] = f
	}
	return out, nil
}

func (e *profileEntry) oneInt(dst *int) error {
	nums, err := e.numbers(1)
	if err != nil {
		return err
	}
	*dst = int(nums[0])
	return nil
}

func (e *profileEntry) twoInts(a, b *int) error {
	nums, err := e.numbers(2)
	if err != nil {
		return err
	}
	*a = int(nums[0])
	*b = int(nums[1])
	return nil
}

func (e *profileEntry) twoCentimeters(a, b *int, dpi float64) error {
	nums, err := e.numbers(2)
	if err != nil {
		return err
	}
	*a = CentimeterToPixels(nums[0], dpi)
	*b = CentimeterToPixels(nums[1], dpi)
	return nil
}

func (e *profileEntry) oneFloat(dst *float64) error {
	nums, err := e.numbers(1)
	if err != nil {
		return err
	}
	*dst = nums[0]
	return nil
}

func (e *profileEntry) oneString(dst *string) error {
	if len(e.Values) != 1 || e.Values[0].String == nil {
		return fmt.Errorf("%s: expected a quoted string", e.Key)
	}
	*dst = *e.Values[0].String
	return nil
}

func (e *profileEntry) oneIdent() (string, error) {
	if len(e.Values) != 1 || e.Values[0].Ident == nil {
		return "", fmt.Errorf("%s: expected an identifier", e.Key)
	}
	return *e.Values[0].Ident, nil
}

func (e *profileEntry) oneColor(dst *Color) error {
	if len(e.Values) != 1 {
		return fmt.Errorf("%s: expected one color value", e.Key)
	}
	v := e.Values[0]
	switch {
	case v.Color != nil:
		*dst = NewColor(*v.Color)
	case v.String != nil:
		*dst = NewColor(*v.String)
	default:
		return fmt.Errorf("%s: expected a color", e.Key)
	}
	return nil
}
