package golabel

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Shaper prepares logically-ordered text for measurement and drawing.
// The layout engine is script-agnostic: it hands every candidate line to the
// shaper and measures whatever comes back. For right-to-left scripts the
// returned string is the visual form (contextual glyphs, visual order) that
// a codepoint-level drawer can paint left to right verbatim.
type Shaper interface {
	Display(s string) string
}

// NopShaper returns text unchanged. Suitable for Latin labels and tests.
type NopShaper struct{}

// Display implements Shaper.
func (NopShaper) Display(s string) string { return s }

// PersianShaper converts logical Persian/Arabic text into its visual form:
// letters are substituted with their contextual presentation forms
// (including the mandatory lam-alef ligatures), then directional runs are
// reordered for display, keeping embedded numbers and Latin fragments
// left-to-right.
type PersianShaper struct{}

// Display implements Shaper.
func (PersianShaper) Display(s string) string {
	return reorderVisual(reshapeArabic(s))
}

// reshapeArabic substitutes each Arabic-script letter with the presentation
// form matching its joining context. ZWNJ breaks joining and is dropped;
// ZWJ forces joining and is dropped. Combining marks are transparent: they
// neither join nor break joining and are carried through unchanged.
func reshapeArabic(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	prevJoins := false // previous letter took an initial or medial form

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == zwnj:
			prevJoins = false
			continue
		case r == zwj:
			prevJoins = true
			continue
		case isTransparent(r):
			out = append(out, r)
			continue
		}

		forms, ok := presentationForms[r]
		if !ok {
			out = append(out, r)
			prevJoins = false
			continue
		}

		// Mandatory lam-alef ligature.
		if r == arabicLam {
			if j, alef := nextLetter(runes, i+1); alef != 0 {
				if lig, found := lamAlefLigatures[alef]; found {
					if prevJoins {
						out = append(out, lig[formFinal])
					} else {
						out = append(out, lig[formIsolated])
					}
					// Marks between lam and alef stay attached after the ligature.
					out = append(out, runes[i+1:j]...)
					i = j
					prevJoins = false
					continue
				}
			}
		}

		form := formIsolated
		nextAccepts := nextAcceptsJoin(runes, i+1)
		switch {
		case prevJoins && nextAccepts && forms[formMedial] != 0:
			form = formMedial
		case prevJoins && forms[formFinal] != 0:
			form = formFinal
		case nextAccepts && forms[formInitial] != 0:
			form = formInitial
		}
		out = append(out, forms[form])
		prevJoins = form == formInitial || form == formMedial
	}
	return string(out)
}

// nextLetter returns the index and value of the next non-transparent rune at
// or after i, or (0, 0) when none remains.
func nextLetter(runes []rune, i int) (int, rune) {
	for ; i < len(runes); i++ {
		if !isTransparent(runes[i]) {
			return i, runes[i]
		}
	}
	return 0, 0
}

// nextAcceptsJoin reports whether the letter following position i can take a
// connection from its predecessor (i.e. has a final form).
func nextAcceptsJoin(runes []rune, i int) bool {
	for ; i < len(runes); i++ {
		r := runes[i]
		if isTransparent(r) {
			continue
		}
		if r == zwnj {
			return false
		}
		if r == zwj {
			return true
		}
		forms, ok := presentationForms[r]
		return ok && forms[formFinal] != 0
	}
	return false
}

// isTransparent reports whether r is a combining mark (harakat etc.) that is
// invisible to joining.
func isTransparent(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// reorderVisual rewrites a logically-ordered string into visual order for an
// RTL paragraph: directional runs are emitted in reverse order, runes inside
// RTL runs are reversed (combining marks stay attached to their base), and
// left-to-right runs (Latin, digits) are kept intact. Strings without any
// strong RTL character are returned unchanged.
//
// This is a single-level resolution, not the full bidi algorithm; label text
// is one short paragraph with no embeddings or isolates, for which run
// reversal around a right-to-left base is exact.
func reorderVisual(s string) string {
	runes := []rune(s)
	if !hasRTL(runes) {
		return s
	}

	ltr := resolveLTR(runes)

	out := make([]rune, 0, len(runes))
	end := len(runes)
	for end > 0 {
		start := end - 1
		for start > 0 && ltr[start-1] == ltr[end-1] {
			start--
		}
		seg := runes[start:end]
		if ltr[start] {
			out = append(out, seg...)
		} else {
			out = appendReversed(out, seg)
		}
		end = start
	}
	return string(out)
}

func hasRTL(runes []rune) bool {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		if c := p.Class(); c == bidi.R || c == bidi.AL {
			return true
		}
	}
	return false
}

// resolveLTR marks each rune as belonging to a left-to-right segment.
// Strong L and European/Arabic numbers are LTR; strong R/AL are RTL;
// combining marks inherit their base; remaining neutrals (spaces,
// punctuation) are LTR only when flanked by LTR on both sides, otherwise
// they take the RTL paragraph direction.
func resolveLTR(runes []rune) []bool {
	const (
		dirNeutral = iota
		dirLTR
		dirRTL
	)
	dirs := make([]int, len(runes))
	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L, bidi.EN, bidi.AN:
			dirs[i] = dirLTR
		case bidi.R, bidi.AL:
			dirs[i] = dirRTL
		case bidi.NSM:
			if i > 0 {
				dirs[i] = dirs[i-1]
			} else {
				dirs[i] = dirNeutral
			}
		default:
			dirs[i] = dirNeutral
		}
	}

	ltr := make([]bool, len(runes))
	for i := range runes {
		switch dirs[i] {
		case dirLTR:
			ltr[i] = true
		case dirRTL:
			ltr[i] = false
		default:
			prev := dirNeutral
			for j := i - 1; j >= 0; j-- {
				if dirs[j] != dirNeutral {
					prev = dirs[j]
					break
				}
			}
			next := dirNeutral
			for j := i + 1; j < len(runes); j++ {
				if dirs[j] != dirNeutral {
					next = dirs[j]
					break
				}
			}
			ltr[i] = prev == dirLTR && next == dirLTR
		}
	}
	return ltr
}

// appendReversed appends seg to out in reverse order, keeping each base rune
// together with its trailing combining marks.
func appendReversed(out []rune, seg []rune) []rune {
	type cluster struct{ start, end int }
	clusters := make([]cluster, 0, len(seg))
	for i := 0; i < len(seg); {
		j := i + 1
		for j < len(seg) && isTransparent(seg[j]) {
			j++
		}
		clusters = append(clusters, cluster{i, j})
		i = j
	}
	for i := len(clusters) - 1; i >= 0; i-- {
		out = append(out, seg[clusters[i].start:clusters[i].end]...)
	}
	return out
}
