package golabel

import (
	"strings"

	"golang.org/x/image/font"
)

// LayoutBox is the region a text block is centered in: an anchor point, a
// maximum line width and a maximum block height, all in pixels.
type LayoutBox struct {
	X, Y      int // anchor: lines center horizontally around X, the block vertically on Y
	MaxWidth  int
	MaxHeight int
}

// LayoutOptions tunes the line breaker.
type LayoutOptions struct {
	// MaxWordsPerLine caps the number of words on a line in addition to the
	// width limit. Zero means no cap.
	MaxWordsPerLine int
	// LineSpacing is the gap in pixels between consecutive lines. It is
	// applied strictly between lines, never after the last one.
	LineSpacing int
}

// PlacedLine is one laid-out line, ready to draw.
type PlacedLine struct {
	Text   string // visual (shaper-prepared) text
	X, Y   int    // baseline dot for a font.Drawer
	Top    int    // top edge of the line's ink box
	Width  int    // measured advance width in pixels
	Height int    // ink height in pixels
}

// LayoutResult is the outcome of laying out one text block. It is consumed
// immediately by the renderer; nothing is retained between calls.
type LayoutResult struct {
	Lines       []PlacedLine
	TotalHeight int
}

// LayoutText breaks text into lines no wider than box.MaxWidth (and no
// longer than opts.MaxWordsPerLine words, when set), then centers the block
// vertically on box.Y and each line horizontally around box.X.
//
// text is in logical (reading) order; every measurement and the returned
// line text go through shaper.Display first, so right-to-left scripts wrap
// on their true rendered widths. Breaking is greedy: words are appended to
// the current line until it overflows, then the line minus the last word is
// committed and the word starts the next line. A single word wider than the
// box is committed on its own line as-is — the caller gets an overflowing
// line, not an error, because there is no sensible split point inside a word.
//
// The result is never clipped against box.MaxHeight; deciding what to do
// with an overflowing block (truncate or draw anyway) is the caller's
// policy, based on TotalHeight.
func LayoutText(text string, box LayoutBox, face font.Face, shaper Shaper, opts LayoutOptions) LayoutResult {
	words := strings.Fields(text)
	if len(words) == 0 {
		return LayoutResult{}
	}

	lines := breakLines(words, box.MaxWidth, face, shaper, opts.MaxWordsPerLine)

	type measured struct {
		text          string
		width, height int
		minY          int // ink top relative to baseline, negative above
	}
	ms := make([]measured, len(lines))
	total := 0
	for i, line := range lines {
		prepared := shaper.Display(line)
		bounds, advance := font.BoundString(face, prepared)
		m := measured{
			text:   prepared,
			width:  advance.Ceil(),
			height: (bounds.Max.Y - bounds.Min.Y).Ceil(),
			minY:   bounds.Min.Y.Floor(),
		}
		ms[i] = m
		total += m.height
	}
	total += opts.LineSpacing * (len(lines) - 1)

	out := LayoutResult{
		Lines:       make([]PlacedLine, len(lines)),
		TotalHeight: total,
	}
	top := box.Y - total/2
	for i, m := range ms {
		out.Lines[i] = PlacedLine{
			Text:   m.text,
			X:      box.X + (box.MaxWidth-m.width)/2,
			Y:      top - m.minY,
			Top:    top,
			Width:  m.width,
			Height: m.height,
		}
		top += m.height + opts.LineSpacing
	}
	return out
}

// breakLines greedily packs words into lines bounded by maxWidth pixels and
// maxWords words (0 = unbounded). The committed lines' words, concatenated
// in order, always reconstruct the input sequence.
func breakLines(words []string, maxWidth int, face font.Face, shaper Shaper, maxWords int) []string {
	var lines []string
	var current []string

	for _, word := range words {
		current = append(current, word)
		prepared := shaper.Display(strings.Join(current, " "))
		width := font.MeasureString(face, prepared).Ceil()

		if width > maxWidth || (maxWords > 0 && len(current) > maxWords) {
			if len(current) > 1 {
				current = current[:len(current)-1]
				lines = append(lines, strings.Join(current, " "))
				current = []string{word}
			} else {
				// The word alone overflows; commit it unsplit.
				lines = append(lines, word)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
