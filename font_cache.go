package golabel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// fontKey uniquely identifies a font face by name and pixel size.
type fontKey struct {
	name string
	size float64
}

// FontCache manages TrueType font loading and face caching.
// It scans the label fonts directory for .ttf and .otf files, then caches
// parsed fonts and rendered faces. Face sizes are pixel sizes: faces are
// built at 72 DPI so that one point equals one pixel, matching the pixel
// geometry used by label profiles.
type FontCache struct {
	mu           sync.RWMutex
	dirs         []string                  // directories to search for fonts
	fonts        map[string]*opentype.Font // lowercase font name -> parsed font
	faces        map[fontKey]font.Face     // cached render faces (HintingFull)
	measureFaces map[fontKey]font.Face     // cached measure faces (HintingNone)
	scanned      bool
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// NewFontCache creates a FontCache that searches the given directories.
func NewFontCache(dirs ...string) *FontCache {
	return &FontCache{
		dirs:         dirs,
		fonts:        make(map[string]*opentype.Font),
		faces:        make(map[fontKey]font.Face),
		measureFaces: make(map[fontKey]font.Face),
	}
}

// Require checks that a font with the given name is available. Label
// generation must not start with a missing font, so callers treat an error
// here as fatal.
func (fc *FontCache) Require(name string) error {
	fc.ensureScanned()
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	if _, ok := fc.fonts[fontKeyName(name)]; !ok {
		return fmt.Errorf("font %q not found in %s", name, strings.Join(fc.dirs, ", "))
	}
	return nil
}

// GetFace returns a render font.Face for the given font name and pixel size.
// Returns nil if the font is not available.
func (fc *FontCache) GetFace(name string, sizePx float64) font.Face {
	return fc.face(name, sizePx, font.HintingFull, fc.faces)
}

// GetMeasureFace returns a font.Face with HintingNone for text measurement.
// Line wrapping decisions use unhinted (ideal) glyph advances so that the
// same text wraps identically regardless of the render hinting mode.
func (fc *FontCache) GetMeasureFace(name string, sizePx float64) font.Face {
	return fc.face(name, sizePx, font.HintingNone, fc.measureFaces)
}

func (fc *FontCache) face(name string, sizePx float64, hinting font.Hinting, cache map[fontKey]font.Face) font.Face {
	fc.ensureScanned()

	key := fontKey{name: fontKeyName(name), size: sizePx}

	fc.mu.RLock()
	if face, ok := cache[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	f := fc.fonts[key.name]
	fc.mu.RUnlock()
	if f == nil {
		return nil
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72, // 1pt == 1px, sizes are pixels
		Hinting: hinting,
	})
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	cache[key] = face
	fc.mu.Unlock()
	return face
}

// LoadFont manually loads a TrueType/OpenType font file and registers it
// under the given name. Returns an error if the file is missing or exceeds
// maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.fonts[fontKeyName(name)] = f
	fc.mu.Unlock()
	return nil
}

// fontKeyName normalizes a font lookup name: lowercase, extension dropped,
// so "PeydaFaNum-Bold.ttf" and "peydafanum-bold" address the same font.
func fontKeyName(name string) string {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)
	if ext == ".ttf" || ext == ".otf" {
		lower = strings.TrimSuffix(lower, ext)
	}
	return lower
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirDepth(dir, 0)
	}
}

func (fc *FontCache) scanDirDepth(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirDepth(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}

		// Check file size before reading
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		fc.fonts[fontKeyName(lower)] = f
	}
}
