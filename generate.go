package golabel

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generator runs a batch: every record from a source becomes one label image
// in OutDir, named after the cleaned product name.
type Generator struct {
	Profile  *Profile
	Renderer *Renderer
	OutDir   string
	// Logger receives per-row progress and skip messages. Nil means the
	// standard logger.
	Logger *log.Logger
}

// Run renders a label for every record and reports how many succeeded and
// how many were skipped. A row with a bad price or a failed render is logged
// and skipped; only source-level failures (unreadable file, missing columns)
// abort the batch.
func (g *Generator) Run(src RecordSource) (succeeded, failed int, err error) {
	logger := g.Logger
	if logger == nil {
		logger = log.Default()
	}

	records, err := src.Records()
	if err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output directory: %w", err)
	}

	for _, rec := range records {
		price, perr := ParsePrice(rec.Price)
		if perr != nil {
			logger.Printf("row %d: %s: skipped: %v", rec.Index, rec.Name, perr)
			failed++
			continue
		}

		img, rerr := g.Renderer.Render(rec.Name, price)
		if rerr != nil {
			logger.Printf("row %d: %s: skipped: %v", rec.Index, rec.Name, rerr)
			failed++
			continue
		}

		stem := CleanFilename(rec.Name)
		if stem == "" {
			stem = fmt.Sprintf("label_%d", rec.Index)
		}
		path := filepath.Join(g.OutDir, stem+g.Profile.Format.Ext())
		if serr := SaveImage(img, path, g.Profile); serr != nil {
			logger.Printf("row %d: %s: skipped: %v", rec.Index, rec.Name, serr)
			failed++
			continue
		}

		logger.Printf("row %d: %s -> %s", rec.Index, rec.Name, path)
		succeeded++
	}

	logger.Printf("done: %d labels written, %d rows skipped", succeeded, failed)
	return succeeded, failed, nil
}
