package golabel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one product row from a source: a display name and the raw price
// cell. Index is the 1-based spreadsheet row, kept for log messages.
type Record struct {
	Name  string
	Price string
	Index int
}

// RecordSource yields the product records to generate labels for.
type RecordSource interface {
	Records() ([]Record, error)
}

// XLSXSource reads products from an Excel workbook. The first sheet's first
// row is the header; NameColumn and PriceColumn name the two columns to read.
type XLSXSource struct {
	Path        string
	NameColumn  string
	PriceColumn string
}

// Default column headers of the shop's product export.
const (
	DefaultNameColumn  = "نام محصول"
	DefaultPriceColumn = "قیمت"
)

// NewXLSXSource creates a source for path using the default column headers.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{
		Path:        path,
		NameColumn:  DefaultNameColumn,
		PriceColumn: DefaultPriceColumn,
	}
}

// Records implements RecordSource. Rows with an empty name cell are skipped;
// a missing file or a header without both columns is an error.
func (s *XLSXSource) Records() ([]Record, error) {
	wb, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: no sheets", s.Path)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %s is empty", s.Path, sheet)
	}

	nameCol, priceCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case s.NameColumn:
			nameCol = i
		case s.PriceColumn:
			priceCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%s: column %q not found", s.Path, s.NameColumn)
	}
	if priceCol < 0 {
		return nil, fmt.Errorf("%s: column %q not found", s.Path, s.PriceColumn)
	}

	var records []Record
	for i, row := range rows[1:] {
		name := cellAt(row, nameCol)
		if name == "" {
			continue
		}
		records = append(records, Record{
			Name:  name,
			Price: cellAt(row, priceCol),
			Index: i + 2, // 1-based, after the header
		})
	}
	return records, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ParsePrice extracts a non-negative integer amount from a raw price cell.
// Persian and Arabic-Indic digits are accepted alongside ASCII; everything
// except digits and the decimal point is stripped, so "45,000",
// "۴۵۰۰۰ تومان" and "45000.0" all parse to 45000. Fractions are truncated
// toward zero.
func ParsePrice(raw string) (int64, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9' || r == '.':
			b.WriteRune(r)
		case r >= '۰' && r <= '۹': // Persian digits
			b.WriteRune('0' + r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			b.WriteRune('0' + r - '٠')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price %q", raw)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", raw, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return int64(f), nil
}

// CleanFilename turns a product name into a safe file stem: characters that
// are invalid in Windows or Unix filenames are removed and whitespace runs
// collapse to single underscores.
func CleanFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*', '\t', '\n', '\r':
			return -1
		}
		return r
	}, name)
	return strings.Join(strings.Fields(cleaned), "_")
}
