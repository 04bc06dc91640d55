package bomfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Column aliases accepted for each field, resolved in order
var (
	supplierColumns   = []string{"Supplier", "Supplier Name"}
	spnColumns        = []string{"SPN", "SKU"}
	mpnColumns        = []string{"MPN", "Manufacturer Part Number"}
	quantityColumns   = []string{"Qty", "Quantity"}
	designatorColumns = []string{"Designators"}
)

// Line is one component row of a BOM document
type Line struct {
	LineNumber  int
	Supplier    string
	SPN         string
	MPN         string
	Quantity    decimal.Decimal
	Designators string
}

// PartNumber returns the supplier lookup key, preferring the supplier part
// number over the manufacturer part number
func (l *Line) PartNumber() string {
	if l.SPN != "" {
		return l.SPN
	}
	return l.MPN
}

// SkippedLine records a row excluded from the document
type SkippedLine struct {
	LineNumber int
	Reason     string
}

// Document is a parsed BOM file
type Document struct {
	Lines   []Line
	Skipped []SkippedLine
}

// DelimiterForPath returns the field delimiter implied by the file
// extension. Only .tsv files are tab separated.
func DelimiterForPath(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ReadFile parses the BOM file at path, picking the delimiter by extension
func ReadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bomfile: failed to open %s: %w", path, err)
	}
	defer file.Close()

	return Read(file, DelimiterForPath(path))
}

// Read parses a BOM document from r using the given field delimiter. Rows
// carrying neither a manufacturer nor a supplier part number cannot be
// resolved and are collected in Skipped instead of Lines.
func Read(r io.Reader, delimiter rune) (*Document, error) {
	parser, err := NewParser(r, WithDelimiter(delimiter))
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for _, row := range rows {
		line := Line{
			LineNumber:  row.LineNumber,
			Supplier:    firstValue(row, supplierColumns),
			SPN:         firstValue(row, spnColumns),
			MPN:         firstValue(row, mpnColumns),
			Designators: firstValue(row, designatorColumns),
		}

		if line.SPN == "" && line.MPN == "" {
			doc.Skipped = append(doc.Skipped, SkippedLine{
				LineNumber: row.LineNumber,
				Reason:     "missing both MPN and SPN",
			})
			continue
		}

		line.Quantity = parseQuantity(firstValue(row, quantityColumns))
		doc.Lines = append(doc.Lines, line)
	}

	return doc, nil
}

// firstValue returns the first non-empty value among the aliased columns
func firstValue(row *Row, names []string) string {
	for _, name := range names {
		if v := row.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// parseQuantity decodes a quantity cell. Empty, unparsable, and non-positive
// values fall back to a quantity of one.
func parseQuantity(s string) decimal.Decimal {
	if s == "" {
		return decimal.NewFromInt(1)
	}
	qty, err := decimal.NewFromString(s)
	if err != nil || qty.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return qty
}
