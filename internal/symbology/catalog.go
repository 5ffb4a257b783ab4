// Package symbology holds the static catalog of barcode and QR families
// the generation service accepts.
package symbology

import "strings"

// Descriptor describes one symbology's capacity and accepted input
type Descriptor struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Supports    string `json:"supports" yaml:"supports"`
	MaxLength   int    `json:"max_length,omitempty" yaml:"max_length,omitempty"` // 0 means no declared limit
	Example     string `json:"example" yaml:"example"`
}

// HasMaxLength reports whether the descriptor declares a length limit
func (d Descriptor) HasMaxLength() bool {
	return d.MaxLength > 0
}

var catalog = []Descriptor{
	{
		ID:          "QR_Model_2",
		Name:        "QR Model 2",
		Description: "Standard QR codes with high capacity",
		Supports:    "Numeric, Alphanumeric, Kanji, Byte (ASCII/UTF-8)",
		MaxLength:   4296,
		Example:     "https://example.com or any text up to 4296 characters",
	},
	{
		ID:          "Micro_QR",
		Name:        "Micro QR",
		Description: "Compact QR for small data applications",
		Supports:    "Numeric, Alphanumeric, Byte",
		MaxLength:   35,
		Example:     "Short text or numbers (max 35 chars)",
	},
	{
		ID:          "QR_Model_1",
		Name:        "QR Model 1",
		Description: "Legacy QR code with lower capacity",
		Supports:    "Numeric, Alphanumeric, Byte",
		MaxLength:   1167,
		Example:     "Legacy format for older systems",
	},
	{
		ID:          "Data_Matrix",
		Name:        "Data Matrix",
		Description: "Excellent for small, dense data on industrial parts",
		Supports:    "ASCII, Extended ASCII",
		MaxLength:   2335,
		Example:     "Product codes, serial numbers",
	},
	{
		ID:          "PDF417",
		Name:        "PDF417",
		Description: "Stacked linear barcode for documents and ID cards",
		Supports:    "ASCII, Binary",
		MaxLength:   1850,
		Example:     "Driver licenses, boarding passes",
	},
	{
		ID:          "Aztec",
		Name:        "Aztec",
		Description: "Used in transport tickets and IDs, no quiet zones required",
		Supports:    "Binary, ASCII",
		MaxLength:   3067,
		Example:     "Train tickets, event passes",
	},
	{
		ID:          "MaxiCode",
		Name:        "MaxiCode",
		Description: "Used in logistics (UPS, shipping labels)",
		Supports:    "ASCII",
		MaxLength:   93,
		Example:     "Shipping labels, package tracking",
	},
	{
		ID:          "DotCode",
		Name:        "DotCode",
		Description: "High-speed printing barcodes",
		Supports:    "ASCII, Binary",
		MaxLength:   113,
		Example:     "Cigarette packs, lottery tickets",
	},
	{
		ID:          "Code128",
		Name:        "Code128",
		Description: "Linear barcode for supply chain and packaging",
		Supports:    "ASCII (all 128 characters)",
		MaxLength:   48,
		Example:     "Product barcodes, inventory",
	},
	{
		ID:          "EAN13",
		Name:        "EAN13",
		Description: "Retail product codes (European)",
		Supports:    "12-digit numeric (13th is checksum)",
		MaxLength:   12,
		Example:     "123456789012",
	},
	{
		ID:          "UPC",
		Name:        "UPC",
		Description: "US retail product codes",
		Supports:    "11-digit numeric (12th is checksum)",
		MaxLength:   11,
		Example:     "12345678901",
	},
	{
		ID:          "Code39",
		Name:        "Code39",
		Description: "Simple linear barcode used in logistics",
		Supports:    "Uppercase letters, digits, - . $ / + % SPACE",
		MaxLength:   43,
		Example:     "PRODUCT-123",
	},
}

// All returns every descriptor in display order. The slice is a copy.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a descriptor by its identifier
func Lookup(id string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IDs returns the identifiers of every descriptor in display order
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, d := range catalog {
		ids = append(ids, d.ID)
	}
	return ids
}

// FormatType turns a code type identifier into a readable label,
// e.g. "Data_Matrix" becomes "Data Matrix".
func FormatType(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
