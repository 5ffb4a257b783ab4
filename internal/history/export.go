package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

// Formats lists every supported export format
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatParquet}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (supported: csv, json, yaml, parquet)", s)
}

// DefaultFilename is the file an export is saved to when none is given
func DefaultFilename(f Format) string {
	return "qr_generation_log." + string(f)
}

// ArchiveRow is the flat parquet layout of one generation log
type ArchiveRow struct {
	ID        int64  `parquet:"id"`
	Filename  string `parquet:"filename"`
	Data      string `parquet:"data"`
	Label     string `parquet:"label"`
	CodeType  string `parquet:"code_type"`
	Date      string `parquet:"date"`
	Time      string `parquet:"time"`
	Location  string `parquet:"location"`
	CreatedAt string `parquet:"created_at"`
	ImageURL  string `parquet:"qr_code_url"`
}

// exportDoc is the yaml layout
type exportDoc struct {
	ExportedAt string                 `yaml:"exported_at"`
	Count      int                    `yaml:"count"`
	Logs       []models.GenerationLog `yaml:"logs"`
}

// Export encodes logs to w. CSV is produced by the service and is not
// handled here.
func Export(w io.Writer, f Format, logs []models.GenerationLog) error {
	switch f {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(logs)
	case FormatYAML:
		return exportYAML(w, logs)
	case FormatParquet:
		return exportParquet(w, logs)
	default:
		return fmt.Errorf("format %s cannot be produced locally", f)
	}
}

func exportYAML(w io.Writer, logs []models.GenerationLog) error {
	doc := exportDoc{
		ExportedAt: time.Now().Format(time.RFC3339),
		Count:      len(logs),
		Logs:       logs,
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}

func exportParquet(w io.Writer, logs []models.GenerationLog) error {
	rows := make([]ArchiveRow, 0, len(logs))
	for _, log := range logs {
		created := ""
		if !log.CreatedAt.IsZero() {
			created = log.CreatedAt.Format(time.RFC3339Nano)
		}
		rows = append(rows, ArchiveRow{
			ID:        log.ID,
			Filename:  log.Filename,
			Data:      log.Data,
			Label:     log.Label,
			CodeType:  log.CodeType,
			Date:      log.Date,
			Time:      log.Time,
			Location:  log.Location,
			CreatedAt: created,
			ImageURL:  log.ImageURL,
		})
	}

	writer := parquet.NewGenericWriter[ArchiveRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
