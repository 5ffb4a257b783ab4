// Package history presents the generation history as terminal tables and
// export files.
package history

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
)

// EmptyMessage is shown when there is no history to display
const EmptyMessage = "No codes generated yet. Create your first code above!"

// DataWidth is how many characters of encoded data a row shows
const DataWidth = 40

var headers = []string{"Code", "Type", "Data", "Label", "Created", "File"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	typeStyle   = cellStyle.Foreground(lipgloss.Color("#2196F3"))
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("#8a8f98"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// Row is one display-ready history entry
type Row struct {
	ID       int64
	ImageURL string
	Type     string
	Data     string
	FullData string
	Label    string
	Date     string
	Time     string
	File     string
}

// Created joins the service's separately formatted date and time
func (r Row) Created() string {
	return strings.TrimSpace(r.Date + " " + r.Time)
}

// Rows converts logs to display rows, keeping their order
func Rows(logs []models.GenerationLog) []Row {
	rows := make([]Row, 0, len(logs))
	for _, log := range logs {
		label := log.Label
		if label == "" {
			label = "-"
		}
		rows = append(rows, Row{
			ID:       log.ID,
			ImageURL: log.ImageURL,
			Type:     symbology.FormatType(log.CodeType),
			Data:     Truncate(log.Data, DataWidth),
			FullData: log.Data,
			Label:    label,
			Date:     log.Date,
			Time:     log.Time,
			File:     log.Filename,
		})
	}
	return rows
}

// Truncate shortens s to at most max characters, ending in "..." when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// Render writes the history table, or the empty placeholder, to w
func Render(w io.Writer, logs []models.GenerationLog) error {
	if len(logs) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	rows := Rows(logs)
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		image := r.ImageURL
		if image == "" {
			image = "-"
		}
		cells = append(cells, []string{image, r.Type, r.Data, r.Label, r.Created(), r.File})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return typeStyle
			case col == 0 || col == 4:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintf(w, "%s (%d)\n%s\n", titleStyle.Render("Generation History"), len(rows), t.String())
	return err
}

// RenderLatest writes the details of one generation
func RenderLatest(w io.Writer, log models.GenerationLog) error {
	label := log.Label
	if label == "" {
		label = "-"
	}
	lines := [][2]string{
		{"Type", symbology.FormatType(log.CodeType)},
		{"Data", log.Data},
		{"Label", label},
		{"Date", log.Date},
		{"Time", log.Time},
		{"Filename", log.Filename},
		{"Image", log.ImageURL},
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Generated Successfully!"))
	sb.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(&sb, "  %-9s %s\n", l[0]+":", l[1])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
