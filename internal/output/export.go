package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasklist/internal/service"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatCSV, FormatPDF}

// PDFTitle heads the PDF export.
const PDFTitle = "Tasks"

// ErrUnknownFormat is returned for an export format not in Formats.
type ErrUnknownFormat struct {
	Format string
}

func (e *ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown format %q (want one of %s)", e.Format, strings.Join(Formats, ", "))
}

// Export writes tasks to w in the given format, in list order.
func Export(w io.Writer, tasks []service.Task, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return exportJSON(w, tasks)
	case FormatCSV:
		return exportCSV(w, tasks)
	case FormatPDF:
		return exportPDF(w, tasks)
	default:
		return &ErrUnknownFormat{Format: format}
	}
}

func exportJSON(w io.Writer, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func exportCSV(w io.Writer, tasks []service.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "done", "created_at"}); err != nil {
		return err
	}
	for _, t := range tasks {
		record := []string{t.ID.String(), t.Title, strconv.FormatBool(t.Done), t.CreatedAt}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportPDF(w io.Writer, tasks []service.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(PDFTitle, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, PDFTitle)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, EmptyList, "0", "L", false)
	}
	for i, t := range tasks {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, mark, tr(normalizeTitle(t.Title)))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	return pdf.Output(w)
}
