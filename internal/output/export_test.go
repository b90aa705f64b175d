package output

import (
	"bytes"
	"errors"
	"testing"

	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

func sampleTasks() []service.Task {
	return []service.Task{
		{ID: "2", Title: "Walk dog", Done: true, CreatedAt: "2024-05-01T10:00:00"},
		{ID: "1", Title: `Buy "oat" milk, 2l`},
	}
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "export_json", buf.Bytes())
}

func TestExport_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), "CSV"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "export_csv", buf.Bytes())
}

func TestExport_PDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatPDF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("expected a PDF document, got %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, sampleTasks(), "xml")

	var unknown *ErrUnknownFormat
	if !errors.As(err, &unknown) || unknown.Format != "xml" {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err.Error() != `unknown format "xml" (want one of json, csv, pdf)` {
		t.Errorf("unexpected message: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written")
	}
}
