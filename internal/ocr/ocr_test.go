package ocr

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// fakeRunner stubs the external binaries. Keyed by binary name so one
// fake can serve pdftoppm and tesseract in the same extraction.
type fakeRunner struct {
	stdout map[string]string
	errs   map[string]error
	calls  []string
	// writeFiles maps binary name -> suffix appended to the output
	// prefix (last arg), to simulate pdftoppm dropping a png.
	writeFiles map[string]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	if suffix, ok := f.writeFiles[name]; ok && len(args) > 0 {
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+suffix, []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
	}
	if err, ok := f.errs[name]; ok {
		return nil, []byte("boom"), err
	}
	return []byte(f.stdout[name]), nil, nil
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{}, nil)
	e.runner = r
	return e
}

func TestTextLayer_PageCount(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{
		"pdftotext": "page one RE-2024-01\ftwo\fthree",
	}}
	e := newTestExtractor(r)

	text, pages, err := e.TextLayer(context.Background(), "in.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if !strings.Contains(text, "RE-2024-01") {
		t.Errorf("text layer lost content: %q", text)
	}
}

func TestTextLayer_EngineFailure(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{"pdftotext": errors.New("exit 1")}}
	e := newTestExtractor(r)

	if _, _, err := e.TextLayer(context.Background(), "in.pdf"); err == nil {
		t.Fatal("expected error from failing pdftotext")
	}
}

func TestImageOCR_NormalizesOutput(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{
		"tesseract": "Beleg\t19.11.2024\r\n\r\n\r\n\r\nEnde   hier  ",
	}}
	e := newTestExtractor(r)

	got, err := e.ImageOCR(context.Background(), "img.jpg")
	if err != nil {
		t.Fatal(err)
	}
	want := "Beleg 19.11.2024\n\nEnde hier"
	if got != want {
		t.Errorf("ImageOCR = %q, want %q", got, want)
	}
}

func TestPageOCR_RasterizeThenRecognize(t *testing.T) {
	r := &fakeRunner{
		stdout:     map[string]string{"tesseract": "RE-2024-07"},
		writeFiles: map[string]string{"pdftoppm": "-1.png"},
	}
	e := newTestExtractor(r)

	got, err := e.PageOCR(context.Background(), "scan.pdf", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "RE-2024-07" {
		t.Errorf("PageOCR = %q", got)
	}
	if r.calls[0] != "pdftoppm" || r.calls[1] != "tesseract" {
		t.Errorf("call order = %v", r.calls)
	}
}

func TestPageOCR_NoImageProduced(t *testing.T) {
	r := &fakeRunner{} // pdftoppm succeeds but writes nothing
	e := newTestExtractor(r)

	if _, err := e.PageOCR(context.Background(), "scan.pdf", 1); err == nil {
		t.Fatal("expected error when no page image was produced")
	}
}

func TestPageOCR_RejectsBadPageNumber(t *testing.T) {
	e := newTestExtractor(&fakeRunner{})
	if _, err := e.PageOCR(context.Background(), "scan.pdf", 0); err == nil {
		t.Fatal("expected error for page 0")
	}
}
