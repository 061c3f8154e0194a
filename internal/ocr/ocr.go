// Package ocr wraps the external text-recognition toolchain: tesseract
// for recognition, pdftoppm for rasterizing scanned PDFs and pdftotext
// for PDFs that already carry a text layer. Engine failures are plain
// errors; callers in the pipeline downgrade them to "no text" because
// imprecise or absent OCR output is an expected outcome, not a fault.
package ocr

import "log/slog"

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"

	Language    string // default "eng"
	TessdataDir string
	DPI         int // rasterization DPI for scanned PDFs, default 300

	// Enhance runs the image through a grayscale/contrast/sharpen chain
	// before recognition. Helps low-quality phone photos, costs time.
	Enhance bool
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}
