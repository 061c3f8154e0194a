package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// TextLayer extracts the embedded text layer of a PDF via pdftotext and
// returns the normalized text plus the page count. Scanned PDFs usually
// yield an empty or near-empty layer; callers then fall back to PageOCR.
func (e *Extractor) TextLayer(ctx context.Context, path string) (string, int, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))
	}
	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return Normalize(text), pages, nil
}

// PageOCR rasterizes a single PDF page (1-based) and recognizes it.
// Rasterizing page by page lets the caller stop as soon as one page
// yields what it was looking for, instead of paying OCR cost for the
// whole document up front.
func (e *Extractor) PageOCR(ctx context.Context, path string, pageNr int) (string, error) {
	if pageNr < 1 {
		return "", fmt.Errorf("page number %d out of range", pageNr)
	}
	tmpDir, err := os.MkdirTemp("", "scanmerge-pp-*")
	if err != nil {
		return "", err
	}
	defer func(dir string) {
		if rerr := os.RemoveAll(dir); rerr != nil {
			e.logger.Warn("failed to remove temp dir", "path", dir, "error", rerr)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	nr := strconv.Itoa(pageNr)
	// pdftoppm -f N -l N -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", nr, "-l", nr, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm numbers its output (page-1.png, page-01.png, ...); take
	// whatever single file it produced.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for page %d", pageNr)
	}
	img := matches[0]

	if e.cfg.Enhance {
		enhanced, cleanup, eerr := e.enhanceImage(img)
		if eerr != nil {
			e.logger.Warn("page enhancement failed", "path", path, "page", pageNr, "error", eerr)
		} else {
			defer cleanup()
			img = enhanced
		}
	}
	return e.tesseractOCR(ctx, img)
}
