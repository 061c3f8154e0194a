package ocr

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// enhanceImage applies a document-oriented enhancement chain and writes
// the result next to a temp dir. Returns the enhanced path and a
// cleanup func; call cleanup once OCR is done with the file.
func (e *Extractor) enhanceImage(path string) (string, func(), error) {
	src, err := imaging.Open(path)
	if err != nil {
		return "", nil, err
	}

	// Grayscale for contrast, then contrast/sharpen/brightness to make
	// the glyph edges crisper for the recognizer.
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	tmpDir, err := os.MkdirTemp("", "scanmerge-enh-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "enhanced.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, err
	}
	return out, cleanup, nil
}
