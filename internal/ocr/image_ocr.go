package ocr

import (
	"context"
	"fmt"
)

// ImageOCR recognizes text in a single image file and returns the
// normalized result. An empty string with nil error is a legitimate
// outcome for a blank or unreadable-but-decodable image.
func (e *Extractor) ImageOCR(ctx context.Context, path string) (string, error) {
	if e.cfg.Enhance {
		enhanced, cleanup, err := e.enhanceImage(path)
		if err != nil {
			// Enhancement is an optimization; fall back to the original.
			e.logger.Warn("image enhancement failed", "path", path, "error", err)
		} else {
			defer cleanup()
			path = enhanced
		}
	}
	return e.tesseractOCR(ctx, path)
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}

	txt := Normalize(string(out))
	e.logger.Debug("image recognized", "path", path, "bytes", len(txt))
	return txt, nil
}
