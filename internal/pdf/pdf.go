// Package pdf wraps the pdfcpu primitives the pipelines rely on: page
// counting, multi-file merge and image-to-PDF import.
package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Engine performs the PDF-level operations of a run.
type Engine struct {
	conf   *model.Configuration
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	conf := model.NewDefaultConfiguration()
	// Scanner output is frequently sloppy; relaxed validation keeps
	// readable-but-imperfect PDFs in the run.
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf, logger: logger}
}

// PageCount returns the number of pages in the PDF at path.
func (e *Engine) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// SkippedSource records a merge input that could not be read.
type SkippedSource struct {
	Path string
	Err  error
}

// MergeFiles concatenates the pages of sources, in order, into a single
// PDF at outPath. A source that fails the read check is skipped and
// reported in the returned slice; the merge proceeds with the rest.
// Only an empty readable set or a write failure is an error.
func (e *Engine) MergeFiles(sources []string, outPath string) ([]SkippedSource, error) {
	var readable []string
	var skipped []SkippedSource
	for _, src := range sources {
		if _, err := api.PageCountFile(src); err != nil {
			e.logger.Error("unreadable merge source", "path", src, "error", err)
			skipped = append(skipped, SkippedSource{Path: src, Err: err})
			continue
		}
		readable = append(readable, src)
	}
	if len(readable) == 0 {
		return skipped, fmt.Errorf("merge %s: no readable sources", filepath.Base(outPath))
	}
	if err := api.MergeCreateFile(readable, outPath, false, e.conf); err != nil {
		return skipped, fmt.Errorf("merge %s: %w", filepath.Base(outPath), err)
	}
	return skipped, nil
}

// ImageToPDF embeds the image at imagePath as a single-page PDF at
// outPath. The image is re-encoded as truecolor first so grayscale,
// palette and CMYK inputs all end up PDF-compatible.
func (e *Engine) ImageToPDF(imagePath, outPath string) error {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(imagePath), err)
	}
	// Clone always yields NRGBA, the truecolor normalization step.
	img := imaging.Clone(src)

	tmpDir, err := os.MkdirTemp("", "scanmerge-img-*")
	if err != nil {
		return err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", rerr)
		}
	}()

	normalized := filepath.Join(tmpDir, "page.jpg")
	if err := imaging.Save(img, normalized, imaging.JPEGQuality(92)); err != nil {
		return fmt.Errorf("normalize %s: %w", filepath.Base(imagePath), err)
	}
	if err := api.ImportImagesFile([]string{normalized}, outPath, nil, e.conf); err != nil {
		return fmt.Errorf("import %s: %w", filepath.Base(imagePath), err)
	}
	return nil
}
