package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkrueger/scanmerge/internal/ingest"
	"github.com/dkrueger/scanmerge/internal/parse"
)

// convertReceipts runs the JPEG pipeline: recognize each image, name
// its PDF after the first date token (or the original filename when no
// date is found) and convert it. Every failure is per-file.
func (p *Processor) convertReceipts(ctx context.Context, logger *slog.Logger, folder string, images []ingest.SourceFile, res *RunResult) {
	outDir := p.convertedDir(folder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Error("cannot create output directory", "path", outDir, "error", err)
		for _, f := range images {
			res.Failures++
			p.record(res, FileOutcome{Name: f.Name, Pipeline: "receipt", Outcome: OutcomeFailed, Err: err.Error()})
		}
		return
	}

	for _, f := range images {
		p.convertReceipt(ctx, logger, outDir, f, res)
	}
}

func (p *Processor) convertReceipt(ctx context.Context, logger *slog.Logger, outDir string, f ingest.SourceFile, res *RunResult) {
	text, err := p.extractor.ImageOCR(ctx, f.Path)
	if err != nil {
		// Treated as "no text": the conversion still happens, named by
		// the filename fallback.
		logger.Warn("image recognition failed", "path", f.Path, "error", err)
		text = ""
	}

	stem := parse.FindDateToken(text)
	if stem == "" {
		stem = strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		logger.Info("no date found, using file name as base", "path", f.Path, "stem", stem)
		res.Fallbacks++
	}

	outPath := collisionFreePath(outDir, stem)
	if err := p.engine.ImageToPDF(f.Path, outPath); err != nil {
		logger.Error("conversion failed", "path", f.Path, "error", err)
		res.Failures++
		p.record(res, FileOutcome{Name: f.Name, Pipeline: "receipt", Outcome: OutcomeFailed, Key: stem, Err: err.Error()})
		return
	}

	logger.Info("converted image", "path", f.Path, "output", outPath)
	res.Converted++
	p.record(res, FileOutcome{Name: f.Name, Pipeline: "receipt", Outcome: OutcomeConverted, Key: stem, Output: outPath})
}

// collisionFreePath returns <dir>/<stem>.pdf, or <stem>_N.pdf for the
// smallest N that does not collide with an existing file. The scan is
// exhaustive and monotonic, so files converted earlier in the same run
// are never overwritten.
func collisionFreePath(dir, stem string) string {
	path := filepath.Join(dir, stem+".pdf")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", stem, counter))
	}
}
