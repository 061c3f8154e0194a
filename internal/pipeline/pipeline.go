// Package pipeline sequences a run: scan the folder, group and merge
// the invoice PDFs, then convert the photographed receipts. One
// Processor instance owns a single run; nothing is shared across runs.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dkrueger/scanmerge/constants"
	"github.com/dkrueger/scanmerge/internal/common"
	"github.com/dkrueger/scanmerge/internal/ingest"
	"github.com/dkrueger/scanmerge/internal/pdf"
)

// TextExtractor is the recognition collaborator. The concrete
// implementation shells out to tesseract/pdftoppm/pdftotext; tests
// substitute canned text.
type TextExtractor interface {
	TextLayer(ctx context.Context, path string) (text string, pages int, err error)
	PageOCR(ctx context.Context, path string, pageNr int) (string, error)
	ImageOCR(ctx context.Context, path string) (string, error)
}

// PDFEngine is the PDF manipulation collaborator.
type PDFEngine interface {
	PageCount(path string) (int, error)
	MergeFiles(sources []string, outPath string) ([]pdf.SkippedSource, error)
	ImageToPDF(imagePath, outPath string) error
}

// Outcome classifies what happened to one source file.
const (
	OutcomeMerged       = "merged"
	OutcomeUnpaired     = "unpaired"
	OutcomeUnidentified = "unidentified"
	OutcomeConverted    = "converted"
	OutcomeFailed       = "failed"
)

// FileOutcome is one row of the run record: a source file, the pipeline
// that handled it and what came of it.
type FileOutcome struct {
	Name     string
	Pipeline string // "invoice" | "receipt"
	Outcome  string
	Key      string // invoice id or date stem, when one was found
	Output   string // produced file, when one was written
	Err      string
}

// RunResult aggregates a whole run for the summary and the report.
type RunResult struct {
	RunID        uuid.UUID
	Folder       string
	Stats        ingest.ScanStats
	Merged       int
	Unpaired     int
	Unidentified int
	Converted    int
	Fallbacks    int // receipts named by filename because no date matched
	Failures     int
	Outcomes     []FileOutcome
	Duration     time.Duration
}

// Processor owns the collaborators and configuration of one run.
type Processor struct {
	logger    *slog.Logger
	extractor TextExtractor
	engine    PDFEngine
	cfg       *common.Config
}

func NewProcessor(logger *slog.Logger, extractor TextExtractor, engine PDFEngine, cfg *common.Config) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	return &Processor{logger: logger, extractor: extractor, engine: engine, cfg: cfg}
}

// Run executes both pipelines over folder and returns the run record.
// Per-file failures are recorded and logged, never returned; only a
// failure to scan the folder itself aborts the run.
func (p *Processor) Run(ctx context.Context, folder string) (*RunResult, error) {
	start := time.Now()
	res := &RunResult{RunID: uuid.New(), Folder: folder}
	logger := p.logger.With("run_id", res.RunID)

	files, stats, err := ingest.ScanFolder(folder)
	if err != nil {
		return nil, common.WrapError(err, "scan folder")
	}
	res.Stats = stats
	logger.Info("folder scanned", "folder", folder, "matched", stats.Matched, "skipped", stats.Skipped)

	var pdfs, images []ingest.SourceFile
	for _, f := range files {
		switch f.Format {
		case constants.PDF:
			pdfs = append(pdfs, f)
		case constants.IMAGE:
			images = append(images, f)
		}
	}

	p.processInvoices(ctx, logger, folder, pdfs, res)
	p.convertReceipts(ctx, logger, folder, images, res)

	res.Duration = time.Since(start)
	logger.Info("run complete",
		"merged", res.Merged,
		"unpaired", res.Unpaired,
		"unidentified", res.Unidentified,
		"converted", res.Converted,
		"failures", res.Failures,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (p *Processor) record(res *RunResult, o FileOutcome) {
	res.Outcomes = append(res.Outcomes, o)
}

func (p *Processor) mergedDir(folder string) string {
	return filepath.Join(folder, p.cfg.Output.MergedDirName)
}

func (p *Processor) convertedDir(folder string) string {
	return filepath.Join(folder, p.cfg.Output.ConvertedDirName)
}
