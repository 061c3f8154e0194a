package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dkrueger/scanmerge/internal/ingest"
	"github.com/dkrueger/scanmerge/internal/parse"
)

// invoiceGroups is an insertion-ordered multimap invoice id -> files.
// Iteration over ids follows first-seen order; files within a group
// keep folder-scan order. Both orders feed the log, so they must be
// deterministic.
type invoiceGroups struct {
	order []string
	byID  map[string][]ingest.SourceFile
}

func newInvoiceGroups() *invoiceGroups {
	return &invoiceGroups{byID: make(map[string][]ingest.SourceFile)}
}

func (g *invoiceGroups) add(id string, f ingest.SourceFile) {
	if _, seen := g.byID[id]; !seen {
		g.order = append(g.order, id)
	}
	g.byID[id] = append(g.byID[id], f)
}

// processInvoices runs the invoice pipeline: extract an id per PDF,
// group by id, merge groups of two or more, record the rest.
func (p *Processor) processInvoices(ctx context.Context, logger *slog.Logger, folder string, pdfs []ingest.SourceFile, res *RunResult) {
	groups := newInvoiceGroups()
	var unidentified []ingest.SourceFile

	for _, f := range pdfs {
		id := p.extractInvoiceID(ctx, logger, f.Path)
		if id == "" {
			logger.Info("no invoice number found", "path", f.Path)
			unidentified = append(unidentified, f)
			continue
		}
		logger.Info("invoice number found", "path", f.Path, "invoice_id", id)
		groups.add(id, f)
	}

	outDir := p.mergedDir(folder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Error("cannot create output directory", "path", outDir, "error", err)
		// Without the output namespace every merge would fail anyway;
		// record all grouped files as failures and keep the log intact.
		for _, id := range groups.order {
			for _, f := range groups.byID[id] {
				res.Failures++
				p.record(res, FileOutcome{Name: f.Name, Pipeline: "invoice", Outcome: OutcomeFailed, Key: id, Err: err.Error()})
			}
		}
		p.writeInvoiceLog(logger, folder, unidentified, nil, res)
		return
	}

	var unpaired []unpairedFile
	for _, id := range groups.order {
		members := groups.byID[id]
		if len(members) < 2 {
			f := members[0]
			logger.Info("unpaired invoice", "invoice_id", id, "path", f.Path)
			unpaired = append(unpaired, unpairedFile{id: id, name: f.Name})
			res.Unpaired++
			p.record(res, FileOutcome{Name: f.Name, Pipeline: "invoice", Outcome: OutcomeUnpaired, Key: id})
			continue
		}
		p.mergeGroup(logger, outDir, id, members, res)
	}

	p.writeInvoiceLog(logger, folder, unidentified, unpaired, res)
}

// extractInvoiceID returns the first invoice id found in the PDF, or ""
// when none is found or the file cannot be processed. The text layer is
// tried first; scanned documents then go through per-page OCR, stopping
// at the first page that yields a match.
func (p *Processor) extractInvoiceID(ctx context.Context, logger *slog.Logger, path string) string {
	text, pages, err := p.extractor.TextLayer(ctx, path)
	if err != nil {
		logger.Warn("text layer extraction failed", "path", path, "error", err)
	} else if id := parse.FindInvoiceID(text); id != "" {
		return id
	}

	if pages == 0 {
		n, err := p.engine.PageCount(path)
		if err != nil {
			logger.Error("unreadable pdf", "path", path, "error", err)
			return ""
		}
		pages = n
	}
	if limit := p.cfg.OCR.MaxPages; limit > 0 && pages > limit {
		logger.Warn("page cap applied", "path", path, "pages", pages, "cap", limit)
		pages = limit
	}

	for pageNr := 1; pageNr <= pages; pageNr++ {
		text, err := p.extractor.PageOCR(ctx, path, pageNr)
		if err != nil {
			// Recognition failures are expected; this page simply has
			// no text for us.
			logger.Warn("page recognition failed", "path", path, "page", pageNr, "error", err)
			continue
		}
		if id := parse.FindInvoiceID(text); id != "" {
			return id
		}
	}
	return ""
}

// mergeGroup concatenates the group's pages in member order into
// Invoice_<id>.pdf. Unreadable members are skipped and reported; a
// write failure fails only this group.
func (p *Processor) mergeGroup(logger *slog.Logger, outDir, id string, members []ingest.SourceFile, res *RunResult) {
	outPath := filepath.Join(outDir, fmt.Sprintf("Invoice_%s.pdf", id))
	sources := make([]string, len(members))
	for i, m := range members {
		sources[i] = m.Path
	}

	skipped, err := p.engine.MergeFiles(sources, outPath)
	skippedSet := make(map[string]string, len(skipped))
	for _, s := range skipped {
		skippedSet[s.Path] = s.Err.Error()
	}
	if err != nil {
		logger.Error("merge failed", "invoice_id", id, "output", outPath, "error", err)
		for _, m := range members {
			res.Failures++
			p.record(res, FileOutcome{Name: m.Name, Pipeline: "invoice", Outcome: OutcomeFailed, Key: id, Err: err.Error()})
		}
		return
	}

	logger.Info("created merged pdf", "invoice_id", id, "output", outPath, "sources", len(sources)-len(skipped))
	res.Merged++
	for _, m := range members {
		if reason, ok := skippedSet[m.Path]; ok {
			res.Failures++
			p.record(res, FileOutcome{Name: m.Name, Pipeline: "invoice", Outcome: OutcomeFailed, Key: id, Err: reason})
			continue
		}
		p.record(res, FileOutcome{Name: m.Name, Pipeline: "invoice", Outcome: OutcomeMerged, Key: id, Output: outPath})
	}
}

func (p *Processor) writeInvoiceLog(logger *slog.Logger, folder string, unidentified []ingest.SourceFile, unpaired []unpairedFile, res *RunResult) {
	for _, f := range unidentified {
		res.Unidentified++
		p.record(res, FileOutcome{Name: f.Name, Pipeline: "invoice", Outcome: OutcomeUnidentified})
	}

	logPath := filepath.Join(folder, p.cfg.Output.LogName)
	if err := writeRunLog(logPath, unidentified, unpaired); err != nil {
		logger.Error("cannot write run log", "path", logPath, "error", err)
		res.Failures++
		return
	}
	logger.Info("run log written", "path", logPath,
		"unidentified", len(unidentified), "unpaired", len(unpaired))
}
