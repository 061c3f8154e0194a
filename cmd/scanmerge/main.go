package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dkrueger/scanmerge/internal/common"
	"github.com/dkrueger/scanmerge/internal/export"
	"github.com/dkrueger/scanmerge/internal/ocr"
	"github.com/dkrueger/scanmerge/internal/pdf"
	"github.com/dkrueger/scanmerge/internal/pipeline"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := common.LoadConfig()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: scanmerge <folder_path>")
		os.Exit(2)
	}
	folder := os.Args[1]

	if err := cfg.ApplyFolderConfig(folder); err != nil {
		logger.Error("invalid folder configuration", "folder", folder, "error", err)
		os.Exit(2)
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Pdftotext:   cfg.OCR.Pdftotext,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		DPI:         cfg.OCR.DPI,
		Enhance:     cfg.OCR.Enhance,
	}, logger)
	engine := pdf.NewEngine(logger)
	processor := pipeline.NewProcessor(logger, extractor, engine, cfg)

	ctx := context.Background()
	res, err := processor.Run(ctx, folder)
	if err != nil {
		logger.Error("run failed", "folder", folder, "error", err)
		os.Exit(1)
	}

	if cfg.Report.Enabled {
		reportPath := filepath.Join(folder, cfg.Report.FileName)
		data, rerr := export.NewService(logger).RunReportXLSX(res)
		if rerr == nil {
			rerr = os.WriteFile(reportPath, data, 0o644)
		}
		if rerr != nil {
			logger.Error("failed to write run report", "path", reportPath, "error", rerr)
		} else {
			logger.Info("run report written", "path", reportPath)
		}
	}

	fmt.Printf("Run complete!\n")
	fmt.Printf("- Files matched: %d\n", res.Stats.Matched)
	fmt.Printf("- Merged invoices: %d\n", res.Merged)
	fmt.Printf("- Unpaired: %d\n", res.Unpaired)
	fmt.Printf("- Without invoice number: %d\n", res.Unidentified)
	fmt.Printf("- Converted images: %d\n", res.Converted)
	fmt.Printf("- Failures: %d\n", res.Failures)
	fmt.Printf("- Log: %s\n", filepath.Join(folder, cfg.Output.LogName))
}
