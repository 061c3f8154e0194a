// Package export renders the run record as an XLSX workbook, one row
// per processed source file.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dkrueger/scanmerge/internal/pipeline"
)

// Service produces XLSX bytes for run reports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RunReportXLSX returns an XLSX workbook (as bytes) describing res.
func (s *Service) RunReportXLSX(res *pipeline.RunResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Run"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Pipeline",
		"Outcome",
		"Matched Key",
		"Output Path",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, o := range res.Outcomes {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, o.Name)
		write(2, o.Pipeline)
		write(3, o.Outcome)
		write(4, o.Key)
		write(5, o.Output)
		write(6, o.Err)
		row++
	}

	// Summary block under the table.
	row++
	summary := [][2]any{
		{"Run ID", res.RunID.String()},
		{"Folder", res.Folder},
		{"Merged outputs", res.Merged},
		{"Unpaired", res.Unpaired},
		{"Unidentified", res.Unidentified},
		{"Converted images", res.Converted},
		{"Filename fallbacks", res.Fallbacks},
		{"Failures", res.Failures},
		{"Duration", res.Duration.Round(time.Millisecond).String()},
	}
	for _, kv := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, row)
		valCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, keyCell, kv[0])
		_ = f.SetCellValue(sheet, valCell, kv[1])
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 32) // file
	_ = f.SetColWidth(sheet, "C", "C", 14) // outcome
	_ = f.SetColWidth(sheet, "D", "D", 16) // key
	_ = f.SetColWidth(sheet, "E", "E", 48) // output path
	_ = f.SetColWidth(sheet, "F", "F", 40) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("report rendered",
		"rows", len(res.Outcomes),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
