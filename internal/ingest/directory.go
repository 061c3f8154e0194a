// Package ingest discovers the source files of a run. Only direct
// children of the folder are considered; subdirectories are ignored.
package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkrueger/scanmerge/constants"
)

// SourceFile is one discovered input, immutable for the run.
type SourceFile struct {
	Path   string // folder-relative files keep their full join path
	Name   string
	Format string // constants.PDF | constants.IMAGE
}

// ScanStats aggregates the outcome of a folder scan.
type ScanStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// ScanFolder lists the direct children of folder and returns the PDF
// and image sources in directory order (name order, as os.ReadDir
// sorts). Entries with other extensions and subdirectories are
// skipped, not errors.
func ScanFolder(folder string) ([]SourceFile, ScanStats, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ScanStats{}, errors.New("folder path is required")
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, ScanStats{}, err
	}

	var files []SourceFile
	var stats ScanStats
	for _, e := range entries {
		stats.Scanned++
		if e.IsDir() {
			stats.Skipped++
			continue
		}
		format := constants.MapExtToFormat(filepath.Ext(e.Name()))
		if format == "" {
			stats.Skipped++
			continue
		}
		stats.Matched++
		files = append(files, SourceFile{
			Path:   filepath.Join(folder, e.Name()),
			Name:   e.Name(),
			Format: format,
		})
	}
	return files, stats, nil
}
