package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkrueger/scanmerge/constants"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFolder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.pdf")
	touch(t, dir, "a.PDF")
	touch(t, dir, "receipt.jpg")
	touch(t, dir, "photo.JPEG")
	touch(t, dir, "notes.txt")
	touch(t, dir, "archive.png")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "nested"), "inner.pdf")

	files, stats, err := ScanFolder(dir)
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"a.PDF", "b.pdf", "photo.JPEG", "receipt.jpg"}
	if len(files) != len(wantNames) {
		t.Fatalf("got %d files, want %d", len(files), len(wantNames))
	}
	for i, want := range wantNames {
		if files[i].Name != want {
			t.Errorf("files[%d].Name = %q, want %q", i, files[i].Name, want)
		}
	}
	if files[0].Format != constants.PDF || files[2].Format != constants.IMAGE {
		t.Errorf("unexpected formats: %+v", files)
	}
	if stats.Matched != 4 || stats.Skipped != 3 {
		t.Errorf("stats = %+v, want 4 matched, 3 skipped", stats)
	}
	// nested/inner.pdf must not be picked up
	for _, f := range files {
		if f.Name == "inner.pdf" {
			t.Error("subdirectory content was scanned")
		}
	}
}

func TestScanFolder_Errors(t *testing.T) {
	if _, _, err := ScanFolder("  "); err == nil {
		t.Error("expected error for blank folder")
	}
	if _, _, err := ScanFolder(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing folder")
	}
}
