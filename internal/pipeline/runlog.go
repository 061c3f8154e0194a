package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/dkrueger/scanmerge/internal/ingest"
)

// unpairedFile pairs an invoice id with the single file that carried it.
type unpairedFile struct {
	id   string
	name string
}

// writeRunLog overwrites the run log: a header, then one line per
// unidentified file (folder-scan order), then one line per unpaired
// file (group order). The two line prefixes are part of the contract;
// downstream users grep for them.
func writeRunLog(path string, unidentified []ingest.SourceFile, unpaired []unpairedFile) error {
	var b strings.Builder
	b.WriteString("Files without an identifiable invoice number or not paired:\n")
	for _, f := range unidentified {
		fmt.Fprintf(&b, "No invoice found: %s\n", f.Name)
	}
	for _, u := range unpaired {
		fmt.Fprintf(&b, "Unpaired for invoice %s: %s\n", u.id, u.name)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
