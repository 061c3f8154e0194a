package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dkrueger/scanmerge/internal/pipeline"
)

func TestRunReportXLSX(t *testing.T) {
	res := &pipeline.RunResult{
		RunID:  uuid.New(),
		Folder: "/scans/april",
		Merged: 1,
		Outcomes: []pipeline.FileOutcome{
			{Name: "a.pdf", Pipeline: "invoice", Outcome: pipeline.OutcomeMerged, Key: "RE-2024-01", Output: "/scans/april/output_pdfs/Invoice_RE-2024-01.pdf"},
			{Name: "b.pdf", Pipeline: "invoice", Outcome: pipeline.OutcomeUnpaired, Key: "RE-2024-02"},
			{Name: "r.jpg", Pipeline: "receipt", Outcome: pipeline.OutcomeFailed, Err: "disk full"},
		},
	}

	data, err := NewService(nil).RunReportXLSX(res)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Run", "A1")
	require.NoError(t, err)
	assert.Equal(t, "File", got)

	got, err = f.GetCellValue("Run", "D2")
	require.NoError(t, err)
	assert.Equal(t, "RE-2024-01", got)

	got, err = f.GetCellValue("Run", "C3")
	require.NoError(t, err)
	assert.Equal(t, pipeline.OutcomeUnpaired, got)

	got, err = f.GetCellValue("Run", "F4")
	require.NoError(t, err)
	assert.Equal(t, "disk full", got)
}

func TestRunReportXLSX_EmptyRun(t *testing.T) {
	res := &pipeline.RunResult{RunID: uuid.New(), Folder: "/empty"}
	data, err := NewService(nil).RunReportXLSX(res)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
