package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"meetflow/internal/app/model"
)

func TestToExcel(t *testing.T) {
	meetings := []model.Meeting{
		{
			ID:            "m-1",
			Title:         "Planning",
			SourceFile:    "planning.mp3",
			DurationSec:   90.5,
			Language:      "en",
			Transcript:    "Hello, this is a test",
			Summary:       "Planned the sprint.",
			ModelSize:     "base",
			AnalysisModel: "llama-3.1-8b-instant",
			Status:        model.StatusCompleted,
			CreatedAt:     time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
			ActionItems: []model.ActionItem{
				{Task: "Write the RFC", Owner: "Kim"},
				{Task: "Review capacity", Owner: model.OwnerUnassigned},
			},
		},
		{
			ID:         "m-2",
			Title:      "Silent recording",
			SourceFile: "silence.wav",
			Status:     model.StatusTranscriptOnly,
			CreatedAt:  time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
		},
	}

	outputPath := filepath.Join(t.TempDir(), "meetings.xlsx")
	require.NoError(t, ToExcel(meetings, outputPath))

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	sheet := file.Sheets[0]
	assert.Equal(t, "Meetings", sheet.Name)
	require.Len(t, sheet.Rows, 3, "header plus two meetings")
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "m-1", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "Planning", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "90.50", sheet.Rows[1].Cells[4].Value)
	assert.Equal(t, model.StatusCompleted, sheet.Rows[1].Cells[8].Value)
	assert.Equal(t, model.StatusTranscriptOnly, sheet.Rows[2].Cells[8].Value)

	items := file.Sheets[1]
	assert.Equal(t, "Action Items", items.Name)
	require.Len(t, items.Rows, 3, "header plus two items")
	assert.Equal(t, "Write the RFC", items.Rows[1].Cells[2].Value)
	assert.Equal(t, "Kim", items.Rows[1].Cells[3].Value)
	assert.Equal(t, model.OwnerUnassigned, items.Rows[2].Cells[3].Value)
}

func TestWriteExcel(t *testing.T) {
	meetings := []model.Meeting{
		{ID: "m-9", Title: "Retro", Status: model.StatusCompleted, CreatedAt: time.Now()},
	}

	outputPath := filepath.Join(t.TempDir(), "stream.xlsx")
	out, err := os.Create(outputPath)
	require.NoError(t, err)
	require.NoError(t, WriteExcel(meetings, out))
	require.NoError(t, out.Close())

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, "m-9", file.Sheets[0].Rows[1].Cells[0].Value)
}

func TestToExcelEmptyList(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ToExcel(nil, outputPath))

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Len(t, file.Sheets[0].Rows, 1, "header only")
}
