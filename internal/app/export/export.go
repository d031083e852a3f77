package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"meetflow/internal/app/model"
)

// ToExcel writes meetings into a workbook file with one sheet for the
// meetings and one flattened sheet for their action items.
func ToExcel(meetings []model.Meeting, outputFilePath string) error {
	file, err := buildWorkbook(meetings)
	if err != nil {
		return err
	}
	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteExcel streams the same workbook to a writer, for HTTP downloads.
func WriteExcel(meetings []model.Meeting, w io.Writer) error {
	file, err := buildWorkbook(meetings)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(meetings []model.Meeting) (*xlsx.File, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Meetings")
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Title", "Created At", "Source File", "Duration (s)",
		"Language", "Model Size", "Analysis Model", "Status", "Summary", "Transcript", "Error"} {
		headerRow.AddCell().Value = h
	}

	for _, m := range meetings {
		row := sheet.AddRow()
		row.AddCell().Value = m.ID
		row.AddCell().Value = m.Title
		row.AddCell().Value = m.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = m.SourceFile
		row.AddCell().Value = fmt.Sprintf("%.2f", m.DurationSec)
		row.AddCell().Value = m.Language
		row.AddCell().Value = m.ModelSize
		row.AddCell().Value = m.AnalysisModel
		row.AddCell().Value = m.Status
		row.AddCell().Value = m.Summary
		row.AddCell().Value = m.Transcript
		row.AddCell().Value = m.ErrorDetail
	}

	items, err := file.AddSheet("Action Items")
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	itemsHeader := items.AddRow()
	for _, h := range []string{"Meeting ID", "Meeting Title", "Task", "Owner"} {
		itemsHeader.AddCell().Value = h
	}

	for _, m := range meetings {
		for _, item := range m.ActionItems {
			row := items.AddRow()
			row.AddCell().Value = m.ID
			row.AddCell().Value = m.Title
			row.AddCell().Value = item.Task
			row.AddCell().Value = item.Owner
		}
	}

	return file, nil
}
