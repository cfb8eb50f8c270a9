package batch

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dshills/deckcritic/internal/engine"
	"github.com/dshills/deckcritic/internal/review"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with one row per item on the Results sheet
// and the batch statistics on the Summary sheet.
func WriteXLSX(path string, results []engine.ItemResult, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("batch.WriteXLSX: %w", err)
	}

	headers := []any{"Deck", "Company", "Target VC", "Mode", "Overall", "Threshold", "Status"}
	for _, d := range review.Dimensions() {
		headers = append(headers, d.Title())
	}
	headers = append(headers, "Failed Checks", "Error")

	rows := [][]any{headers}
	for _, r := range results {
		if r.Err != nil {
			row := make([]any, len(headers))
			row[0] = r.Name
			row[6] = "ERROR"
			row[len(row)-1] = r.Err.Error()
			rows = append(rows, row)
			continue
		}
		res := r.Result
		row := []any{r.Name, res.DeckName, res.TargetVC, string(res.Mode), res.OverallScore, res.PassThreshold, status(res)}
		for _, d := range review.Dimensions() {
			ds, _ := res.Dimension(d)
			row = append(row, ds.Score)
		}
		row = append(row, failedChecks(res))
		rows = append(rows, row)
	}
	if err := writeRows(f, resultsSheet, rows); err != nil {
		return fmt.Errorf("batch.WriteXLSX: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("batch.WriteXLSX: %w", err)
	}
	summary := [][]any{
		{"Metric", "Value"},
		{"Decks", s.Count},
		{"Passed", s.Passed},
		{"Failed", s.Failed},
		{"Errored", s.Errored},
		{"Mean", s.Mean},
		{"Median", s.Median},
		{"Std Dev", s.StdDev},
		{"Min", s.Min},
		{"Max", s.Max},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return fmt.Errorf("batch.WriteXLSX: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("batch.WriteXLSX: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
