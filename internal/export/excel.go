// Package export renders archive entries as a spreadsheet.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finsight/internal/domain"
)

const (
	summarySheet = "Analyses"
	chartSheet   = "Chart Data"
)

// BuildArchiveWorkbook builds an xlsx workbook with one row per saved
// analysis and, on a second sheet, the numeric series of each entry's chart
// data block. Entries whose chart data does not decode are listed without
// series rows.
func BuildArchiveWorkbook(entries []domain.SavedAnalysis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(chartSheet); err != nil {
		return nil, fmt.Errorf("creating chart sheet: %w", err)
	}

	header := []interface{}{"ID", "Company", "Saved At", "Analysis"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	chartHeader := []interface{}{"Company", "Year", "Revenue", "Net Income"}
	if err := f.SetSheetRow(chartSheet, "A1", &chartHeader); err != nil {
		return nil, fmt.Errorf("writing chart header: %w", err)
	}

	chartRow := 2
	for i, entry := range entries {
		row := []interface{}{
			entry.ID.String(),
			entry.Company,
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Analysis,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}

		series := decodeSeries(entry.ChartData)
		if series == nil {
			continue
		}
		for j, year := range series.Years {
			row := []interface{}{entry.Company, year, at(series.Revenue, j), at(series.NetIncome, j)}
			cell := fmt.Sprintf("A%d", chartRow)
			if err := f.SetSheetRow(chartSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("writing chart row %d: %w", chartRow, err)
			}
			chartRow++
		}
	}

	return f, nil
}

// decodeSeries is a best-effort typed decode; the parser guarantees JSON
// syntax only, so shape mismatches simply skip the entry.
func decodeSeries(raw json.RawMessage) *domain.ChartSeries {
	if len(raw) == 0 {
		return nil
	}
	var series domain.ChartSeries
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil
	}
	if len(series.Years) == 0 {
		return nil
	}
	return &series
}

// The three series need not be equal length; missing values render blank.
func at(values []float64, i int) interface{} {
	if i < len(values) {
		return values[i]
	}
	return ""
}
