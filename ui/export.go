package ui

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/JoseExp44/StockWebApp/domain/chart"
)

// handleExport writes the visible chart as an Excel workbook: one Date
// column plus one column per drawn dataset, in surface order.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	snap := session.Chart.Snapshot()
	if !snap.ChartLive {
		http.Error(w, "no chart to export", http.StatusConflict)
		return
	}

	book, err := buildWorkbook(snap)
	if err != nil {
		a.log.Error("building export workbook: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	defer book.Close()

	filename := fmt.Sprintf("%s_%s_%s.xlsx", snap.Inputs.Ticker, snap.Inputs.Start, snap.Inputs.End)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := book.Write(w); err != nil {
		a.log.Error("writing export workbook: %v", err)
	}
}

// buildWorkbook lays the snapshot out on one sheet
func buildWorkbook(snap chart.Snapshot) (*excelize.File, error) {
	book := excelize.NewFile()
	const sheet = "Chart"
	index, err := book.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	book.SetActiveSheet(index)
	if err := book.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []interface{}{"Date"}
	for _, d := range snap.Datasets {
		header = append(header, d.Label)
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, label := range snap.AxisLabels {
		row := []interface{}{label}
		for _, d := range snap.Datasets {
			if i < len(d.Data) {
				row = append(row, d.Data[i])
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return book, nil
}
