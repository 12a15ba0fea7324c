package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetReport = "Report"

func renderXLSX(w io.Writer, d Document) error {
	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName("Sheet1", sheetReport); err != nil {
		return err
	}

	head, err := x.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"10B981"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := x.SetSheetRow(sheetReport, "A1", &[]interface{}{"Soil analysis report", d.GeneratedAt.Format("2006-01-02 15:04 MST")}); err != nil {
		return err
	}
	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := x.SetSheetRow(sheetReport, "A3", &header); err != nil {
		return err
	}
	if err := x.SetCellStyle(sheetReport, "A3", "C3", head); err != nil {
		return err
	}
	for i, r := range rows(d) {
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := x.SetSheetRow(sheetReport, cell, &[]interface{}{r.Section, r.Item, r.Value}); err != nil {
			return err
		}
	}
	_ = x.SetColWidth(sheetReport, "A", "A", 20)
	_ = x.SetColWidth(sheetReport, "B", "B", 20)
	_ = x.SetColWidth(sheetReport, "C", "C", 80)
	_ = x.SetPanes(sheetReport, &excelize.Panes{Freeze: true, YSplit: 3, TopLeftCell: "A4", ActivePane: "bottomLeft"})

	return x.Write(w)
}
