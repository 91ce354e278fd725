package history

import (
	"fmt"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/xuri/excelize/v2"
)

const (
	excelSheetName = "Shipments"
	excelTableName = "ShipmentHistory"
)

var excelHeader = []any{"CartonNumber", "TrackingNumber"}

// BuildExcelExport renders shipments as a single-sheet workbook with one formatted table of
// carton and tracking numbers, in the order given.
func BuildExcelExport(shipments []model.Shipment) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(excelSheetName, "A1", &excelHeader); err != nil {
		return nil, err
	}
	for i, shipment := range shipments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{shipment.CartonNumber, shipment.TrackingNumber}
		if err := f.SetSheetRow(excelSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	// A table needs at least one data row below its header.
	lastRow := max(len(shipments)+1, 2)
	if err := f.AddTable(excelSheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:B%d", lastRow),
		Name:      excelTableName,
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(excelSheetName, "A", "B", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
