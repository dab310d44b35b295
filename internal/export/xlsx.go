package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// PivotSheet is the worksheet name used for pivot workbooks.
const PivotSheet = "Pivot"

// Sheet names are capped at 31 characters, so the report title goes in a cell.
const titleRow = 1

// WritePivotXLSX writes the pivot as a single-sheet workbook: the title in
// A1, the header on row 3, then one row per key plus a totals row and column.
func WritePivotXLSX(w io.Writer, table model.PivotTable, title string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), PivotSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := setCell(f, 1, titleRow, title); err != nil {
		return err
	}

	headerRow := titleRow + 2
	header := append([]string{table.RowAxis()}, table.ColumnKeys...)
	header = append(header, "Total")
	for i, h := range header {
		if err := setCell(f, i+1, headerRow, h); err != nil {
			return err
		}
	}

	r := headerRow + 1
	for _, row := range table.RowKeys {
		values := make([]any, 0, len(table.ColumnKeys)+2)
		values = append(values, row)
		for _, col := range table.ColumnKeys {
			values = append(values, table.Cell(row, col).InexactFloat64())
		}
		values = append(values, table.RowTotal(row).InexactFloat64())
		if err := setRow(f, r, values); err != nil {
			return err
		}
		r++
	}

	if !table.Empty() {
		values := []any{"Total"}
		for _, col := range table.ColumnKeys {
			values = append(values, table.ColumnTotal(col).InexactFloat64())
		}
		values = append(values, table.Total().InexactFloat64())
		if err := setRow(f, r, values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve column: %w", err)
	}
	if err := f.SetCellStyle(PivotSheet, "A1", fmt.Sprintf("%s%d", lastCol, headerRow), bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if !table.Empty() {
		if err := f.SetCellStyle(PivotSheet, fmt.Sprintf("B%d", headerRow+1), fmt.Sprintf("%s%d", lastCol, r), money); err != nil {
			return fmt.Errorf("failed to style values: %w", err)
		}
	}
	if err := f.SetColWidth(PivotSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for i, v := range values {
		if err := setCell(f, i+1, row, v); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellValue(PivotSheet, cell, v); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}
