package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// PivotTable writes the pivot with a Total column and a Total row.
func PivotTable(w io.Writer, p model.PivotTable, title string) error {
	if _, err := fmt.Fprintln(w, FormatTitle(title)); err != nil {
		return err
	}
	if p.Empty() {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No income for the selected years and taxa."))
		return err
	}

	headers := append([]string{p.RowAxis()}, p.ColumnKeys...)
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(p.RowKeys)+1)
	for _, rk := range p.RowKeys {
		row := make([]string, 0, len(headers))
		row = append(row, rk)
		for _, ck := range p.ColumnKeys {
			row = append(row, Money(p.Cell(rk, ck)))
		}
		rows = append(rows, append(row, Money(p.RowTotal(rk))))
	}

	totals := make([]string, 0, len(headers))
	totals = append(totals, "Total")
	for _, ck := range p.ColumnKeys {
		totals = append(totals, Money(p.ColumnTotal(ck)))
	}
	rows = append(rows, append(totals, Money(p.Total())))

	lastRow, lastCol := len(rows)-1, len(headers)-1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == lastRow || col == lastCol:
				if col == 0 {
					return CellStyle.Bold(true)
				}
				return TotalStyle
			case col == 0:
				return CellStyle
			default:
				return NumberStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
