package preview

import (
	"fmt"
	"iter"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

const maxSheetRows = 200

// PDF previews the plain text of each page, pulling pages lazily.
var PDF Previewer = Func(func(path string, _ int) (iter.Seq[string], error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	pages := r.NumPage()
	f.Close()

	return func(yield func(string) bool) {
		f, r, err := pdf.Open(path)
		if err != nil {
			yield(errorLine(err))
			return
		}
		defer f.Close()

		for i := 1; i <= pages; i++ {
			page := r.Page(i)
			if page.V.IsNull() {
				continue
			}
			if !yield(fmt.Sprintf("--- Page %d ---", i)) {
				return
			}
			text, err := page.GetPlainText(nil)
			if err != nil {
				if !yield(errorLine(err)) {
					return
				}
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
				if !yield(line) {
					return
				}
			}
		}
	}, nil
})

// Spreadsheet previews every sheet of an .xlsx workbook as a table.
var Spreadsheet Previewer = Func(func(path string, _ int) (iter.Seq[string], error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var lines []string
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}

		lines = append(lines, "Sheet: "+sheet)
		if len(rows) == 0 {
			lines = append(lines, "(empty)")
			continue
		}
		lines = append(lines, strings.Split(sheetTable(rows), "\n")...)
	}
	return fromSlice(lines), nil
})

func sheetTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	truncated := false
	if len(rows) > maxSheetRows {
		rows = rows[:maxSheetRows]
		truncated = true
	}
	for _, cells := range rows {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		tw.AppendRow(row)
	}
	if truncated {
		tw.AppendFooter(table.Row{fmt.Sprintf("first %d rows shown", maxSheetRows)})
	}
	return tw.Render()
}
