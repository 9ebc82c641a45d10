package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FlaggedColumn is the extra CSV export column listing flagged field keys.
const FlaggedColumn = "_flagged"

// Highlight colors used in the XLSX export.
const (
	flaggedFill  = "F8D7DA"
	flaggedFont  = "721C24"
	headingFill  = "E9ECEF"
	idColWidth   = 6
	dataColWidth = 18
)

// WriteXLSX writes the validated table as an Excel workbook: a heading row
// followed by one row per NormalizedRow, with flagged cells filled red.
func WriteXLSX(w io.Writer, heading Heading, rows []NormalizedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headingFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create heading style: %w", err)
	}
	flagStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: flaggedFont},
		Fill: excelize.Fill{Type: "pattern", Color: []string{flaggedFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create flagged style: %w", err)
	}

	cols := heading.Columns()
	for i, label := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return fmt.Errorf("write heading: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheet, first, last, headStyle); err != nil {
		return fmt.Errorf("style heading: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) error {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			return f.SetCellValue(sheet, cell, value)
		}

		if err := set(1, row.ID); err != nil {
			return fmt.Errorf("write row %d: %w", row.ID, err)
		}
		for _, fld := range Fields {
			col := int(fld) + 2
			c := row.Cells[fld]
			if err := set(col, c.Value); err != nil {
				return fmt.Errorf("write row %d: %w", row.ID, err)
			}
			if !c.Flagged {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col, r)
			if err := f.SetCellStyle(sheet, cell, cell, flagStyle); err != nil {
				return fmt.Errorf("style row %d: %w", row.ID, err)
			}
		}
		if row.DuplicateWith > 0 {
			if err := set(len(cols), row.DuplicateWith); err != nil {
				return fmt.Errorf("write row %d: %w", row.ID, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(cols))
	_ = f.SetColWidth(sheet, "A", "A", idColWidth)
	_ = f.SetColWidth(sheet, "B", lastCol, dataColWidth)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the validated table as CSV. A trailing _flagged column
// lists the keys of flagged fields, separated by ";".
func WriteCSV(w io.Writer, heading Heading, rows []NormalizedRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append(heading.Columns(), FlaggedColumn)); err != nil {
		return fmt.Errorf("write heading: %w", err)
	}

	for _, row := range rows {
		flagged := row.FlaggedFields()
		keys := make([]string, len(flagged))
		for i, f := range flagged {
			keys[i] = f.Key()
		}
		if err := cw.Write(append(row.Values(), strings.Join(keys, ";"))); err != nil {
			return fmt.Errorf("write row %d: %w", row.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
