package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellKind classifies a captured template cell. Unrecognized kinds are
// stamped as blanks.
type cellKind int

const (
	cellBlank cellKind = iota
	cellString
	cellNumber
	cellBool
	cellFormula
)

// cellSnapshot is one captured template cell: style plus typed content.
type cellSnapshot struct {
	col     int // 1-based
	styleID int
	kind    cellKind
	str     string
	num     float64
	boolean bool
	formula string
}

// rowSnapshot is a template row captured once and stamped into each clone
// position. This keeps row cloning an explicit value-copy operation
// instead of leaning on workbook shift semantics.
type rowSnapshot struct {
	height float64
	cells  []cellSnapshot
}

// captureRow snapshots the style, kind and content of every populated cell
// in the given 1-based row.
func captureRow(f *excelize.File, sheetName string, row int) (*rowSnapshot, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	width := 0
	if row-1 < len(rows) {
		width = len(rows[row-1])
	}

	height, err := f.GetRowHeight(sheetName, row)
	if err != nil {
		return nil, fmt.Errorf("reading row height: %w", err)
	}

	snap := &rowSnapshot{height: height}
	for col := 1; col <= width; col++ {
		cellName, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, err
		}
		cell := cellSnapshot{col: col}
		cell.styleID, _ = f.GetCellStyle(sheetName, cellName)

		if formula, _ := f.GetCellFormula(sheetName, cellName); formula != "" {
			cell.kind = cellFormula
			cell.formula = formula
			snap.cells = append(snap.cells, cell)
			continue
		}

		value, _ := f.GetCellValue(sheetName, cellName)
		cellType, _ := f.GetCellType(sheetName, cellName)
		switch cellType {
		case excelize.CellTypeBool:
			cell.kind = cellBool
			cell.boolean = value == "TRUE" || value == "1"
		case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
			cell.kind = cellString
			cell.str = value
		default:
			if value == "" {
				cell.kind = cellBlank
			} else if num, err := strconv.ParseFloat(value, 64); err == nil {
				cell.kind = cellNumber
				cell.num = num
			} else {
				cell.kind = cellString
				cell.str = value
			}
		}
		snap.cells = append(snap.cells, cell)
	}
	return snap, nil
}

// stamp writes the snapshot into the given 1-based row. Relative row
// references inside formulas are shifted by destRow-srcRow so that
// formulas keep pointing at their own clone block after insertion.
func (rs *rowSnapshot) stamp(f *excelize.File, sheetName string, destRow, srcRow int) error {
	if rs.height > 0 {
		if err := f.SetRowHeight(sheetName, destRow, rs.height); err != nil {
			return fmt.Errorf("setting row height: %w", err)
		}
	}
	for _, cell := range rs.cells {
		cellName, err := excelize.CoordinatesToCellName(cell.col, destRow)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cellName, cellName, cell.styleID); err != nil {
			return fmt.Errorf("setting cell style at %s: %w", cellName, err)
		}
		switch cell.kind {
		case cellString:
			err = f.SetCellStr(sheetName, cellName, cell.str)
		case cellNumber:
			err = f.SetCellFloat(sheetName, cellName, cell.num, -1, 64)
		case cellBool:
			err = f.SetCellBool(sheetName, cellName, cell.boolean)
		case cellFormula:
			err = f.SetCellFormula(sheetName, cellName, shiftFormulaRows(cell.formula, destRow-srcRow))
		default:
			// Unrecognized kinds stay blank; only style carries over.
		}
		if err != nil {
			return fmt.Errorf("writing cell %s: %w", cellName, err)
		}
	}
	return nil
}

var cellRefRe = regexp.MustCompile(`(\$?)([A-Z]{1,3})(\$?)(\d+)`)

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// shiftFormulaRows adjusts every relative row reference in a formula by
// delta rows. Absolute row references ($12) are left untouched, as are
// digit-suffixed function names like LOG10, which the reference pattern
// alone cannot tell apart from a cell address.
func shiftFormulaRows(formula string, delta int) string {
	if delta == 0 {
		return formula
	}

	var sb strings.Builder
	last := 0
	for _, loc := range cellRefRe.FindAllStringSubmatchIndex(formula, -1) {
		start, end := loc[0], loc[1]
		sb.WriteString(formula[last:start])
		last = end
		ref := formula[start:end]

		inIdentifier := start > 0 && isIdentByte(formula[start-1])
		isCall := end < len(formula) && formula[end] == '('
		absoluteRow := loc[6] != loc[7]
		if inIdentifier || isCall || absoluteRow {
			sb.WriteString(ref)
			continue
		}

		row, err := strconv.Atoi(formula[loc[8]:loc[9]])
		if err != nil || row+delta < 1 {
			sb.WriteString(ref)
			continue
		}
		sb.WriteString(formula[loc[2]:loc[3]])
		sb.WriteString(formula[loc[4]:loc[5]])
		sb.WriteString(strconv.Itoa(row + delta))
	}
	sb.WriteString(formula[last:])
	return sb.String()
}
