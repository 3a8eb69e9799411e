// Package sheet populates the fixed-layout workbook templates. The
// template binary is reloaded fresh per render; header fields go to fixed
// coordinates and the item anchor-row pair is cloned once per additional
// line item, preserving styles and formulas.
package sheet

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/domain"
)

// Cover template layout (1-based rows). The anchor pair is a data row and
// the formula row immediately below it, repeated with a stride of 2.
const (
	coverDataAnchor    = 14
	coverFormulaAnchor = 15

	resultDataAnchor    = 3
	resultFormulaAnchor = 4

	anchorStride = 2
)

// rateSentinel is the numeric placeholder some templates carry instead of
// a DOLAR named range or label.
const rateSentinel = 5.50

// rateRangeName is the workbook-level named range bound to the currency
// cell.
const rateRangeName = "DOLAR"

// Engine renders canonical records into the workbook templates. It holds
// only template paths: every render opens its own workbook, so concurrent
// calls share no mutable state.
type Engine struct {
	coverPath  string
	resultPath string
}

// NewEngine creates an Engine from template configuration.
func NewEngine(cfg *config.TemplateConfig) *Engine {
	return &Engine{coverPath: cfg.CoverPath, resultPath: cfg.ResultPath}
}

// RenderCover populates the cover template with the notice and returns the
// serialized workbook. Template problems are the only fatal errors; a
// missing currency rate just leaves the rate cell untouched.
func (e *Engine) RenderCover(n *domain.Notice) ([]byte, error) {
	f, err := excelize.OpenFile(e.coverPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening cover template %s: %v", domain.ErrSheetGeneration, e.coverPath, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: cover template has no sheets", domain.ErrSheetGeneration)
	}

	if err := e.fillCoverHeader(f, sheetName, n); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetGeneration, err)
	}
	if err := e.fillItems(f, sheetName, coverDataAnchor, coverFormulaAnchor, len(n.Items), coverItemWriter(n.Items)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetGeneration, err)
	}
	if n.CurrencyRate != nil {
		e.writeRate(f, sheetName, *n.CurrencyRate)
	} else {
		log.Printf("sheet.Engine: notice has no currency rate, skipping rate cell")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: serializing workbook: %v", domain.ErrSheetGeneration, err)
	}
	return buf.Bytes(), nil
}

// RenderResult populates the result template with the flat tabular record.
func (e *Engine) RenderResult(r *domain.ResultSheet) ([]byte, error) {
	f, err := excelize.OpenFile(e.resultPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening result template %s: %v", domain.ErrSheetGeneration, e.resultPath, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: result template has no sheets", domain.ErrSheetGeneration)
	}

	setCell(f, sheetName, 1, 1, "PROC. "+r.ProcessNumber)
	setCell(f, sheetName, 1, 3, "ORGÃO: "+r.Organ)
	setCell(f, sheetName, 1, 8, "DATA: "+r.Date.Format("02/01"))

	writer := func(f *excelize.File, sheetName string, dataRow, formulaRow, i int) error {
		item := r.Items[i]
		for _, w := range []struct {
			col   int
			value interface{}
		}{
			{1, item.Number},
			{2, item.Product},
			{3, item.Quantity},
			{4, item.Position},
			{5, item.Company},
			{6, item.Brand},
			{7, item.Cost},
			{8, item.Value},
		} {
			if err := setCell(f, sheetName, dataRow, w.col, w.value); err != nil {
				return err
			}
		}

		// Totals formulas always reference their own data row.
		ref := strconv.Itoa(dataRow)
		for col, formula := range map[int]string{
			8: "H" + ref + "*C" + ref,
			9: "I" + ref + "*C" + ref,
		} {
			cellName, err := excelize.CoordinatesToCellName(col, formulaRow)
			if err != nil {
				return err
			}
			if err := f.SetCellFormula(sheetName, cellName, formula); err != nil {
				return err
			}
		}
		return nil
	}
	if err := e.fillItems(f, sheetName, resultDataAnchor, resultFormulaAnchor, len(r.Items), writer); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetGeneration, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: serializing workbook: %v", domain.ErrSheetGeneration, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) fillCoverHeader(f *excelize.File, sheetName string, n *domain.Notice) error {
	attestation := "NÃO"
	if n.Attestation {
		attestation = "SIM"
	}
	header := fmt.Sprintf("%s - %s ÀS %sH", n.Process, n.Timestamp.Format("02/01"), n.Timestamp.Format("15:04"))

	for _, w := range []struct {
		row, col int // 1-based
		value    interface{}
	}{
		{1, 3, header},
		{2, 3, n.Organ},
		{3, 3, n.Title},
		{5, 4, n.Portal},
		{5, 10, n.NoticeID},
		{6, 4, n.Client},
		{7, 4, n.Object},
		{8, 4, n.Modality},
		{8, 10, n.Sample},
		{9, 4, n.Delivery},
		{9, 10, n.CostCenter},
		{10, 4, attestation},
		{10, 10, n.Challenge},
		{11, 4, n.Notes},
	} {
		if err := setCell(f, sheetName, w.row, w.col, w.value); err != nil {
			return err
		}
	}
	return nil
}

// itemWriter writes the i-th item into its (1-based) data/formula row
// pair after any required cloning has happened.
type itemWriter func(f *excelize.File, sheetName string, dataRow, formulaRow, i int) error

func coverItemWriter(items []domain.LineItem) itemWriter {
	return func(f *excelize.File, sheetName string, dataRow, _, i int) error {
		item := items[i]
		for _, w := range []struct {
			col   int
			value interface{}
		}{
			{1, item.Number},
			{2, item.Category},
			{3, item.Description},
			{4, item.Quantity},
			{5, item.UnitCost},
			{8, item.Freight},
		} {
			if err := setCell(f, sheetName, dataRow, w.col, w.value); err != nil {
				return err
			}
		}
		return nil
	}
}

// fillItems clones the anchor pair once per item beyond the first and
// dispatches each item to the writer. The anchor rows are captured before
// any mutation so every clone stamps pristine template content.
func (e *Engine) fillItems(f *excelize.File, sheetName string, dataAnchor, formulaAnchor, n int, write itemWriter) error {
	if n == 0 {
		return nil
	}

	dataSnap, err := captureRow(f, sheetName, dataAnchor)
	if err != nil {
		return fmt.Errorf("capturing data anchor row %d: %w", dataAnchor, err)
	}
	formulaSnap, err := captureRow(f, sheetName, formulaAnchor)
	if err != nil {
		return fmt.Errorf("capturing formula anchor row %d: %w", formulaAnchor, err)
	}

	for i := 0; i < n; i++ {
		dataRow := dataAnchor + i*anchorStride
		formulaRow := formulaAnchor + i*anchorStride

		if i > 0 {
			if err := f.InsertRows(sheetName, dataRow, 2); err != nil {
				return fmt.Errorf("inserting rows at %d: %w", dataRow, err)
			}
			if err := dataSnap.stamp(f, sheetName, dataRow, dataAnchor); err != nil {
				return fmt.Errorf("cloning data row to %d: %w", dataRow, err)
			}
			if err := formulaSnap.stamp(f, sheetName, formulaRow, formulaAnchor); err != nil {
				return fmt.Errorf("cloning formula row to %d: %w", formulaRow, err)
			}
		}
		if err := write(f, sheetName, dataRow, formulaRow, i); err != nil {
			return fmt.Errorf("writing item %d: %w", i, err)
		}
	}
	return nil
}

// writeRate resolves the currency-rate target cell: first the DOLAR named
// range, then a content scan for a cell mentioning DOLAR, finally the
// numeric sentinel placeholder. Every step is best-effort; an unresolved
// rate is logged and the render proceeds.
func (e *Engine) writeRate(f *excelize.File, sheetName string, rate float64) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, rateRangeName) {
			continue
		}
		row, col, err := ParseCellRef(dn.RefersTo)
		if err != nil {
			log.Printf("sheet.Engine: named range %s has unusable reference %q: %v", rateRangeName, dn.RefersTo, err)
			break
		}
		cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			log.Printf("sheet.Engine: named range %s: %v", rateRangeName, err)
			break
		}
		if err := f.SetCellValue(sheetName, cellName, rate); err != nil {
			log.Printf("sheet.Engine: writing rate to named range cell %s: %v", cellName, err)
			break
		}
		log.Printf("sheet.Engine: wrote rate %.4f to named range cell %s", rate, cellName)
		return
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Printf("sheet.Engine: content scan for rate cell failed: %v", err)
		return
	}

	// First pass: a string cell mentioning DOLAR. Second pass: the numeric
	// sentinel.
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if !strings.Contains(strings.ToUpper(value), rateRangeName) {
				continue
			}
			if e.overwriteCell(f, sheetName, rowIdx+1, colIdx+1, rate) {
				return
			}
		}
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			num, err := strconv.ParseFloat(value, 64)
			if err != nil || num != rateSentinel {
				continue
			}
			if e.overwriteCell(f, sheetName, rowIdx+1, colIdx+1, rate) {
				return
			}
		}
	}
	log.Printf("sheet.Engine: no rate cell resolved, rate %.4f not written", rate)
}

func (e *Engine) overwriteCell(f *excelize.File, sheetName string, row, col int, rate float64) bool {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	if err := f.SetCellValue(sheetName, cellName, rate); err != nil {
		log.Printf("sheet.Engine: overwriting rate cell %s: %v", cellName, err)
		return false
	}
	log.Printf("sheet.Engine: wrote rate %.4f to scanned cell %s", rate, cellName)
	return true
}

func setCell(f *excelize.File, sheetName string, row, col int, value interface{}) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cellName, value)
}
