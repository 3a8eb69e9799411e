package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/service"
)

// SheetHandler handles spreadsheet generation endpoints.
type SheetHandler struct {
	sheetService service.SheetService
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

// GenerateCover handles POST /api/v1/sheets/cover
// @Summary Generate a cover workbook
// @Description Populates the cover template with the given notice record
// @Tags sheets
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param notice body domain.Notice true "Notice record"
// @Success 200 {file} binary "Generated cover workbook"
// @Failure 400 {object} APIResponse "Malformed request body"
// @Failure 500 {object} APIResponse "Rendering failed"
// @Router /sheets/cover [post]
func (h *SheetHandler) GenerateCover(c *gin.Context) {
	var notice domain.Notice
	if err := c.ShouldBindJSON(&notice); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a valid notice record")
		return
	}

	payload, err := h.sheetService.GenerateCover(c.Request.Context(), &notice)
	if err != nil {
		HandleError(c, err)
		return
	}
	writeWorkbook(c, payload, "capa.xlsx")
}

// GenerateResult handles POST /api/v1/sheets/result
// @Summary Generate a result workbook
// @Description Populates the result template with the given tabular record
// @Tags sheets
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param result body domain.ResultSheet true "Result record"
// @Success 200 {file} binary "Generated result workbook"
// @Failure 400 {object} APIResponse "Malformed request body"
// @Failure 500 {object} APIResponse "Rendering failed"
// @Router /sheets/result [post]
func (h *SheetHandler) GenerateResult(c *gin.Context) {
	var result domain.ResultSheet
	if err := c.ShouldBindJSON(&result); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a valid result record")
		return
	}

	payload, err := h.sheetService.GenerateResult(c.Request.Context(), &result)
	if err != nil {
		HandleError(c, err)
		return
	}
	writeWorkbook(c, payload, "resultado.xlsx")
}

// ExportCoverCSV handles POST /api/v1/sheets/cover/csv
// @Summary Export notice line items as CSV
// @Description Returns the notice's line items as a CSV download
// @Tags sheets
// @Accept json
// @Produce text/csv
// @Param notice body domain.Notice true "Notice record"
// @Success 200 {file} binary "CSV export"
// @Failure 400 {object} APIResponse "Malformed request body"
// @Router /sheets/cover/csv [post]
func (h *SheetHandler) ExportCoverCSV(c *gin.Context) {
	var notice domain.Notice
	if err := c.ShouldBindJSON(&notice); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a valid notice record")
		return
	}

	payload, filename, err := h.sheetService.ExportCoverCSV(c.Request.Context(), &notice)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
