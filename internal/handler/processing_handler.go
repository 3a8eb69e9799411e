package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/service"
)

// ProcessingHandler handles the batch document processing endpoint.
type ProcessingHandler struct {
	processingService service.ProcessingService
}

// NewProcessingHandler creates a new ProcessingHandler.
func NewProcessingHandler(processingService service.ProcessingService) *ProcessingHandler {
	return &ProcessingHandler{processingService: processingService}
}

// ProcessBatch handles POST /api/v1/processing/batch
// @Summary Process a batch of procurement notice PDFs
// @Description Extracts structured data from the uploaded PDFs, derives supplier line items, resolves the USD-BRL rate and returns the populated cover workbook
// @Tags processing
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param files formData file true "PDF documents to process"
// @Success 200 {file} binary "Generated cover workbook"
// @Failure 400 {object} APIResponse "No valid PDF was provided"
// @Failure 500 {object} APIResponse "Processing or rendering failed"
// @Router /processing/batch [post]
func (h *ProcessingHandler) ProcessBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "files field is required")
		return
	}

	var files []service.BatchFile
	for _, header := range headers {
		if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
			log.Printf("ProcessingHandler.ProcessBatch: skipping non-pdf upload %s", header.Filename)
			continue
		}
		f, err := header.Open()
		if err != nil {
			log.Printf("ProcessingHandler.ProcessBatch: opening %s: %v", header.Filename, err)
			continue
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			log.Printf("ProcessingHandler.ProcessBatch: reading %s: %v", header.Filename, err)
			continue
		}
		files = append(files, service.BatchFile{Name: header.Filename, Content: content})
	}

	result, err := h.processingService.ProcessBatch(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	writeWorkbook(c, result.Workbook, "capa.xlsx")
}

func isPDF(filename, contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// writeWorkbook sends XLSX bytes as a download attachment.
func writeWorkbook(c *gin.Context, payload []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(payload)))
	c.Data(http.StatusOK, domain.XLSXContentType, payload)
}
