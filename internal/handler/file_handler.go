package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/service"
)

// FileHandler handles file upload endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/files/upload
// @Summary Upload a notice PDF
// @Description Stores a single PDF document in object storage
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to upload"
// @Success 201 {object} APIResponse{data=service.FileUploadResult}
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Router /files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
