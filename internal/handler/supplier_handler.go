package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/port"
)

// SupplierHandler handles supplier lookup endpoints.
type SupplierHandler struct {
	catalog port.SupplierCatalog
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(catalog port.SupplierCatalog) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

// SupplierSearchRequest is the DTO for supplier search requests.
type SupplierSearchRequest struct {
	Object string `json:"object"`
}

// Search handles POST /api/v1/suppliers/search
// @Summary Search candidate suppliers
// @Description Returns candidate vendors for the given object description
// @Tags suppliers
// @Accept json
// @Produce json
// @Param query body SupplierSearchRequest true "Object description"
// @Success 200 {object} APIResponse{data=[]domain.Supplier}
// @Failure 400 {object} APIResponse "Malformed request body"
// @Router /suppliers/search [post]
func (h *SupplierHandler) Search(c *gin.Context) {
	var req SupplierSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must contain an object description")
		return
	}

	suppliers, err := h.catalog.Search(c.Request.Context(), req.Object)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, suppliers)
}
