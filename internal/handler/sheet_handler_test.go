package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/service"
	mocks "github.com/philipeduarte001/licitacao/mocks/servicemocks"
)

func newSheetRouter(svc service.SheetService) *gin.Engine {
	r := gin.New()
	h := NewSheetHandler(svc)
	sheets := r.Group("/api/v1/sheets")
	{
		sheets.POST("/cover", h.GenerateCover)
		sheets.POST("/cover/csv", h.ExportCoverCSV)
		sheets.POST("/result", h.GenerateResult)
	}
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateCover_ReturnsWorkbook(t *testing.T) {
	svc := new(mocks.MockSheetService)
	svc.On("GenerateCover", mock.Anything, mock.MatchedBy(func(n *domain.Notice) bool {
		return n.Process == "009/2025"
	})).Return([]byte("cover-bytes"), nil)

	rec := postJSON(newSheetRouter(svc), "/api/v1/sheets/cover", `{"process":"009/2025"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "capa.xlsx")
	assert.Equal(t, "cover-bytes", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestGenerateCover_InvalidBody(t *testing.T) {
	svc := new(mocks.MockSheetService)
	rec := postJSON(newSheetRouter(svc), "/api/v1/sheets/cover", `{"process":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_BODY")
	svc.AssertNotCalled(t, "GenerateCover", mock.Anything, mock.Anything)
}

func TestGenerateCover_RenderFailure(t *testing.T) {
	svc := new(mocks.MockSheetService)
	svc.On("GenerateCover", mock.Anything, mock.Anything).Return(nil, domain.ErrSheetGeneration)

	rec := postJSON(newSheetRouter(svc), "/api/v1/sheets/cover", `{"process":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SHEET_GENERATION_FAILED")
}

func TestGenerateResult_ReturnsWorkbook(t *testing.T) {
	svc := new(mocks.MockSheetService)
	svc.On("GenerateResult", mock.Anything, mock.MatchedBy(func(r *domain.ResultSheet) bool {
		return r.ProcessNumber == "009/2025"
	})).Return([]byte("result-bytes"), nil)

	rec := postJSON(newSheetRouter(svc), "/api/v1/sheets/result", `{"process_number":"009/2025"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resultado.xlsx")
	assert.Equal(t, "result-bytes", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestExportCoverCSV_ReturnsCSV(t *testing.T) {
	svc := new(mocks.MockSheetService)
	svc.On("ExportCoverCSV", mock.Anything, mock.Anything).
		Return([]byte("Process,Organ\n"), "PE_12_2025_2025-09-01.csv", nil)

	rec := postJSON(newSheetRouter(svc), "/api/v1/sheets/cover/csv", `{"process":"PE 12/2025"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "PE_12_2025_2025-09-01.csv")
	assert.Equal(t, "Process,Organ\n", rec.Body.String())
}
