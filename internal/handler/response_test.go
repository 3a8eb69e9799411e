package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipeduarte001/licitacao/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unsupported file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"upload failed", domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"no valid documents", domain.ErrNoValidDocuments, http.StatusBadRequest, "NO_VALID_DOCUMENTS"},
		{"sheet generation", domain.ErrSheetGeneration, http.StatusInternalServerError, "SHEET_GENERATION_FAILED"},
		{"quote unavailable", domain.ErrQuoteUnavailable, http.StatusBadGateway, "QUOTE_UNAVAILABLE"},
		{"wrapped", fmt.Errorf("rendering: %w", domain.ErrSheetGeneration), http.StatusInternalServerError, "SHEET_GENERATION_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
