package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/philipeduarte001/licitacao/internal/csvexport"
	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/sheet"
)

// SheetService defines the spreadsheet generation contract.
type SheetService interface {
	GenerateCover(ctx context.Context, notice *domain.Notice) ([]byte, error)
	GenerateResult(ctx context.Context, result *domain.ResultSheet) ([]byte, error)
	ExportCoverCSV(ctx context.Context, notice *domain.Notice) ([]byte, string, error)
}

type sheetService struct {
	engine *sheet.Engine
}

// NewSheetService creates a new SheetService implementation.
func NewSheetService(engine *sheet.Engine) SheetService {
	return &sheetService{engine: engine}
}

func (s *sheetService) GenerateCover(ctx context.Context, notice *domain.Notice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.RenderCover(notice)
}

func (s *sheetService) GenerateResult(ctx context.Context, result *domain.ResultSheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.RenderResult(result)
}

// ExportCoverCSV renders the notice's line items as CSV and returns the
// payload plus the download filename.
func (s *sheetService) ExportCoverCSV(ctx context.Context, notice *domain.Notice) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)

	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, "", fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteNotice(notice); err != nil {
		return nil, "", fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), csvexport.BuildFilename(notice.Process), nil
}
