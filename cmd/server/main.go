package main

import (
	"fmt"
	"log"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/extractor"
	"github.com/philipeduarte001/licitacao/internal/extractor/cloud"
	"github.com/philipeduarte001/licitacao/internal/extractor/local"
	"github.com/philipeduarte001/licitacao/internal/handler"
	"github.com/philipeduarte001/licitacao/internal/pdftext"
	"github.com/philipeduarte001/licitacao/internal/quote"
	"github.com/philipeduarte001/licitacao/internal/router"
	"github.com/philipeduarte001/licitacao/internal/service"
	"github.com/philipeduarte001/licitacao/internal/sheet"
	s3storage "github.com/philipeduarte001/licitacao/internal/storage/s3"
	"github.com/philipeduarte001/licitacao/internal/supplier"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction pipeline: cloud first, local regex fallback
	orchestrator := extractor.NewOrchestrator(
		cloud.New(&cfg.Cloud),
		local.New(),
	)

	// Initialize supporting components
	textExtractor := pdftext.New()
	engine := sheet.NewEngine(&cfg.Template)
	rates := quote.New(&cfg.Quote)
	catalog := supplier.NewCatalog()

	// Initialize services
	processingSvc := service.NewProcessingService(
		textExtractor, orchestrator, catalog, rates, s3Client, engine, &cfg.S3, &cfg.Quote,
	)
	sheetSvc := service.NewSheetService(engine)
	fileSvc := service.NewFileService(s3Client, &cfg.S3)

	// Initialize handlers
	processingH := handler.NewProcessingHandler(processingSvc)
	sheetH := handler.NewSheetHandler(sheetSvc)
	supplierH := handler.NewSupplierHandler(catalog)
	quoteH := handler.NewQuoteHandler(rates)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(&cfg.Template)

	// Setup router
	r := router.Setup(processingH, sheetH, supplierH, quoteH, fileH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
