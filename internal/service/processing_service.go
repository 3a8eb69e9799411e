package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
	"github.com/philipeduarte001/licitacao/internal/sheet"
)

// BatchFile is one uploaded document within a batch request.
type BatchFile struct {
	Name    string
	Content []byte
}

// BatchResult carries the aggregated record and the rendered cover
// workbook for a processed batch.
type BatchResult struct {
	Notice   *domain.Notice
	Workbook []byte
}

// ProcessingService defines the batch document processing contract.
type ProcessingService interface {
	ProcessBatch(ctx context.Context, files []BatchFile) (*BatchResult, error)
}

type processingService struct {
	text      port.TextExtractor
	extractor port.NoticeExtractor
	suppliers port.SupplierCatalog
	rates     port.RateProvider
	storage   port.ObjectStorage
	engine    *sheet.Engine
	s3cfg     *config.S3Config
	quoteCfg  *config.QuoteConfig
	rng       *rand.Rand
}

// NewProcessingService creates a new ProcessingService implementation.
func NewProcessingService(
	text port.TextExtractor,
	extractor port.NoticeExtractor,
	suppliers port.SupplierCatalog,
	rates port.RateProvider,
	storage port.ObjectStorage,
	engine *sheet.Engine,
	s3cfg *config.S3Config,
	quoteCfg *config.QuoteConfig,
) ProcessingService {
	return &processingService{
		text:      text,
		extractor: extractor,
		suppliers: suppliers,
		rates:     rates,
		storage:   storage,
		engine:    engine,
		s3cfg:     s3cfg,
		quoteCfg:  quoteCfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newProcessingServiceWithRand is used by tests that need deterministic
// item pricing.
func newProcessingServiceWithRand(
	text port.TextExtractor,
	extractor port.NoticeExtractor,
	suppliers port.SupplierCatalog,
	rates port.RateProvider,
	storage port.ObjectStorage,
	engine *sheet.Engine,
	s3cfg *config.S3Config,
	quoteCfg *config.QuoteConfig,
	rng *rand.Rand,
) ProcessingService {
	svc := NewProcessingService(text, extractor, suppliers, rates, storage, engine, s3cfg, quoteCfg).(*processingService)
	svc.rng = rng
	return svc
}

// ProcessBatch runs the full pipeline over a batch of PDF uploads: upload
// each file to object storage (best-effort), extract its text, run the
// extraction strategies, derive supplier line items, resolve the currency
// rate and render the cover workbook. Documents that cannot be read are
// skipped; the batch fails only when no document yields a record.
func (s *processingService) ProcessBatch(ctx context.Context, files []BatchFile) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoValidDocuments
	}

	var base *domain.Notice
	var items []domain.LineItem

	for _, file := range files {
		if len(file.Content) == 0 {
			log.Printf("processingService.ProcessBatch: skipping empty file %s", file.Name)
			continue
		}

		s.uploadBestEffort(ctx, file)

		doc, err := s.text.ExtractText(ctx, file.Content)
		if err != nil {
			log.Printf("processingService.ProcessBatch: skipping unreadable document %s: %v", file.Name, err)
			continue
		}

		notice := s.extractor.Extract(ctx, port.ExtractInput{
			FileName:  file.Name,
			Text:      doc.Text,
			PageCount: doc.PageCount,
		})
		if base == nil {
			base = notice
		}
		items = append(items, notice.Items...)

		supplierItems, err := s.supplierItems(ctx, notice, len(items))
		if err != nil {
			log.Printf("processingService.ProcessBatch: supplier lookup for %s failed: %v", file.Name, err)
		} else {
			items = append(items, supplierItems...)
		}
	}

	if base == nil {
		return nil, domain.ErrNoValidDocuments
	}

	base.Items = items
	s.resolveRate(ctx, base)

	workbook, err := s.engine.RenderCover(base)
	if err != nil {
		return nil, err
	}
	return &BatchResult{Notice: base, Workbook: workbook}, nil
}

// uploadBestEffort stores the raw PDF in object storage. Failures are
// logged and never interrupt the batch.
func (s *processingService) uploadBestEffort(ctx context.Context, file BatchFile) {
	if s.storage == nil || s.s3cfg.Bucket == "" {
		return
	}
	key := fmt.Sprintf("editals/%s/%s", uuid.New(), file.Name)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Content),
		ContentType: "application/pdf",
		Size:        int64(len(file.Content)),
	})
	if err != nil {
		log.Printf("processingService.ProcessBatch: upload of %s failed, continuing: %v", file.Name, err)
		return
	}
	log.Printf("processingService.ProcessBatch: uploaded %s as %s", file.Name, key)
}

// supplierItems converts the catalog's suppliers for the notice's object
// into priced line items. Imported vendors get USD cost and freight;
// domestic vendors get BRL ranges.
func (s *processingService) supplierItems(ctx context.Context, notice *domain.Notice, offset int) ([]domain.LineItem, error) {
	object := notice.Object
	if strings.TrimSpace(object) == "" {
		object = "Produto padrão"
	}

	suppliers, err := s.suppliers.Search(ctx, object)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(suppliers))
	for i, sup := range suppliers {
		origin := domain.OriginDomestic
		var unitCost, freight float64
		if strings.Contains(sup.Name, "Tactical Gear USA") {
			origin = domain.OriginImported
			unitCost = 25.0 + s.rng.Float64()*75.0
			freight = 15.0 + s.rng.Float64()*35.0
		} else {
			unitCost = 50.0 + s.rng.Float64()*200.0
			freight = 10.0 + s.rng.Float64()*40.0
		}

		items = append(items, domain.LineItem{
			Number:      offset + i + 1,
			Category:    "Produto",
			Description: sup.Name + " - " + sup.Notes,
			Quantity:    s.rng.Intn(50) + 1,
			UnitCost:    unitCost,
			Freight:     freight,
			Origin:      origin,
		})
	}
	return items, nil
}

// resolveRate fills the record's currency rate: the extracted value wins,
// then the live quote, then the configured default.
func (s *processingService) resolveRate(ctx context.Context, notice *domain.Notice) {
	if notice.CurrencyRate != nil {
		return
	}
	if s.rates != nil {
		rate, err := s.rates.CurrentRate(ctx)
		if err == nil {
			notice.CurrencyRate = &rate
			return
		}
		log.Printf("processingService.ProcessBatch: quote lookup failed, using default rate: %v", err)
	}
	rate := s.quoteCfg.DefaultRate
	notice.CurrencyRate = &rate
}
