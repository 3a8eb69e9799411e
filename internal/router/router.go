package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/philipeduarte001/licitacao/internal/handler"
	"github.com/philipeduarte001/licitacao/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	processingH *handler.ProcessingHandler,
	sheetH *handler.SheetHandler,
	supplierH *handler.SupplierHandler,
	quoteH *handler.QuoteHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	processing := v1.Group("/processing")
	processing.POST("/batch", processingH.ProcessBatch)

	sheets := v1.Group("/sheets")
	sheets.POST("/cover", sheetH.GenerateCover)
	sheets.POST("/cover/csv", sheetH.ExportCoverCSV)
	sheets.POST("/result", sheetH.GenerateResult)

	suppliers := v1.Group("/suppliers")
	suppliers.POST("/search", supplierH.Search)

	quotes := v1.Group("/quotes")
	quotes.GET("/usd", quoteH.CurrentUSD)

	files := v1.Group("/files")
	files.POST("/upload", fileH.Upload)

	return r
}
