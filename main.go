package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/ehabahmed2/invfrog/config"
	"github.com/ehabahmed2/invfrog/handler"
	"github.com/ehabahmed2/invfrog/metrics"
	"github.com/ehabahmed2/invfrog/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Structured logger for the batch pipeline; gin and the handlers keep the
	// standard logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "invfrog")

	// Initialize metrics registry
	m := metrics.New()

	// Initialize PDF reader
	pdfReader := service.NewPDFReader()

	// Initialize service layer
	invoiceService := service.NewInvoiceService(pdfReader, m)
	reportWriter := service.NewReportWriter(logger)
	batchService := service.NewBatchService(invoiceService, reportWriter, logger, m)

	// Initialize handler layer
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, cfg)
	batchHandler := handler.NewBatchHandler(batchService, cfg)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "InvFrog Invoice Filing",
		})
	})

	// Prometheus exposition
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		invoice := api.Group("/invoice")
		{
			invoice.POST("/extract", invoiceHandler.ExtractInvoice)
			invoice.POST("/preview", invoiceHandler.PreviewInvoice)
		}
		batch := api.Group("/batch")
		{
			batch.POST("/preview", batchHandler.PreviewBatch)
			batch.POST("/run", batchHandler.RunBatch)
		}
	}

	// Start server
	log.Printf("Starting InvFrog Invoice Filing Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
