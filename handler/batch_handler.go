package handler

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ehabahmed2/invfrog/config"
	"github.com/ehabahmed2/invfrog/dto"
	"github.com/ehabahmed2/invfrog/service"

	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	batchService *service.BatchService
	cfg          *config.Config
}

func NewBatchHandler(batchService *service.BatchService, cfg *config.Config) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
		cfg:          cfg,
	}
}

// PreviewBatch handles the POST /batch/preview endpoint. The run is forced
// dry regardless of the request body.
func (h *BatchHandler) PreviewBatch(c *gin.Context) {
	log.Println("Received batch preview request")
	h.runBatch(c, true)
}

// RunBatch handles the POST /batch/run endpoint
func (h *BatchHandler) RunBatch(c *gin.Context) {
	log.Println("Received batch run request")
	h.runBatch(c, false)
}

func (h *BatchHandler) runBatch(c *gin.Context, forceDry bool) {
	// Build request DTO
	var request dto.BatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid batch request", err)
		return
	}

	// Fall back to configuration for unset options
	if request.Scheme == "" {
		request.Scheme = h.cfg.NamingScheme
	}
	if request.Workers == 0 {
		request.Workers = h.cfg.Workers
	}
	if forceDry {
		request.DryRun = true
	}

	// Validate request
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if info, err := os.Stat(request.InputDir); err != nil || !info.IsDir() {
		h.sendError(c, http.StatusBadRequest, "Input directory does not exist", err)
		return
	}

	log.Printf("Processing batch over %s (dry_run=%v)", request.InputDir, request.DryRun)

	// Call service layer
	summary, err := h.batchService.Run(c.Request.Context(), &request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to run batch", err)
		return
	}

	log.Printf("Batch %s completed: %d files, %d copied", summary.RunID, summary.Total, summary.Copied)

	c.JSON(http.StatusOK, dto.BatchResponse{
		Summary:     summary,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *BatchHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "BATCH_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
