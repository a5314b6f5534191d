package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ehabahmed2/invfrog/config"
	"github.com/ehabahmed2/invfrog/dto"
	"github.com/ehabahmed2/invfrog/service"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	cfg            *config.Config
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		cfg:            cfg,
	}
}

// ExtractInvoice handles the POST /invoice/extract endpoint
func (h *InvoiceHandler) ExtractInvoice(c *gin.Context) {
	log.Println("Received invoice extraction request")

	outcome, ok := h.processUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ExtractResponse{
		Outcome:     outcome,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// PreviewInvoice handles the POST /invoice/preview endpoint. It additionally
// computes the proposed filename and target path without touching any files.
func (h *InvoiceHandler) PreviewInvoice(c *gin.Context) {
	log.Println("Received invoice preview request")

	// Resolve naming options from the form, falling back to configuration
	schemeValue := c.DefaultPostForm("scheme", h.cfg.NamingScheme)
	scheme, err := dto.ParseNamingScheme(schemeValue)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	organize := h.cfg.OrganizeByDate
	if v := c.PostForm("organize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "Invalid organize flag", err)
			return
		}
		organize = b
	}

	outcome, ok := h.processUpload(c)
	if !ok {
		return
	}

	h.invoiceService.Propose(outcome, scheme, h.cfg.OutputDir, organize)

	c.JSON(http.StatusOK, dto.ExtractResponse{
		Outcome:     outcome,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// processUpload validates the uploaded file, stages it in a temp file and runs
// the extraction pipeline. On failure the error response is already sent.
func (h *InvoiceHandler) processUpload(c *gin.Context) (*dto.ParseOutcome, bool) {
	// Extract file
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return nil, false
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		h.sendError(c, http.StatusBadRequest, "Only PDF files are supported", nil)
		return nil, false
	}
	if fileHeader.Size > h.cfg.MaxFileSize {
		h.sendError(c, http.StatusBadRequest, "File exceeds the upload size limit", nil)
		return nil, false
	}

	// Stage upload on disk for the PDF reader
	tempFile, err := os.CreateTemp("", "invfrog-upload-*.pdf")
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to stage upload", err)
		return nil, false
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempPath)

	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to save upload", err)
		return nil, false
	}

	log.Printf("Processing %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	return h.invoiceService.ProcessDocument(tempPath, fileHeader.Filename), true
}

// sendError sends a structured error response
func (h *InvoiceHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
