package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"poextract/internal/domain"
	"poextract/internal/service"
)

// ExtractRequest is the body accepted by both extraction endpoints.
type ExtractRequest struct {
	PathURL string `json:"path_url" binding:"required"`
}

// POResponse is the body of a successful PO extraction.
type POResponse struct {
	InvoiceNo *string `json:"invoice_no"`
	Found     bool    `json:"found"`
}

// TextResponse is the body of a successful text extraction.
type TextResponse struct {
	Text string `json:"text"`
}

// ExtractHandler handles the document extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// ExtractPO handles POST /extractPO
func (h *ExtractHandler) ExtractPO(c *gin.Context) {
	ref, ok := bindPathURL(c)
	if !ok {
		return
	}

	result, err := h.extractionService.ExtractPO(c.Request.Context(), ref)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, POResponse{InvoiceNo: result.InvoiceNo, Found: result.Found()})
}

// GetText handles POST /get_text
func (h *ExtractHandler) GetText(c *gin.Context) {
	ref, ok := bindPathURL(c)
	if !ok {
		return
	}

	text, err := h.extractionService.ExtractText(c.Request.Context(), ref)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TextResponse{Text: text})
}

// bindPathURL parses the JSON body and returns its path_url.
// Returns false if the body is invalid (error response already written).
func bindPathURL(c *gin.Context) (string, bool) {
	if !isJSONContentType(strings.ToLower(c.ContentType())) {
		HandleError(c, domain.ErrMalformedInput)
		return "", false
	}
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrMalformedInput)
		return "", false
	}
	return req.PathURL, true
}

// isJSONContentType accepts application/json and application/*+json.
func isJSONContentType(ct string) bool {
	if ct == binding.MIMEJSON {
		return true
	}
	return strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json")
}
