package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const usagePage = `<!DOCTYPE html>
<html>
<head><title>poextract</title></head>
<body>
<p>This method is not allowed for a private server!!</p>
<p>Please use one of the following endpoints:</p>
<p><b>/extractPO</b> - Extracts the Purchase Order (PO) number using regular expressions.
(POST method, JSON input: {"path_url": "URL or file path"})<br>
Returns the extracted PO number. (JSON output: {"invoice_no": "PO number"})</p>
<p><b>/get_text</b> - Returns the text extracted from the provided PDF, DOC, CSV or image file.
(POST method, JSON input: {"path_url": "URL or file path"})<br>
Supports PDF, DOC/DOCX, CSV/XLS/XLSX and image files (JPG, JPEG, PNG). (JSON output: {"text": "Extracted text"})</p>
</body>
</html>
`

// InfoHandler serves the usage page.
type InfoHandler struct{}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// Usage handles GET /
func (h *InfoHandler) Usage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(usagePage))
}
