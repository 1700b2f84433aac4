package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"poextract/internal/domain"
)

// User-visible error messages. Causes are logged, never returned.
const (
	MsgMissingParameter = "String parameter is missing"
	MsgCannotExtract    = "Can't extract data from the URL"
	MsgUnsupportedType  = "Unsupported file type"
	MsgInternal         = "Internal server error"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// MapDomainError translates domain errors to HTTP status codes and messages.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return http.StatusBadRequest, MsgMissingParameter
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, MsgUnsupportedType
	case errors.Is(err, domain.ErrNoTextExtracted),
		errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrSourceNotFound),
		errors.Is(err, domain.ErrObjectStorage):
		return http.StatusNotFound, MsgCannotExtract
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	if status >= 500 {
		log.Error().Err(err).Interface("request_id", requestID).Msg("internal error")
	} else {
		log.Debug().Err(err).Interface("request_id", requestID).Int("status", status).Msg("request failed")
	}
	RespondError(c, status, msg)
}
