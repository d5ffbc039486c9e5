package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/synesthesia-api/internal/logger"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/gin-gonic/gin"
)

var errContentTooLong = errors.New("content too long")

// ErrorResponse is the body of every 4xx/5xx answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps engine and preference errors to 400 and anything else to 500
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, codeInternal

	switch {
	case errors.Is(err, mapping.ErrInvalidColorFormat):
		status, code = http.StatusBadRequest, codeInvalidColorFormat
	case errors.Is(err, mapping.ErrInvalidNumericInput):
		status, code = http.StatusBadRequest, codeInvalidNumericInput
	case errors.Is(err, mapping.ErrUnrecognizedContent):
		status, code = http.StatusBadRequest, codeUnrecognizedContent
	case errors.Is(err, preferences.ErrInvalidPreference):
		status, code = http.StatusBadRequest, codeInvalidPreference
	case errors.Is(err, errContentTooLong):
		status, code = http.StatusRequestEntityTooLarge, codeContentTooLong
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, logger.WithContext(c))
		c.JSON(status, ErrorResponse{Error: code, Message: "internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

// respondBadRequest answers a body that could not be decoded
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidRequest, Message: err.Error()})
}

func checkLength(s string) error {
	if len([]rune(s)) > maxContentSize {
		return errContentTooLong
	}
	return nil
}
