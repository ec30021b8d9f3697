package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rainadr/veripass/internal/inspection"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func RespondWithError(c *gin.Context, statusCode int, code string, customMessage string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   &APIError{Code: code, Message: customMessage},
	})
}

// RespondWithInspectionError translates the core's typed errors into
// the API envelope. Anything untyped is a storage or programming
// fault and surfaces as a 500.
func RespondWithInspectionError(c *gin.Context, err error) {
	typed, ok := inspection.AsError(err)
	if !ok {
		RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Something went wrong.")
		return
	}

	status := http.StatusInternalServerError
	switch typed.Code {
	case inspection.CodeInvalidInput:
		status = http.StatusBadRequest
	case inspection.CodeForbidden:
		status = http.StatusForbidden
	case inspection.CodeTicketNotFound:
		status = http.StatusNotFound
	case inspection.CodeTicketNotActive:
		status = http.StatusConflict
	}
	RespondWithError(c, status, string(typed.Code), typed.Message)
}
