package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func WriteDetails(c *gin.Context, status int, code, message string, details map[string]any) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// Abort writes the error and stops the handler chain. Middlewares use it.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var businessStatus = map[string]int{
	"invalid_interval":      http.StatusBadRequest,
	"invalid_date_or_time":  http.StatusBadRequest,
	"invalid_amount":        http.StatusBadRequest,
	"invalid_method":        http.StatusBadRequest,
	"invalid_due_date":      http.StatusBadRequest,
	"invalid_state":         http.StatusBadRequest,
	"invalid_filter":        http.StatusBadRequest,
	"time_conflict":         http.StatusConflict,
	"invoice_number_taken":  http.StatusConflict,
	"case_number_taken":     http.StatusConflict,
	"exceeds_balance":       http.StatusUnprocessableEntity,
	"appointment_not_found": http.StatusNotFound,
	"invoice_not_found":     http.StatusNotFound,
	"client_not_found":      http.StatusNotFound,
	"case_not_found":        http.StatusNotFound,
	"advocate_not_found":    http.StatusNotFound,
}

var businessMessage = map[string]string{
	"invalid_interval":      "Start time must be before end time.",
	"invalid_date_or_time":  "Invalid date or time.",
	"invalid_amount":        "Amount must be greater than zero.",
	"invalid_method":        "Unknown payment method.",
	"invalid_due_date":      "Due date cannot be before the billing date.",
	"invalid_state":         "Operation not allowed in the current state.",
	"invalid_filter":        "Invalid filter parameters.",
	"time_conflict":         "The requested time conflicts with existing appointments.",
	"invoice_number_taken":  "Invoice number already in use.",
	"case_number_taken":     "Case number already in use.",
	"exceeds_balance":       "Amount exceeds the remaining balance.",
	"appointment_not_found": "Appointment not found.",
	"invoice_not_found":     "Invoice not found.",
	"client_not_found":      "Client not found.",
	"case_not_found":        "Case not found.",
	"advocate_not_found":    "Advocate not found.",
}

// Respond renders err. Business errors keep their code and details; anything
// else is attached to the context for reporting and rendered as a 500.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		status, known := businessStatus[be.Code]
		if !known {
			status = http.StatusBadRequest
		}
		msg := businessMessage[be.Code]
		if msg == "" {
			msg = be.Code
		}
		WriteDetails(c, status, be.Code, msg, be.Details)
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "Unexpected error.")
}
