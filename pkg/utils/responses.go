package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
//
//	{ "success": bool, "message": string, "data": any, "timestamp": string }
//
// Errors keep the envelope and add an error object with message, code and
// a details list.

type errorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Errors  []any  `json:"errors"`
}

func OK(c *gin.Context, message string, data any) {
	respond(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	respond(c, http.StatusCreated, message, data)
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success":   status >= 200 && status < 300,
		"message":   message,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Fail renders an error envelope and leaves the handler chain intact.
func Fail(c *gin.Context, status int, message string, details ...any) {
	if details == nil {
		details = []any{}
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error": errorBody{
			Message: message,
			Code:    status,
			Errors:  details,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// FailAbort is Fail for middleware: it also stops the chain.
func FailAbort(c *gin.Context, status int, message string, details ...any) {
	Fail(c, status, message, details...)
	c.Abort()
}
