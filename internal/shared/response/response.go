package response

import (
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Error writes the shared error envelope. Success bodies are written by the
// handlers directly since each endpoint has its own contract shape.
func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, errorEnvelope{
		Error: errorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
