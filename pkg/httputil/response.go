package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/pkg/errors"
)

// Response wraps all API responses. Every operation, including domain
// failures, answers with this shape; transport-level errors are the only
// non-200 responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithMessage sends a success response carrying only a message
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// RespondWithError translates an error into the uniform failure envelope.
// Domain errors keep their message; anything else is masked as an internal
// error.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.JSON(http.StatusOK, Response{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
	})
}
