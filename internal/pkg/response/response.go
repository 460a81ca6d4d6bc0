// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the wire envelope the storefront expects.
type Response struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional result.
func Success(c *gin.Context, status int, msg string, result interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Msg:     msg,
		Result:  result,
	})
}

// Error sends a standardized error response and aborts the chain.
func Error(c *gin.Context, code int, msg string, err error) {
	c.Abort()

	resp := Response{
		Success: false,
		Msg:     msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg, nil)
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, msg string, err error) {
	Error(c, http.StatusBadRequest, msg, err)
}
