// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetUserID returns the resolved user id set by RequireAuth.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetUserID returns the resolved user id or panics. Only call behind
// RequireAuth.
func MustGetUserID(c *gin.Context) int64 {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id not found in context")
	}
	return id
}

// GetCustomerCode returns the customer code set by RequireCustomer.
func GetCustomerCode(c *gin.Context) string {
	v, exists := c.Get(ctxCustomerCode)
	if !exists {
		return ""
	}
	code, _ := v.(string)
	return code
}
