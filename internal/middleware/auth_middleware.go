// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/user"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	"cncquote-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID       = "user_id"
	ctxCustomerCode = "customer_code"
)

// RequireAuth validates the presented session and resolves the acting
// user id. Resolution order: session user_id, then the CUSTOMERID cookie
// parsed as an integer. A cookie that fails to parse means "no identity",
// not an error. There is no anonymous path through here.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := GetSession(c)

		sid, err := c.Cookie(session.CookieSessionID)
		if err != nil || sid == "" {
			response.Error(c, http.StatusUnauthorized, "not logged in", xerrors.ErrNoIdentity)
			return
		}

		if m.IsSessionExpired(c.Request.Context(), sid) {
			// The browser still claims a session the store no longer has.
			// Clean the cookie jar even though the manager's own load may
			// have minted a fresh session already.
			m.ClearExpiredCookies()
			response.Error(c, http.StatusUnauthorized, "session expired, please log in again", xerrors.ErrSessionExpired)
			return
		}

		userID, ok := m.GetInt64(session.KeyUserID)
		if !ok {
			if raw, cerr := c.Cookie(session.CookieCustomerID); cerr == nil {
				if id, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
					userID, ok = id, true
				}
			}
		}
		if !ok {
			response.Error(c, http.StatusUnauthorized, "invalid user info, please log in again", xerrors.ErrNoIdentity)
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// RequireCustomer additionally demands the customer code cookie, needed
// by operations that address per-customer storage. Its absence after a
// successful identity resolution is an error, not an optional field.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := c.Cookie(session.CookieCustomerCode)
		if err != nil || code == "" {
			response.Error(c, 400, "invalid user info, please log in again", nil)
			return
		}
		c.Set(ctxCustomerCode, code)
		c.Next()
	}
}

// AdminOnly gates admin routes on the session role. MUST run after
// RequireAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := GetSession(c)
		if m.GetString(session.KeyUserRole) != user.RoleAdmin {
			response.Forbidden(c, "insufficient permissions")
			return
		}
		c.Next()
	}
}
