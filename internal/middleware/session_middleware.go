// internal/middleware/session_middleware.go
package middleware

import (
	"cncquote-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const ctxSession = "session"

// Session binds a session manager to every request: load before the
// handler chain, persist after it. Saving happens unconditionally on
// teardown; the manager itself decides whether a write is needed.
func Session(sessions *session.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := sessions.Bind(c.Writer, c.Request)
		m.Load(c.Request.Context())
		c.Set(ctxSession, m)

		c.Next()

		m.Save(c.Request.Context())
	}
}

// GetSession returns the manager bound to this request. Panics when the
// Session middleware is not installed, which is a wiring bug.
func GetSession(c *gin.Context) *session.Manager {
	v, exists := c.Get(ctxSession)
	if !exists {
		panic("session middleware not installed")
	}
	return v.(*session.Manager)
}
