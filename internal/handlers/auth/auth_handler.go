// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"time"

	"cncquote-service/internal/domain/user"
	"cncquote-service/internal/middleware"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	"cncquote-service/internal/pkg/session"
	service "cncquote-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration payload", err)
		return
	}

	u, err := h.authService.Register(c.Request.Context(), &req)
	if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
		response.Error(c, http.StatusConflict, "email already registered", nil)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", user.Profile{
		ID:    u.ID,
		Email: u.Email,
	})
}

// Login verifies credentials and establishes the session. The session
// record and all three identity cookies are written on success; any
// failure tears down whatever session state the request carried.
func (h *AuthHandler) Login(c *gin.Context) {
	m := middleware.GetSession(c)

	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		m.Clear(c.Request.Context())
		response.ValidationError(c, "invalid login payload", err)
		return
	}

	u, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		m.Clear(c.Request.Context())
		if xerrors.Is(err, xerrors.ErrUnauthorized) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "login failed", err)
		return
	}

	m.Set(session.KeyUserID, u.ID)
	m.Set(session.KeyUserRole, u.Role)
	m.Set(session.KeyUserEmail, u.Email)
	m.Set(session.KeyAuthType, u.LoginType)
	m.Set(session.KeyLoginTime, time.Now().Format(time.RFC3339))

	m.SetSessionCookie(m.ID())
	m.SetCustomerCodeCookie(u.Email)
	m.SetCustomerIDCookie(u.ID)

	response.Success(c, http.StatusOK, "login successful", user.Profile{
		ID:    u.ID,
		Email: u.Email,
	})
}

// CheckLogin reports the logged-in state derived from the session.
func (h *AuthHandler) CheckLogin(c *gin.Context) {
	m := middleware.GetSession(c)

	response.Success(c, http.StatusOK, "logged in", user.LoginStatus{
		UserEmail:    m.GetString(session.KeyUserEmail),
		UserRole:     m.GetString(session.KeyUserRole),
		LoginTime:    m.GetString(session.KeyLoginTime),
		CustomerCode: m.CustomerCode(),
	})
}

// CheckPermission answers whether the session holds the admin role.
func (h *AuthHandler) CheckPermission(c *gin.Context) {
	m := middleware.GetSession(c)

	if m.GetString(session.KeyUserRole) != user.RoleAdmin {
		response.Forbidden(c, "insufficient permissions")
		return
	}
	response.Success(c, http.StatusOK, "permission granted", nil)
}

// Logout tears the session down completely.
func (h *AuthHandler) Logout(c *gin.Context) {
	m := middleware.GetSession(c)
	m.Clear(c.Request.Context())

	response.Success(c, http.StatusOK, "logged out", nil)
}
