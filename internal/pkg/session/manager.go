// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Browser cookie names. SESSIONID is HttpOnly; the other two are
// deliberately script-readable so the storefront can address
// per-customer resources without a round-trip.
const (
	CookieSessionID    = "SESSIONID"
	CookieCustomerCode = "CUSTOMER_CODE"
	CookieCustomerID   = "CUSTOMERID"
)

// Known session data keys written by the auth flow. The data bag itself
// stays open so collaborators can add keys without touching this package.
const (
	KeyUserID    = "user_id"
	KeyUserRole  = "user_role"
	KeyUserEmail = "user_email"
	KeyAuthType  = "auth_type"
	KeyLoginTime = "login_time"
)

// Config carries the cookie attributes and TTL shared by all three
// identity cookies.
type Config struct {
	TTL          time.Duration
	CookieDomain string
	CookieSecure bool
	SameSite     http.SameSite
}

// Sessions is the long-lived factory that binds per-request Managers to
// an injected store. One instance per process.
type Sessions struct {
	store  Store
	cfg    Config
	logger *zap.Logger
}

func New(store Store, cfg Config, logger *zap.Logger) *Sessions {
	return &Sessions{store: store, cfg: cfg, logger: logger}
}

// TTL returns the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.cfg.TTL
}

// Bind mints a Manager for one request/response pair. The caller must
// invoke Load before handing the manager to route logic and Save on
// request teardown.
func (s *Sessions) Bind(w http.ResponseWriter, r *http.Request) *Manager {
	return &Manager{
		store:  s.store,
		cfg:    s.cfg,
		logger: s.logger,
		w:      w,
		r:      r,
		data:   map[string]any{},
	}
}

// Manager is the per-request session façade. It resolves identity across
// the store-backed session and the fallback identity cookies, and never
// lets session bookkeeping surface an error into route code: every
// operation here logs and degrades instead of failing the request.
type Manager struct {
	store  Store
	cfg    Config
	logger *zap.Logger
	w      http.ResponseWriter
	r      *http.Request

	sessionID    string
	customerCode string
	customerID   string
	data         map[string]any
	fresh        bool
}

// Load resolves the incoming session cookie against the store. A valid
// record moves the manager to the loaded state; anything else (no
// cookie, evicted record, unreadable payload, unreachable store) mints a
// fresh session id and issues a new session cookie. When a cookie was
// presented but its record is gone, the three identity cookies are
// cleared first so the browser does not keep claiming a dead session.
func (m *Manager) Load(ctx context.Context) {
	m.sessionID = cookieValue(m.r, CookieSessionID)
	m.customerCode = cookieValue(m.r, CookieCustomerCode)
	m.customerID = cookieValue(m.r, CookieCustomerID)

	valid := false
	if m.sessionID != "" {
		if m.store.Exists(ctx, m.sessionID) {
			data, err := m.store.Get(ctx, m.sessionID)
			if err != nil {
				m.logger.Warn("failed to load session data",
					zap.String("session_id", m.sessionID),
					zap.Error(err),
				)
			} else {
				m.data = data
				valid = true
			}
		}
		if !valid {
			// Presented but dead: expired cleanup, distinct from the
			// never-had-a-session path below.
			m.ClearExpiredCookies()
			m.customerCode = ""
			m.customerID = ""
		}
	}

	if !valid {
		m.sessionID = uuid.NewString()
		m.data = map[string]any{}
		m.fresh = true
		m.SetSessionCookie(m.sessionID)
	}
}

// Save persists the in-memory mapping back to the store. A session that
// never received a write leaves no record: anonymous browsing must not
// consume store capacity even though a cookie was issued. Failures are
// logged and swallowed; the user degrades to "session not saved this
// round", never to an error page.
func (m *Manager) Save(ctx context.Context) {
	if m.sessionID == "" || len(m.data) == 0 {
		return
	}
	if err := m.store.Put(ctx, m.sessionID, m.data, m.cfg.TTL); err != nil {
		m.logger.Error("failed to persist session",
			zap.String("session_id", m.sessionID),
			zap.Error(err),
		)
	}
}

// ID returns the session id bound to this request, which may be freshly
// minted.
func (m *Manager) ID() string { return m.sessionID }

// Fresh reports whether this request minted a new session id.
func (m *Manager) Fresh() bool { return m.fresh }

// CustomerCode returns the customer code (email) carried by the request
// cookies, or set during this request.
func (m *Manager) CustomerCode() string { return m.customerCode }

// CustomerID returns the customer id cookie value as received or set.
func (m *Manager) CustomerID() string { return m.customerID }

// Get reads a value from the in-memory mapping. No I/O.
func (m *Manager) Get(key string) any {
	return m.data[key]
}

// GetString reads a session value as a string, returning "" when the key
// is absent or not a string.
func (m *Manager) GetString(key string) string {
	if v, ok := m.data[key].(string); ok {
		return v
	}
	return ""
}

// GetInt64 reads a session value as an int64. Values that round-tripped
// through JSON arrive as float64 or json.Number and are converted.
func (m *Manager) GetInt64(key string) (int64, bool) {
	switch v := m.data[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Set writes a value into the in-memory mapping. The value must be
// JSON-serializable; that is the caller's contract, not validated here.
func (m *Manager) Set(key string, value any) {
	m.data[key] = value
}

// Delete removes a key from the in-memory mapping. Idempotent.
func (m *Manager) Delete(key string) {
	delete(m.data, key)
}

// Clear tears the session down completely: the store record is deleted
// best-effort, the in-memory state is reset, and all three identity
// cookies are instructed for deletion. Logout and failed-login paths both
// go through here, and it is safe to call when no session was ever
// established.
func (m *Manager) Clear(ctx context.Context) {
	if m.sessionID != "" {
		if err := m.store.Delete(ctx, m.sessionID); err != nil {
			m.logger.Warn("failed to delete session from store",
				zap.String("session_id", m.sessionID),
				zap.Error(err),
			)
		}
	}

	m.data = map[string]any{}
	m.sessionID = ""
	m.customerCode = ""
	m.customerID = ""
	m.fresh = false

	m.deleteCookie(CookieSessionID)
	m.deleteCookie(CookieCustomerCode)
	m.deleteCookie(CookieCustomerID)
}

// IsSessionExpired reports whether the given session id, not necessarily
// the one bound to this request, has no live record in the store.
func (m *Manager) IsSessionExpired(ctx context.Context, sessionID string) bool {
	return !m.store.Exists(ctx, sessionID)
}

// ClearExpiredCookies deletes all three identity cookies without touching
// the store. Collaborators call this when they detect, via
// IsSessionExpired, that the presented cookie refers to a dead session
// the manager's own load did not bind.
func (m *Manager) ClearExpiredCookies() {
	m.deleteCookie(CookieSessionID)
	m.deleteCookie(CookieCustomerCode)
	m.deleteCookie(CookieCustomerID)
}

// SetSessionCookie issues the HttpOnly session cookie.
func (m *Manager) SetSessionCookie(sessionID string) {
	if sessionID == "" {
		sessionID = m.sessionID
	}
	if sessionID == "" {
		return
	}
	m.setCookie(CookieSessionID, sessionID, true)
}

// SetCustomerCodeCookie issues the script-readable customer code cookie
// carrying the user's email.
func (m *Manager) SetCustomerCodeCookie(email string) {
	if email == "" {
		return
	}
	m.customerCode = email
	m.setCookie(CookieCustomerCode, email, false)
}

// SetCustomerIDCookie issues the script-readable customer id cookie.
func (m *Manager) SetCustomerIDCookie(userID int64) {
	if userID == 0 {
		return
	}
	m.customerID = strconv.FormatInt(userID, 10)
	m.setCookie(CookieCustomerID, m.customerID, false)
}

func (m *Manager) setCookie(name, value string, httpOnly bool) {
	http.SetCookie(m.w, &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   int(m.cfg.TTL.Seconds()),
		Domain:   m.cfg.CookieDomain,
		Path:     "/",
		Secure:   m.cfg.CookieSecure,
		SameSite: m.cfg.SameSite,
		HttpOnly: httpOnly,
	})
}

func (m *Manager) deleteCookie(name string) {
	http.SetCookie(m.w, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Domain:   m.cfg.CookieDomain,
		Path:     "/",
		Secure:   m.cfg.CookieSecure,
		SameSite: m.cfg.SameSite,
	})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
