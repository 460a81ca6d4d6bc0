// internal/middleware/auth_middleware_test.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cncquote-service/internal/domain/user"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore keeps session records in memory, JSON round-tripping the
// data bag the way the redis store does.
type fakeStore struct {
	records map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string][]byte{}}
}

func (s *fakeStore) seed(t *testing.T, sessionID string, data map[string]any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	s.records[sessionID] = raw
}

func (s *fakeStore) Exists(_ context.Context, sessionID string) bool {
	_, ok := s.records[sessionID]
	return ok
}

func (s *fakeStore) Get(_ context.Context, sessionID string) (map[string]any, error) {
	raw, ok := s.records[sessionID]
	if !ok {
		return nil, session.ErrNotFound
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *fakeStore) Put(_ context.Context, sessionID string, data map[string]any, _ time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.records[sessionID] = raw
	return nil
}

func (s *fakeStore) Delete(_ context.Context, sessionID string) error {
	delete(s.records, sessionID)
	return nil
}

func newTestRouter(store session.Store, mws ...gin.HandlerFunc) (*gin.Engine, *int64) {
	gin.SetMode(gin.TestMode)
	sessions := session.New(store, session.Config{
		TTL:      30 * time.Minute,
		SameSite: http.SameSiteLaxMode,
	}, zap.NewNop())

	var gotUserID int64
	r := gin.New()
	r.Use(Session(sessions))
	r.Use(mws...)
	r.GET("/whoami", func(c *gin.Context) {
		gotUserID = MustGetUserID(c)
		c.Status(http.StatusOK)
	})
	return r, &gotUserID
}

func TestRequireAuthFromSession(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "sess-1", map[string]any{session.KeyUserID: 42})

	r, gotUserID := newTestRouter(store, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), *gotUserID)
}

func TestRequireAuthCustomerIDFallback(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	// Live session, but nothing in its data bag identifies the user.
	store.seed(t, "sess-2", map[string]any{"theme": "dark"})

	r, gotUserID := newTestRouter(store, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-2"})
	req.AddCookie(&http.Cookie{Name: session.CookieCustomerID, Value: "77"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(77), *gotUserID)
}

func TestRequireAuthRejectsMalformedCustomerID(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "sess-3", map[string]any{"theme": "dark"})

	r, _ := newTestRouter(store, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-3"})
	req.AddCookie(&http.Cookie{Name: session.CookieCustomerID, Value: "not-a-number"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid user info")
	assert.Contains(t, w.Body.String(), xerrors.ErrNoIdentity.Error())
}

func TestRequireAuthWithoutSessionCookie(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(newFakeStore(), RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not logged in")
	assert.Contains(t, w.Body.String(), xerrors.ErrNoIdentity.Error())
}

func TestRequireAuthExpiredSession(t *testing.T) {
	t.Parallel()

	// Store has no record for the presented cookie.
	r, _ := newTestRouter(newFakeStore(), RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-dead"})
	req.AddCookie(&http.Cookie{Name: session.CookieCustomerID, Value: "42"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session expired")
	assert.Contains(t, w.Body.String(), xerrors.ErrSessionExpired.Error())

	// The cookie jar must be instructed to drop the stale identity.
	deleted := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted[c.Name] = true
		}
	}
	assert.True(t, deleted[session.CookieCustomerCode])
	assert.True(t, deleted[session.CookieCustomerID])
}

func TestRequireCustomer(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "sess-4", map[string]any{session.KeyUserID: 5})

	r, _ := newTestRouter(store, RequireAuth(), RequireCustomer())

	t.Run("missing code cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-4"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("code cookie present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-4"})
		req.AddCookie(&http.Cookie{Name: session.CookieCustomerCode, Value: "buyer@example.com"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "sess-admin", map[string]any{
		session.KeyUserID:   1,
		session.KeyUserRole: user.RoleAdmin,
	})
	store.seed(t, "sess-user", map[string]any{
		session.KeyUserID:   2,
		session.KeyUserRole: user.RoleUser,
	})

	r, _ := newTestRouter(store, RequireAuth(), AdminOnly())

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-admin"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieSessionID, Value: "sess-user"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
