// internal/pkg/session/manager_test.go
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory Store that JSON round-trips payloads the way
// the Redis store does, and can simulate a backend outage.
type memStore struct {
	mu      sync.Mutex
	records map[string][]byte
	down    bool
}

func newMemStore() *memStore {
	return &memStore{records: map[string][]byte{}}
}

func (s *memStore) Exists(_ context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return false
	}
	_, ok := s.records[sessionID]
	return ok
}

func (s *memStore) Get(_ context.Context, sessionID string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, context.DeadlineExceeded
	}
	raw, ok := s.records[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *memStore) Put(_ context.Context, sessionID string, data map[string]any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return context.DeadlineExceeded
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.records[sessionID] = raw
	return nil
}

func (s *memStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return context.DeadlineExceeded
	}
	delete(s.records, sessionID)
	return nil
}

func testConfig() Config {
	return Config{
		TTL:          30 * time.Minute,
		CookieDomain: "example.com",
		CookieSecure: true,
		SameSite:     http.SameSiteLaxMode,
	}
}

func newTestSessions(store Store) *Sessions {
	return New(store, testConfig(), zap.NewNop())
}

func bindRequest(t *testing.T, sessions *Sessions, cookies ...*http.Cookie) (*Manager, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	return sessions.Bind(w, req), w
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// lastResponseCookie returns the final instruction for a cookie name when
// a response carries more than one (e.g. delete-then-set).
func lastResponseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func TestExpiryIsStoreDefined(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m, _ := bindRequest(t, sessions)
	m.Load(ctx)

	assert.True(t, m.IsSessionExpired(ctx, "no-such-session"))

	require.NoError(t, store.Put(ctx, "live", map[string]any{"user_id": 1}, time.Minute))
	assert.False(t, m.IsSessionExpired(ctx, "live"))

	require.NoError(t, store.Delete(ctx, "live"))
	assert.True(t, m.IsSessionExpired(ctx, "live"))
}

func TestFreshSessionLeavesNoStoreRecord(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m, w := bindRequest(t, sessions)
	m.Load(ctx)
	require.True(t, m.Fresh())

	// No Set calls: teardown must not write.
	m.Save(ctx)

	assert.Empty(t, store.records)

	c := responseCookie(t, w, CookieSessionID)
	require.NotNil(t, c, "fresh session must still issue a session cookie")
	assert.Equal(t, m.ID(), c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, int((30 * time.Minute).Seconds()), c.MaxAge)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m1, _ := bindRequest(t, sessions)
	m1.Load(ctx)
	m1.Set("user_id", int64(42))
	m1.Set("user_email", "a@b.com")
	m1.Set("prefs", map[string]any{"units": "mm"})
	m1.Save(ctx)

	m2, _ := bindRequest(t, sessions, &http.Cookie{Name: CookieSessionID, Value: m1.ID()})
	m2.Load(ctx)
	require.False(t, m2.Fresh())

	id, ok := m2.GetInt64("user_id")
	require.True(t, ok, "numeric values must survive a JSON round-trip")
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "a@b.com", m2.GetString("user_email"))
	assert.Equal(t, map[string]any{"units": "mm"}, m2.Get("prefs"))
}

func TestClearIsTotal(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m1, _ := bindRequest(t, sessions)
	m1.Load(ctx)
	m1.Set("user_id", int64(42))
	m1.Save(ctx)
	oldID := m1.ID()

	m2, w := bindRequest(t, sessions, &http.Cookie{Name: CookieSessionID, Value: oldID})
	m2.Load(ctx)
	m2.Clear(ctx)

	assert.Nil(t, m2.Get("user_id"))
	assert.Empty(t, m2.ID())
	assert.Empty(t, m2.CustomerCode())
	assert.Empty(t, m2.CustomerID())
	assert.True(t, m2.IsSessionExpired(ctx, oldID))

	for _, name := range []string{CookieSessionID, CookieCustomerCode, CookieCustomerID} {
		c := lastResponseCookie(t, w, name)
		require.NotNil(t, c, "clear must instruct deletion of %s", name)
		assert.Negative(t, c.MaxAge)
	}
}

func TestClearWithoutEstablishedSession(t *testing.T) {
	t.Parallel()

	sessions := newTestSessions(newMemStore())
	m, _ := bindRequest(t, sessions)

	// No Load: Clear must still be safe.
	assert.NotPanics(t, func() { m.Clear(context.Background()) })
}

func TestFailClosedOnStoreOutage(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	// Establish a session, then take the store down.
	m1, _ := bindRequest(t, sessions)
	m1.Load(ctx)
	m1.Set("user_id", int64(7))
	m1.Save(ctx)

	store.mu.Lock()
	store.down = true
	store.mu.Unlock()

	m2, w := bindRequest(t, sessions, &http.Cookie{Name: CookieSessionID, Value: m1.ID()})
	assert.NotPanics(t, func() { m2.Load(ctx) })

	assert.True(t, m2.Fresh(), "unreachable store must read as expired")
	assert.NotEqual(t, m1.ID(), m2.ID())
	require.NotNil(t, lastResponseCookie(t, w, CookieSessionID))

	// Teardown persist failure is swallowed too.
	m2.Set("k", "v")
	assert.NotPanics(t, func() { m2.Save(ctx) })
}

func TestLoginScenario(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m, w := bindRequest(t, sessions)
	m.Load(ctx)
	require.True(t, m.Fresh())
	s1 := m.ID()

	m.Set("user_id", int64(42))
	m.Set("user_email", "a@b.com")
	m.Save(ctx)

	m.SetSessionCookie(s1)
	m.SetCustomerCodeCookie("a@b.com")
	m.SetCustomerIDCookie(42)

	data, err := store.Get(ctx, s1)
	require.NoError(t, err)
	assert.Equal(t, float64(42), data["user_id"])
	assert.Equal(t, "a@b.com", data["user_email"])

	sc := lastResponseCookie(t, w, CookieSessionID)
	require.NotNil(t, sc)
	assert.Equal(t, s1, sc.Value)

	cc := responseCookie(t, w, CookieCustomerCode)
	require.NotNil(t, cc)
	assert.Equal(t, "a@b.com", cc.Value)
	assert.False(t, cc.HttpOnly)

	ci := responseCookie(t, w, CookieCustomerID)
	require.NotNil(t, ci)
	assert.Equal(t, "42", ci.Value)
	assert.False(t, ci.HttpOnly)
}

func TestExpiredSessionCleanup(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	// S0 is presented but has no store record.
	m, w := bindRequest(t, sessions,
		&http.Cookie{Name: CookieSessionID, Value: "S0"},
		&http.Cookie{Name: CookieCustomerCode, Value: "a@b.com"},
		&http.Cookie{Name: CookieCustomerID, Value: "42"},
	)
	m.Load(ctx)

	require.True(t, m.Fresh())
	assert.NotEqual(t, "S0", m.ID())
	assert.Empty(t, m.CustomerCode())
	assert.Empty(t, m.CustomerID())

	// Deletion instructions for all three, plus a fresh session cookie.
	for _, name := range []string{CookieCustomerCode, CookieCustomerID} {
		c := responseCookie(t, w, name)
		require.NotNil(t, c, "expired cleanup must delete %s", name)
		assert.Negative(t, c.MaxAge)
	}

	var deleted, set bool
	for _, c := range w.Result().Cookies() {
		if c.Name != CookieSessionID {
			continue
		}
		if c.MaxAge < 0 {
			deleted = true
		}
		if c.Value == m.ID() && c.MaxAge > 0 {
			set = true
		}
	}
	assert.True(t, deleted, "stale session cookie must be deleted")
	assert.True(t, set, "fresh session cookie must be issued")
}

func TestLogoutScenario(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	m1, _ := bindRequest(t, sessions)
	m1.Load(ctx)
	m1.Set("user_id", int64(42))
	m1.Save(ctx)
	s1 := m1.ID()

	m2, w := bindRequest(t, sessions, &http.Cookie{Name: CookieSessionID, Value: s1})
	m2.Load(ctx)
	id, ok := m2.GetInt64("user_id")
	require.True(t, ok)
	require.Equal(t, int64(42), id)

	m2.Clear(ctx)

	assert.False(t, store.Exists(ctx, s1))
	assert.Nil(t, m2.Get("user_id"))
	for _, name := range []string{CookieSessionID, CookieCustomerCode, CookieCustomerID} {
		c := lastResponseCookie(t, w, name)
		require.NotNil(t, c)
		assert.Negative(t, c.MaxAge)
	}
}

func TestClearExpiredCookiesLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "other", map[string]any{"user_id": 1}, time.Minute))

	m, w := bindRequest(t, sessions)
	m.Load(ctx)
	m.ClearExpiredCookies()

	assert.True(t, store.Exists(ctx, "other"))
	for _, name := range []string{CookieSessionID, CookieCustomerCode, CookieCustomerID} {
		c := lastResponseCookie(t, w, name)
		require.NotNil(t, c)
		assert.Negative(t, c.MaxAge)
	}
}
