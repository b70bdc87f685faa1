package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/riaz37/job-finder-sub001/internal/ratelimit"
	"github.com/riaz37/job-finder-sub001/internal/session"
	"github.com/riaz37/job-finder-sub001/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type gateFixture struct {
	router   *gin.Engine
	mr       *miniredis.Miniredis
	sessions *session.Store
	codec    *token.Codec
}

func newGateFixture(t *testing.T, limit int) *gateFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := slog.New(slog.DiscardHandler)
	codec := token.NewCodec("test-secret", time.Hour)
	sessions := session.NewStore(rdb)
	limiter := ratelimit.New(rdb, limit, log)
	excluded := ExcludedPaths()

	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.Use(AuthMiddleware(codec, sessions, excluded, log))
	router.Use(RateLimitMiddleware(limiter, excluded))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/api/v1/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetAuthUserID(c)})
	})

	return &gateFixture{router: router, mr: mr, sessions: sessions, codec: codec}
}

func (f *gateFixture) login(t *testing.T, userID string) string {
	t.Helper()
	tok, err := f.codec.Issue(userID, 0)
	require.NoError(t, err)
	err = f.sessions.Set(context.Background(), userID, session.Record{UserID: userID, Token: tok}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *gateFixture) do(path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestExcludedPathsBypassAuth(t *testing.T) {
	f := newGateFixture(t, 60)

	w := f.do("/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejections(t *testing.T) {
	f := newGateFixture(t, 60)
	tok := f.login(t, "u1")

	tests := []struct {
		name       string
		bearer     string
		wantDetail string
	}{
		{"missing header", "", "Authorization header missing"},
		{"not bearer", "Basic dXNlcjpwYXNz", "Invalid authorization header format"},
		{"garbage token", "Bearer not-a-token", "Invalid or expired token"},
		{"foreign signature", "Bearer " + foreignToken(t), "Invalid or expired token"},
		{"no session", "Bearer " + tok, "Session expired or invalid"},
	}

	// Kill the session for the last case only after issuing the token.
	require.NoError(t, f.sessions.Delete(context.Background(), "u1"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do("/api/v1/protected", tt.bearer)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail":"`+tt.wantDetail+`"}`, w.Body.String())
		})
	}
}

func foreignToken(t *testing.T) string {
	t.Helper()
	other := token.NewCodec("other-secret", time.Hour)
	tok, err := other.Issue("u1", 0)
	require.NoError(t, err)
	return tok
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	f := newGateFixture(t, 60)
	tok := f.login(t, "u1")

	w := f.do("/api/v1/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthRejectsSupersededToken(t *testing.T) {
	f := newGateFixture(t, 60)
	old := f.login(t, "u1")
	// A second login overwrites the session record.
	fresh := f.login(t, "u1")

	w := f.do("/api/v1/protected", "Bearer "+old)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Session expired or invalid"}`, w.Body.String())

	w = f.do("/api/v1/protected", "Bearer "+fresh)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthStoreOutageIsServerError(t *testing.T) {
	f := newGateFixture(t, 60)
	tok := f.login(t, "u1")

	f.mr.Close()
	w := f.do("/api/v1/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Session validation failed"}`, w.Body.String())
}

func TestRateLimitRejectsAboveLimit(t *testing.T) {
	f := newGateFixture(t, 3)
	tok := f.login(t, "u1")

	for i := 0; i < 3; i++ {
		w := f.do("/api/v1/protected", "Bearer "+tok)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := f.do("/api/v1/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"Rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitSkipsExcludedPaths(t *testing.T) {
	f := newGateFixture(t, 1)

	for i := 0; i < 5; i++ {
		w := f.do("/health", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	f := newGateFixture(t, 60)

	// Applied to rejections as well as successes.
	for _, path := range []string{"/health", "/api/v1/protected"} {
		w := f.do(path, "")
		h := w.Header()
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
		assert.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
		assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	}
}
