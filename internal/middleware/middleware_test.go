package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/advocate-scheduler/internal/config"
	"github.com/BruksfildServices01/advocate-scheduler/internal/middleware"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.PrometheusMetrics())

	secured := r.Group("/api/me")
	secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole("advocate"))
	secured.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.MustGet(middleware.ContextUserID).(uint),
			"role": c.GetString(middleware.ContextUserRole),
		})
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	r := newRouter(cfg)

	t.Run("valid advocate token", func(t *testing.T) {
		token, err := middleware.GenerateToken(cfg.JWTSecret, 7, "advocate")
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"role":"advocate"}`, w.Body.String())
	})

	t.Run("client role is forbidden", func(t *testing.T) {
		token, err := middleware.GenerateToken(cfg.JWTSecret, 8, "client")
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden_role")
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing_authorization_header")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := get(r, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_authorization_header")
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := middleware.GenerateToken("other", 7, "advocate")
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  7,
			"role": "advocate",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token without role", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": 7, "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token_payload")
	})
}

func TestPrometheusMetricsUsesRouteTemplate(t *testing.T) {
	r := newRouter(&config.Config{JWTSecret: "x"})

	before := testutil.ToFloat64(monitoring.RequestsTotal.WithLabelValues("GET", "/api/me", "401"))
	get(r, "")
	after := testutil.ToFloat64(monitoring.RequestsTotal.WithLabelValues("GET", "/api/me", "401"))

	assert.Equal(t, before+1, after)
}

func TestCORSPreflight(t *testing.T) {
	preflight := func(allowed []string, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(middleware.CORSMiddleware(allowed))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/x", strings.NewReader(""))
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("any origin when unrestricted", func(t *testing.T) {
		w := preflight(nil, "https://app.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowlisted origin", func(t *testing.T) {
		w := preflight([]string{" https://app.example.com/ "}, "https://app.example.com")
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		w := preflight([]string{"https://app.example.com"}, "https://evil.test")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

type recordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (tr *recordingTransport) Flush(time.Duration) bool       { return true }
func (tr *recordingTransport) Configure(sentry.ClientOptions) {}
func (tr *recordingTransport) Close()                         {}

func (tr *recordingTransport) SendEvent(ev *sentry.Event) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = append(tr.events, ev)
}

func TestSentryMiddlewareUsesRequestHub(t *testing.T) {
	tr := &recordingTransport{}
	require.NoError(t, sentry.Init(sentry.ClientOptions{Transport: tr}))
	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })

	var requestHub *sentry.Hub
	r := gin.New()
	r.Use(middleware.SentryMiddleware())
	r.GET("/boom/:id", func(c *gin.Context) {
		requestHub = sentry.GetHubFromContext(c.Request.Context())
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom/1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, requestHub)
	assert.NotSame(t, sentry.CurrentHub(), requestHub)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	var captured *sentry.Event
	for _, ev := range tr.events {
		if len(ev.Exception) > 0 {
			captured = ev
		}
	}
	require.NotNil(t, captured)
	assert.Equal(t, "boom", captured.Exception[0].Value)
	assert.Equal(t, "/boom/:id", captured.Tags["http.route"])
}
