package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/braids-scheduler/internal/config"
)

type flag bool

func (f flag) Authenticated() bool { return bool(f) }

func protected(cfg *config.Config, f SessionFlag) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/admin", AuthMiddleware(cfg, f), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubject))
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	token, err := IssueToken(cfg.JWTSecret, time.Now())
	require.NoError(t, err)

	expired, err := IssueToken(cfg.JWTSecret, time.Now().Add(-25*time.Hour))
	require.NoError(t, err)

	foreign, err := IssueToken("other", time.Now())
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": AdminSubject})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		flag   bool
		header string
		want   int
	}{
		{"valid", true, "Bearer " + token, http.StatusOK},
		{"logged out", false, "Bearer " + token, http.StatusUnauthorized},
		{"missing header", true, "", http.StatusUnauthorized},
		{"wrong scheme", true, "Basic " + token, http.StatusUnauthorized},
		{"expired", true, "Bearer " + expired, http.StatusUnauthorized},
		{"other secret", true, "Bearer " + foreign, http.StatusUnauthorized},
		{"alg none", true, "Bearer " + unsigned, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(protected(cfg, flag(tt.flag)), tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, AdminSubject, w.Body.String())
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := protected(&config.Config{JWTSecret: "x"}, flag(false))

	req := httptest.NewRequest(http.MethodOptions, "/admin", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/admin", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
