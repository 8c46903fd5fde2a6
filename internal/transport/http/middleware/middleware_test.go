package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.GET("/login", RateLimitPerIP(0, 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/login", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/login", nil).Code)
	w := serve(r, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"too many requests"}`, w.Body.String())
}

func TestRecoveryAnswersJSON(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, http.MethodGet, "/", http.Header{KeyRequestID: {"abc"}})
	assert.Equal(t, "abc", w.Header().Get(KeyRequestID))
	assert.Equal(t, "abc", w.Body.String())

	w = serve(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestRequireAdmin(t *testing.T) {
	as := func(u *domain.User) gin.HandlerFunc {
		return func(c *gin.Context) {
			if u != nil {
				c.Set(keyCurrentUser, u)
			}
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	r := gin.New()
	r.GET("/anon", as(nil), RequireAdmin(), ok)
	r.GET("/user", as(&domain.User{ID: 1}), RequireAdmin(), ok)
	r.GET("/admin", as(&domain.User{ID: 2, IsAdmin: true}), RequireAdmin(), ok)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/anon", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/user", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", nil).Code)
}

func TestAuthJWTRejectsBeforeTouchingDB(t *testing.T) {
	svc := service.NewAuthService(&auth.JWTer{Secret: []byte("s"), TTL: time.Hour}, nil)
	r := gin.New()
	// the db is never reached for these headers
	r.GET("/me", AuthJWT(svc, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, h := range []string{"", "Token abc", "Bearer "} {
		w := serve(r, http.MethodGet, "/me", http.Header{"Authorization": {h}})
		assert.Equal(t, http.StatusUnauthorized, w.Code, h)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.True(t, strings.Contains(w.Body.String(), "not authenticated"))
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/slow", Timeout(10*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := serve(r, http.MethodGet, "/slow", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRequestIDRejectsJunk(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", http.Header{KeyRequestID: {"bad id\r\n"}})
	assert.NotEqual(t, "bad id\r\n", w.Header().Get(KeyRequestID))
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}
