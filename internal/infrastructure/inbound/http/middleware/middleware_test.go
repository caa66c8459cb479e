package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	"post-board-service/internal/infrastructure/inbound/http/session"
	"post-board-service/internal/infrastructure/logger"
)

type stubParser struct {
	user *model.SessionUser
	err  error
	seen string
}

func (s *stubParser) Parse(token string) (*model.SessionUser, error) {
	s.seen = token
	return s.user, s.err
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceContext())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	t.Run("generates request id", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := serve(r, req)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		allowedOrigins  []string
		origin          string
		wantStatus      int
		wantAllowOrigin string
		wantCredentials string
	}{
		{
			name:            "allowlisted origin gets credentials",
			allowedOrigins:  []string{"http://localhost:3000"},
			origin:          "http://localhost:3000",
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "http://localhost:3000",
			wantCredentials: "true",
		},
		{
			name:           "foreign origin rejected by allowlist",
			allowedOrigins: []string{"http://localhost:3000"},
			origin:         "https://evil.example",
			wantStatus:     http.StatusForbidden,
		},
		{
			name:            "wildcard never sends credentials",
			allowedOrigins:  []string{"*"},
			origin:          "https://evil.example",
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "*",
		},
		{
			name:            "empty list behaves like wildcard",
			allowedOrigins:  nil,
			origin:          "https://evil.example",
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowedOrigins))
			r.DELETE("/api/v1/posts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts/1", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
			rec := serve(r, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		<-c.Request.Context().Done()
		if errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
			c.Status(http.StatusGatewayTimeout)
			return
		}
		c.Status(http.StatusOK)
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newEngine := func(p *stubParser) *gin.Engine {
		m := NewSessionMiddleware(p, "session", logger.New("test"))
		r := gin.New()
		r.Use(m.Attach())
		r.GET("/whoami", func(c *gin.Context) {
			if u := session.UserFromContext(c.Request.Context()); u != nil {
				c.String(http.StatusOK, u.Name)
				return
			}
			c.String(http.StatusOK, "anonymous")
		})
		r.GET("/private", m.RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("bearer header", func(t *testing.T) {
		p := &stubParser{user: &model.SessionUser{Name: "alice"}}
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "bearer tok")
		rec := serve(newEngine(p), req)
		assert.Equal(t, "alice", rec.Body.String())
		assert.Equal(t, "tok", p.seen)
	})

	t.Run("cookie", func(t *testing.T) {
		p := &stubParser{user: &model.SessionUser{Name: "bob"}}
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-tok"})
		rec := serve(newEngine(p), req)
		assert.Equal(t, "bob", rec.Body.String())
		assert.Equal(t, "cookie-tok", p.seen)
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		p := &stubParser{err: custom_errors.ErrUnauthenticated}
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := serve(newEngine(p), req)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("require session", func(t *testing.T) {
		p := &stubParser{user: &model.SessionUser{Name: "alice"}}
		r := newEngine(p)

		rec := serve(r, httptest.NewRequest(http.MethodGet, "/private", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer tok")
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})
}
