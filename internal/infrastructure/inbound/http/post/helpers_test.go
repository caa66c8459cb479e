package post_http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	model "post-board-service/internal/domain/models"
	post_http "post-board-service/internal/infrastructure/inbound/http/post"
	"post-board-service/internal/infrastructure/inbound/http/session"
	"post-board-service/internal/infrastructure/logger"
	mockservice "post-board-service/mocks/service"
)

// newTestRouter mounts the API under /api/v1. A non-nil user is attached to
// every request the way the session middleware would.
func newTestRouter(t *testing.T, svc *mockservice.Service, user *model.SessionUser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	post_http.NewAPI(svc, validator.New(), logger.New("test")).Register(api, api)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
