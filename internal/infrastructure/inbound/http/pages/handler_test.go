package pages

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	"post-board-service/internal/infrastructure/inbound/http/session"
	"post-board-service/internal/infrastructure/logger"
	mockservice "post-board-service/mocks/service"
)

func newPagesRouter(t *testing.T, svc *mockservice.Service, user *model.SessionUser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		}
		c.Next()
	})
	NewHandler(svc, logger.New("test")).Register(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Index(t *testing.T) {
	t.Run("Lists posts and greets the session user", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("ListPostsDesc", mock.Anything).Return([]*model.PostListItem{
			{ID: 2, Title: "Second <b>", Author: "bob"},
			{ID: 1, Title: "First", Author: "alice"},
		}, nil)

		rec := get(newPagesRouter(t, svc, &model.SessionUser{Name: "Carol"}), "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Carol")
		assert.Contains(t, body, "Second &lt;b&gt;")
		assert.Less(t, strings.Index(body, "/posts/update/2"), strings.Index(body, "/posts/update/1"))
	})

	t.Run("Anonymous visitor", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("ListPostsDesc", mock.Anything).Return([]*model.PostListItem{}, nil)

		rec := get(newPagesRouter(t, svc, nil), "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Logged in as")
		assert.Contains(t, rec.Body.String(), "No posts yet.")
	})

	t.Run("Store failure", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("ListPostsDesc", mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)

		rec := get(newPagesRouter(t, svc, nil), "/")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_SaveForm(t *testing.T) {
	rec := get(newPagesRouter(t, mockservice.NewService(t), nil), "/posts/save")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "btn-save")
}

func TestHandler_UpdateForm(t *testing.T) {
	t.Run("Prefilled from the post", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(4)).
			Return(&model.PostDetail{ID: 4, Title: "Title4", Content: "Content4", Author: "alice"}, nil)

		rec := get(newPagesRouter(t, svc, nil), "/posts/update/4")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `value="Title4"`)
		assert.Contains(t, body, "Content4")
		assert.Contains(t, body, `value="alice"`)
	})

	t.Run("Absent post", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("GetPostByID", mock.Anything, int64(4)).Return(nil, custom_errors.NewPostNotFound(4))

		rec := get(newPagesRouter(t, svc, nil), "/posts/update/4")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "post not found: id=4")
	})

	t.Run("Bad id", func(t *testing.T) {
		rec := get(newPagesRouter(t, mockservice.NewService(t), nil), "/posts/update/x")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
