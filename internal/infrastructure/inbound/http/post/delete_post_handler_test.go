package post_http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	post_http "post-board-service/internal/infrastructure/inbound/http/post"
	mockservice "post-board-service/mocks/service"
)

func TestDeletePostHandler_DeletePost(t *testing.T) {
	user := &model.SessionUser{Name: "alice"}

	t.Run("Success", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("DeletePost", mock.Anything, int64(7)).Return(nil)

		rec := doRequest(t, newTestRouter(t, svc, user), http.MethodDelete, "/api/v1/posts/7", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), decode[post_http.IDResponse](t, rec).ID)
	})

	t.Run("Second delete is not found", func(t *testing.T) {
		svc := mockservice.NewService(t)
		svc.On("DeletePost", mock.Anything, int64(7)).Return(nil).Once()
		svc.On("DeletePost", mock.Anything, int64(7)).Return(custom_errors.NewPostNotFound(7)).Once()
		r := newTestRouter(t, svc, user)

		assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodDelete, "/api/v1/posts/7", nil).Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodDelete, "/api/v1/posts/7", nil).Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		svc := mockservice.NewService(t)

		rec := doRequest(t, newTestRouter(t, svc, user), http.MethodDelete, "/api/v1/posts/0", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
