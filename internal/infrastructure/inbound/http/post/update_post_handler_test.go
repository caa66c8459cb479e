package post_http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	post_http "post-board-service/internal/infrastructure/inbound/http/post"
	"post-board-service/internal/infrastructure/inbound/http/response"
	mockservice "post-board-service/mocks/service"
)

func TestUpdatePostHandler_UpdatePost(t *testing.T) {
	user := &model.SessionUser{Name: "bob"}
	body := post_http.UpdatePostRequest{Title: "New", Content: "Body"}

	tests := []struct {
		name       string
		path       string
		body       any
		mocks      func(svc *mockservice.Service)
		wantStatus int
		wantCode   string
	}{
		{
			name: "Success",
			path: "/api/v1/posts/5",
			body: body,
			mocks: func(svc *mockservice.Service) {
				svc.On("UpdatePost", mock.Anything, int64(5), &model.UpdatePostDTO{Title: "New", Content: "Body"}).
					Return(int64(5), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Not found",
			path: "/api/v1/posts/5",
			body: body,
			mocks: func(svc *mockservice.Service) {
				svc.On("UpdatePost", mock.Anything, int64(5), mock.Anything).
					Return(int64(0), custom_errors.NewPostNotFound(5))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "Non numeric id",
			path:       "/api/v1/posts/abc",
			body:       body,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "Zero id",
			path:       "/api/v1/posts/0",
			body:       body,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "Empty content",
			path:       "/api/v1/posts/5",
			body:       post_http.UpdatePostRequest{Title: "New"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mockservice.NewService(t)
			if tt.mocks != nil {
				tt.mocks(svc)
			}
			r := newTestRouter(t, svc, user)

			rec := doRequest(t, r, http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[response.ErrorEnvelope](t, rec).Error.Code)
				return
			}
			assert.Equal(t, int64(5), decode[post_http.IDResponse](t, rec).ID)
		})
	}
}
