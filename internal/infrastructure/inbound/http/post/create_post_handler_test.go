package post_http_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	post_http "post-board-service/internal/infrastructure/inbound/http/post"
	"post-board-service/internal/infrastructure/inbound/http/response"
	mockservice "post-board-service/mocks/service"
)

func TestCreatePostHandler_CreatePost(t *testing.T) {
	alice := &model.SessionUser{Name: "alice", Email: "alice@example.com"}

	tests := []struct {
		name       string
		user       *model.SessionUser
		body       any
		mocks      func(svc *mockservice.Service)
		wantStatus int
		wantID     int64
		wantCode   string
	}{
		{
			name: "Success takes author from session",
			user: alice,
			body: post_http.CreatePostRequest{Title: "Hello", Content: "World"},
			mocks: func(svc *mockservice.Service) {
				svc.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World", Author: "alice"}).
					Return(int64(10), nil)
			},
			wantStatus: http.StatusCreated,
			wantID:     10,
		},
		{
			name:       "No session",
			body:       post_http.CreatePostRequest{Title: "Hello", Content: "World"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "Malformed JSON",
			user:       alice,
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "Missing title",
			user:       alice,
			body:       post_http.CreatePostRequest{Content: "World"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "Title too long",
			user:       alice,
			body:       post_http.CreatePostRequest{Title: strings.Repeat("x", 501), Content: "World"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name: "Store failure",
			user: alice,
			body: post_http.CreatePostRequest{Title: "Hello", Content: "World"},
			mocks: func(svc *mockservice.Service) {
				svc.On("CreatePost", mock.Anything, mock.Anything).
					Return(int64(0), errors.Join(custom_errors.ErrDatabaseQuery, errors.New("connection reset")))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mockservice.NewService(t)
			if tt.mocks != nil {
				tt.mocks(svc)
			}
			r := newTestRouter(t, svc, tt.user)

			rec := doRequest(t, r, http.MethodPost, "/api/v1/posts", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				env := decode[response.ErrorEnvelope](t, rec)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				assert.NotContains(t, env.Error.Message, "connection reset")
				return
			}
			assert.Equal(t, tt.wantID, decode[post_http.IDResponse](t, rec).ID)
		})
	}
}
