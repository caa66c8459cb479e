package post_http

import (
	"context"

	"github.com/gin-gonic/gin"

	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
)

type PostLister interface {
	ListPostsDesc(ctx context.Context) ([]*model.PostListItem, error)
}

type ListPostsHandler struct {
	postService PostLister
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		log:         log,
	}
}

type ListPostsResponse struct {
	Posts []*model.PostListItem `json:"posts"`
}

func (h *ListPostsHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPostsDesc(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, "list", err)
		return
	}
	if posts == nil {
		posts = []*model.PostListItem{}
	}

	response.RespondOK(c, ListPostsResponse{Posts: posts})
}
