package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/session"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (int64, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreatePostRequestInternal struct {
	Title   string `validate:"required,max=500"`
	Content string `validate:"required"`
	Author  string `validate:"required"`
}

func (h *CreatePostHandler) CreatePost(c *gin.Context) {
	user := session.UserFromContext(c.Request.Context())
	if user == nil {
		respondServiceError(c, h.log, "create", custom_errors.ErrUnauthenticated)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	validationReq := &CreatePostRequestInternal{
		Title:   req.Title,
		Content: req.Content,
		Author:  user.Name,
	}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("Request validation failed", slog.String("error", err.Error()))
		respondInvalid(c, err)
		return
	}

	id, err := h.postService.CreatePost(c.Request.Context(), &model.CreatePostDTO{
		Title:   validationReq.Title,
		Content: validationReq.Content,
		Author:  validationReq.Author,
	})
	if err != nil {
		respondServiceError(c, h.log, "create", err)
		return
	}

	h.log.Debug("Successfully created post", slog.Int64("post_id", id))
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

type IDResponse struct {
	ID int64 `json:"id"`
}
