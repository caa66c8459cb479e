package post_http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
)

type PostUpdater interface {
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (int64, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	validate    *validator.Validate
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequestInternal struct {
	ID      int64  `validate:"gt=0"`
	Title   string `validate:"required,max=500"`
	Content string `validate:"required"`
}

func (h *UpdatePostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	validationReq := &UpdatePostRequestInternal{
		ID:      parseID(c),
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("Request validation failed", slog.String("id", c.Param("id")), slog.String("error", err.Error()))
		respondInvalid(c, err)
		return
	}

	id, err := h.postService.UpdatePost(c.Request.Context(), validationReq.ID, &model.UpdatePostDTO{
		Title:   validationReq.Title,
		Content: validationReq.Content,
	})
	if err != nil {
		respondServiceError(c, h.log, "update", err)
		return
	}

	response.RespondOK(c, IDResponse{ID: id})
}
