package post_http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(c *gin.Context) {
	validationReq := &PostIDRequestInternal{ID: parseID(c)}
	if err := h.validate.Struct(validationReq); err != nil {
		respondInvalid(c, err)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), validationReq.ID); err != nil {
		respondServiceError(c, h.log, "delete", err)
		return
	}

	h.log.Debug("Successfully deleted post", slog.Int64("post_id", validationReq.ID))
	response.RespondOK(c, IDResponse{ID: validationReq.ID})
}
