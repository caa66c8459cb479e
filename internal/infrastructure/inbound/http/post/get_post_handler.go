package post_http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id int64) (*model.PostDetail, error)
}

type GetPostHandler struct {
	postService PostGetter
	validate    *validator.Validate
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, validate *validator.Validate, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type PostIDRequestInternal struct {
	ID int64 `validate:"gt=0"`
}

func (h *GetPostHandler) GetPost(c *gin.Context) {
	validationReq := &PostIDRequestInternal{ID: parseID(c)}
	if err := h.validate.Struct(validationReq); err != nil {
		respondInvalid(c, err)
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), validationReq.ID)
	if err != nil {
		respondServiceError(c, h.log, "get", err)
		return
	}

	response.RespondOK(c, post)
}
