package pages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/session"
)

type PostReader interface {
	GetPostByID(ctx context.Context, id int64) (*model.PostDetail, error)
	ListPostsDesc(ctx context.Context) ([]*model.PostListItem, error)
}

type Handler struct {
	posts PostReader
	log   ports.Logger
}

func NewHandler(posts PostReader, log ports.Logger) *Handler {
	return &Handler{posts: posts, log: log}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/posts/save", h.SaveForm)
	r.GET("/posts/update/:id", h.UpdateForm)
}

func (h *Handler) Index(c *gin.Context) {
	posts, err := h.posts.ListPostsDesc(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := gin.H{"posts": posts}
	if user := session.UserFromContext(c.Request.Context()); user != nil {
		data["userName"] = user.Name
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) SaveForm(c *gin.Context) {
	c.HTML(http.StatusOK, "posts-save.html", gin.H{})
}

func (h *Handler) UpdateForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.renderError(c, custom_errors.ErrInvalidInput)
		return
	}

	post, err := h.posts.GetPostByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "posts-update.html", gin.H{"post": post})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Something went wrong."
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, custom_errors.ErrInvalidInput):
		status, message = http.StatusBadRequest, "Invalid post id."
	default:
		h.log.Error("Failed to render page", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	}
	c.HTML(status, "error.html", gin.H{"status": status, "message": message})
}
