package post_http

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	post_service "post-board-service/internal/domain/ports/input/post"
	ports "post-board-service/internal/domain/ports/output"
)

// API groups the per-operation handlers behind one service.
type API struct {
	create *CreatePostHandler
	update *UpdatePostHandler
	get    *GetPostHandler
	list   *ListPostsHandler
	delete *DeletePostHandler
}

func NewAPI(postService post_service.Service, validate *validator.Validate, log ports.Logger) *API {
	return &API{
		create: NewCreatePostHandler(postService, validate, log),
		update: NewUpdatePostHandler(postService, validate, log),
		get:    NewGetPostHandler(postService, validate, log),
		list:   NewListPostsHandler(postService, log),
		delete: NewDeletePostHandler(postService, validate, log),
	}
}

// Register mounts the read routes on public and the mutating routes on protected.
func (a *API) Register(public, protected gin.IRoutes) {
	public.GET("/posts", a.list.ListPosts)
	public.GET("/posts/:id", a.get.GetPost)

	protected.POST("/posts", a.create.CreatePost)
	protected.PUT("/posts/:id", a.update.UpdatePost)
	protected.DELETE("/posts/:id", a.delete.DeletePost)
}
