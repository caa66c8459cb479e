package http_server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	post_service "post-board-service/internal/domain/ports/input/post"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/middleware"
	"post-board-service/internal/infrastructure/inbound/http/pages"
	post_http "post-board-service/internal/infrastructure/inbound/http/post"
)

type RouterConfig struct {
	PostService post_service.Service
	Validate    *validator.Validate
	Session     *middleware.SessionMiddleware
	Log         ports.Logger
	Metrics     ports.MetricsProvider

	AllowedOrigins []string
	RequestTimeout time.Duration
	// TracingService enables otelgin spans under this service name when set.
	TracingService string
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := pages.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(middleware.TraceContext())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cfg.Session.Attach())

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	pages.NewHandler(cfg.PostService, cfg.Log).Register(r)

	api := r.Group("/api/v1")
	protected := api.Group("")
	protected.Use(cfg.Session.RequireSession())
	post_http.NewAPI(cfg.PostService, cfg.Validate, cfg.Log).Register(api, protected)

	return r, nil
}
