package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/session"
)

func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []any{
			slog.String("method", strings.ToUpper(c.Request.Method)),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if reqID := c.GetString(ContextRequestID); reqID != "" {
			fields = append(fields, slog.String("request_id", reqID))
		}
		if traceID := c.GetString(ContextTraceID); traceID != "" {
			fields = append(fields, slog.String("trace_id", traceID))
		}
		if user := session.UserFromContext(c.Request.Context()); user != nil {
			fields = append(fields, slog.String("user", user.Name))
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
