package post_http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"post-board-service/internal/custom_errors"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
)

func respondServiceError(c *gin.Context, log ports.Logger, op string, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		if id, ok := custom_errors.NotFoundID(err); ok {
			log.Debug("Post not found", slog.String("op", op), slog.Int64("post_id", id))
		}
		response.RespondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, custom_errors.ErrInvalidInput):
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session")
	default:
		log.Error("Unexpected error", slog.String("op", op), slog.String("error", err.Error()))
		response.RespondError(c, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func parseID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func respondInvalid(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, "invalid_input", "invalid request: "+err.Error())
}
