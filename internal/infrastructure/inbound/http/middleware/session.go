package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/http/response"
	"post-board-service/internal/infrastructure/inbound/http/session"
)

type TokenParser interface {
	Parse(token string) (*model.SessionUser, error)
}

type SessionMiddleware struct {
	parser     TokenParser
	cookieName string
	log        ports.Logger
}

func NewSessionMiddleware(parser TokenParser, cookieName string, log ports.Logger) *SessionMiddleware {
	return &SessionMiddleware{parser: parser, cookieName: cookieName, log: log}
}

// Attach resolves the session user when credentials are present. Anonymous
// and invalid credentials both continue without a user.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := m.parser.Parse(token)
		if err != nil {
			m.log.Debug("Ignoring invalid session token", slog.String("error", err.Error()))
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.UserFromContext(c.Request.Context()) == nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session")
			return
		}
		c.Next()
	}
}

func (m *SessionMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if m.cookieName != "" {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			return cookie
		}
	}
	return ""
}
