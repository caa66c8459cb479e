package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-board-service/internal/infrastructure/config"
	"post-board-service/internal/infrastructure/inbound/http/session"
	"post-board-service/internal/infrastructure/logger"
)

func TestNewSessionMiddleware_RequiresSecret(t *testing.T) {
	log := logger.New("test")

	mw, err := newSessionMiddleware(config.Auth{Issuer: "post-board", CookieName: "session"}, log)
	assert.ErrorIs(t, err, session.ErrNoSecret)
	assert.Nil(t, mw)

	mw, err = newSessionMiddleware(config.Auth{JWTSecret: "s3cret", Issuer: "post-board", CookieName: "session"}, log)
	require.NoError(t, err)
	assert.NotNil(t, mw)
}
