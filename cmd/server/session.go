package main

import (
	"fmt"

	"post-board-service/internal/infrastructure/config"
	"post-board-service/internal/infrastructure/inbound/http/middleware"
	"post-board-service/internal/infrastructure/inbound/http/session"
	"post-board-service/internal/infrastructure/logger"
)

func newCodec(auth config.Auth) (*session.Codec, error) {
	if auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is not set: %w", session.ErrNoSecret)
	}
	return session.NewCodec(auth.JWTSecret, auth.Issuer), nil
}

func newSessionMiddleware(auth config.Auth, log *logger.Logger) (*middleware.SessionMiddleware, error) {
	codec, err := newCodec(auth)
	if err != nil {
		return nil, err
	}
	return middleware.NewSessionMiddleware(codec, auth.CookieName, log), nil
}
