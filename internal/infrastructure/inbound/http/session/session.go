package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
)

// ErrNoSecret is returned by every Codec built with an empty signing key.
var ErrNoSecret = errors.New("session signing secret is empty")

type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewCodec(secret, issuer string) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (c *Codec) Issue(user *model.SessionUser, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}
	if user == nil || user.Name == "" {
		return "", fmt.Errorf("%w: session user name is required", custom_errors.ErrInvalidInput)
	}
	now := c.now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse never accepts a token when the codec has no secret: an empty HMAC
// key would verify signatures anyone can produce.
func (c *Codec) Parse(token string) (*model.SessionUser, error) {
	if len(c.secret) == 0 {
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrUnauthenticated, ErrNoSecret)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrUnauthenticated, err)
	}
	if claims.Name == "" {
		return nil, fmt.Errorf("%w: token has no name claim", custom_errors.ErrUnauthenticated)
	}
	return &model.SessionUser{Name: claims.Name, Email: claims.Email}, nil
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns nil for anonymous requests.
func UserFromContext(ctx context.Context) *model.SessionUser {
	user, _ := ctx.Value(ctxKey{}).(*model.SessionUser)
	return user
}
