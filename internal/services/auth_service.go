package services

import (
	"context"

	wedbricks_errors "wedbricks/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims the external auth subsystem mints.
// This service only validates and reads them.
type AccessClaims struct {
	ParticipantID string `json:"sub"`
	Kind          string `json:"kind"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// ParseAccessToken validates an HMAC-signed bearer token and returns
// its claims.
func (s *AuthService) ParseAccessToken(token string) (*AccessClaims, error) {
	if token == "" {
		return nil, wedbricks_errors.ErrUnauthorized
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, wedbricks_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, wedbricks_errors.ErrUnauthorized
	}
	if claims.ParticipantID == "" {
		return nil, wedbricks_errors.ErrUnauthorized
	}
	return claims, nil
}

type participantCtxKey struct{}

// WithParticipantContext stores the authenticated participant on the
// request context.
func WithParticipantContext(ctx context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(ctx, participantCtxKey{}, claims)
}

// ParticipantFromContext returns the authenticated participant, if any.
func ParticipantFromContext(ctx context.Context) (*AccessClaims, bool) {
	claims, ok := ctx.Value(participantCtxKey{}).(*AccessClaims)
	return claims, ok
}
