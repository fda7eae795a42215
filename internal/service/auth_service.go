package service

import (
	"context"
	"crypto/subtle"
	"time"

	appErr "github.com/dishahq/disha/internal/pkg/errors"
	"github.com/dishahq/disha/internal/pkg/jwt"
	"github.com/dishahq/disha/internal/pkg/password"
)

const RoleAdmin = "admin"

// AuthService authenticates the single configured admin account. There
// is no user table; catalog maintenance is the only protected surface.
type AuthService struct {
	adminUser string
	adminHash string
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(adminUser, adminHash string, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{
		adminUser: adminUser,
		adminHash: adminHash,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (string, error) {
	_ = ctx
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) != 1 {
		return "", appErr.ErrUnauthorized
	}
	if err := password.Compare(s.adminHash, plainPassword); err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateToken(username, RoleAdmin, s.jwtSecret, s.jwtTTL)
}
