package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reservas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session")
)

// SessionClaims is the payload of the session marker issued on login.
type SessionClaims struct {
	AdminID int    `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(token string) (*SessionClaims, error)
}

type adminAuthService struct {
	repo   repository.AdminAuthRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAdminAuthService(repo repository.AdminAuthRepository, secret string, ttl time.Duration) AdminAuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &adminAuthService{repo: repo, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT secret not set")
	}
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error looking up admin: %w", err)
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}

	// Comparamos el password hasheado
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := SessionClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *adminAuthService) VerifyToken(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
