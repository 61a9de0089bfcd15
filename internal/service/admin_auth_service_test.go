package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reservas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admin *repository.Admin
	err   error
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*repository.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.admin == nil || f.admin.Email != email {
		return nil, nil
	}
	return f.admin, nil
}

func (f *fakeAdminRepo) CreateNewUser(ctx context.Context, email, password string) error {
	return errors.New("not implemented")
}

func (f *fakeAdminRepo) EnsureAdmin(ctx context.Context, email, password string) error {
	return nil
}

func newAdminRepo(t *testing.T, email, password string) *fakeAdminRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &fakeAdminRepo{admin: &repository.Admin{ID: 1, Email: email, PasswordHash: string(hash)}}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := NewAdminAuthService(newAdminRepo(t, "admin@gmail.com", "admin"), "secret", time.Hour)

	token, err := svc.Login(context.Background(), "admin@gmail.com", "admin")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Email != "admin@gmail.com" || claims.AdminID != 1 {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAdminAuthService(newAdminRepo(t, "admin@gmail.com", "admin"), "secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin@gmail.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "other@gmail.com", "admin"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRepositoryFailure(t *testing.T) {
	svc := NewAdminAuthService(&fakeAdminRepo{err: errors.New("db down")}, "secret", time.Hour)

	_, err := svc.Login(context.Background(), "admin@gmail.com", "admin")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want repository error", err)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	repo := newAdminRepo(t, "admin@gmail.com", "admin")
	svc := NewAdminAuthService(repo, "secret", time.Hour).(*adminAuthService)

	token, err := svc.Login(context.Background(), "admin@gmail.com", "admin")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	other := NewAdminAuthService(repo, "another-secret", time.Hour)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret error = %v, want ErrInvalidToken", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}

	if _, err := svc.VerifyToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token error = %v, want ErrInvalidToken", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{Email: "admin@gmail.com"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	if _, err := svc.VerifyToken(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unsigned token error = %v, want ErrInvalidToken", err)
	}
}
