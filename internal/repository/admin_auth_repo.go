package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Admin struct {
	ID           int    `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

type AdminAuthRepository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	CreateNewUser(ctx context.Context, email, password string) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

type adminAuthRepository struct {
	db *DB
}

func NewAdminAuthRepository(db *DB) AdminAuthRepository {
	return &adminAuthRepository{db: db}
}

// GetByEmail returns nil, nil when no admin has that email.
func (r *adminAuthRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	query := r.db.Rebind("SELECT id, email, password_hash FROM admins WHERE email = ?")
	err := r.db.GetContext(ctx, &admin, query, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminAuthRepository) CreateNewUser(ctx context.Context, email, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := r.db.Rebind("INSERT INTO admins (email, password_hash) VALUES (?, ?)")
	if _, err := r.db.ExecContext(ctx, query, normalizeEmail(email), string(hashedPassword)); err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// EnsureAdmin seeds the admin account when it does not exist yet. An existing
// account keeps its stored password.
func (r *adminAuthRepository) EnsureAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("admin email and password cannot be empty")
	}
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error looking up admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := r.CreateNewUser(ctx, email, password); err != nil {
		return err
	}
	log.Printf("Seeded admin account %s", normalizeEmail(email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
