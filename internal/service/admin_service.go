package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/repository"
)

var (
	ErrInvalidRole           = errors.New("role must be ADMIN, TEACHER or VIEWER")
	ErrBootstrapAccountUnset = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are not set")
)

// AdminService handles dashboard account management.
type AdminService struct {
	admins AdminStore
	auth   *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins AdminStore, auth *AuthService) *AdminService {
	return &AdminService{admins: admins, auth: auth}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

// Create hashes the password and stores a new account.
func (s *AdminService) Create(ctx context.Context, email, name, password string, role model.Role) (*model.Admin, error) {
	role = model.Role(strings.ToUpper(strings.TrimSpace(string(role))))
	if len(model.PermissionsFor(role)) == 0 {
		return nil, ErrInvalidRole
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Bootstrap makes sure the account named by ADMIN_EMAIL exists.
// An account that already exists is returned unchanged, password included.
func (s *AdminService) Bootstrap(ctx context.Context, cfg *config.Config) (*model.Admin, error) {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return nil, ErrBootstrapAccountUnset
	}

	existing, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, email, cfg.AdminName, cfg.AdminPassword, model.Role(cfg.AdminRole))
}
