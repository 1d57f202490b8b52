package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/cryptox"
	"github.com/ovenbird/recipebox/pkg/idx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

var (
	ErrBootstrapDisabled     = errors.New("bootstrap not enabled")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates administrative superuser accounts. The operation
// is gated by a pre-shared token from configuration; with no token
// configured the endpoint does not exist.
type BootstrapService struct {
	Store store.Store
	Token string
}

func (s *BootstrapService) Enabled() bool { return s.Token != "" }

// CreateSuperuser validates like registration but persists a staff/superuser
// account. Superusers hold no extra power on the API surface itself; the
// flags exist for administrative tooling.
func (s *BootstrapService) CreateSuperuser(ctx context.Context, token, email, password, name string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if !s.Enabled() {
		return domain.User{}, ErrBootstrapDisabled
	}
	if token != s.Token {
		l.Warn("unauthorized superuser creation attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	email = domain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fieldError("email", "A user with this email already exists.")
		}
		return domain.User{}, err
	}

	l.Info("superuser created", "user_id", u.ID)
	return u, nil
}
