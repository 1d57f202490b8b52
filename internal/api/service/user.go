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

// MinPasswordLength is the minimum accepted password length, counted in
// bytes of the raw input.
const MinPasswordLength = 8

type UserService struct {
	Store store.Store
}

// ProfileUpdate carries a partial self-service profile change. Nil fields are
// left untouched; unrecognized request fields never reach this struct.
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// Register creates a new active account. The email's domain portion is
// lower-cased before persistence, so two registrations differing only in
// domain case collide.
func (s *UserService) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	l := slogx.FromContext(ctx)

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
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fieldError("email", "A user with this email already exists.")
		}
		return domain.User{}, err
	}

	l.Info("user registered", "user_id", u.ID)
	return u, nil
}

// GetProfile returns the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile applies a partial update to name and/or password. A supplied
// password is length-checked and re-hashed. The whole change is applied in
// one transaction or not at all.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error) {
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return domain.User{}, err
		}
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if upd.Name != nil {
			if err := tx.Users().UpdateName(ctx, userID, strings.TrimSpace(*upd.Name)); err != nil {
				return err
			}
		}
		if upd.Password != nil {
			hash, err := cryptox.HashPassword(*upd.Password)
			if err != nil {
				return err
			}
			if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
				return err
			}
		}

		var err error
		updated, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fieldError("email", "This field is required.")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fieldError("email", "Enter a valid email address.")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fieldError("password", "Password must be at least 8 characters long.")
	}
	return nil
}
