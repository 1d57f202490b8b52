package service

import (
	"context"
	"errors"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/cryptox"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

// TokenService issues and resolves the persistent opaque bearer tokens. It
// doubles as the access gateway's httpx.Authenticator.
type TokenService struct {
	Store store.Store
}

var _ httpx.Authenticator = (*TokenService)(nil)

// IssueToken checks the credentials and returns the caller's token. A user
// has at most one token; issuing again returns the identical key until the
// token is invalidated.
func (s *TokenService) IssueToken(ctx context.Context, email, password string) (domain.Token, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, err
	}
	if !u.IsActive {
		return domain.Token{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("credential check failed", "user_id", u.ID)
			return domain.Token{}, ErrInvalidCredentials
		}
		return domain.Token{}, err
	}

	var token domain.Token
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Tokens().GetTokenByUserID(ctx, u.ID)
		if err == nil {
			token = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		key, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		token = domain.Token{Key: key, UserID: u.ID}
		if err := tx.Tokens().CreateToken(ctx, token); err != nil {
			// A concurrent first login can win the insert between our
			// read and write; theirs is the token from now on.
			if errors.Is(err, store.ErrAlreadyExists) {
				token, err = tx.Tokens().GetTokenByUserID(ctx, u.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Token{}, err
	}

	return token, nil
}

// Authenticate resolves an opaque bearer key to a principal for the request
// pipeline. Unknown keys and keys held by deactivated accounts both fail
// with httpx.ErrInvalidToken.
func (s *TokenService) Authenticate(ctx context.Context, key string) (httpx.Principal, error) {
	token, err := s.Store.Tokens().GetTokenByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, httpx.ErrInvalidToken
		}
		return httpx.Principal{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, httpx.ErrInvalidToken
		}
		return httpx.Principal{}, err
	}
	if !u.IsActive {
		return httpx.Principal{}, httpx.ErrInvalidToken
	}

	return httpx.Principal{UserID: u.ID, Email: u.Email, Name: u.Name}, nil
}
