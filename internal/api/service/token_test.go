package service_test

import (
	"context"
	"testing"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	tokens := &service.TokenService{Store: st}
	ctx := context.Background()

	u, err := users.Register(ctx, "a@example.com", "pw123456", "")
	require.NoError(t, err)

	tok, err := tokens.IssueToken(ctx, "a@example.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Key)
	require.Equal(t, u.ID, tok.UserID)

	t.Run("issuance is idempotent per user", func(t *testing.T) {
		again, err := tokens.IssueToken(ctx, "a@example.com", "pw123456")
		require.NoError(t, err)
		require.Equal(t, tok.Key, again.Key)
	})

	t.Run("email lookup is domain case-insensitive", func(t *testing.T) {
		again, err := tokens.IssueToken(ctx, "a@EXAMPLE.COM", "pw123456")
		require.NoError(t, err)
		require.Equal(t, tok.Key, again.Key)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := tokens.IssueToken(ctx, "a@example.com", "wrongpass")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("blank password", func(t *testing.T) {
		_, err := tokens.IssueToken(ctx, "a@example.com", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := tokens.IssueToken(ctx, "ghost@example.com", "pw123456")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

// raceStore makes the first in-transaction token lookup miss, recreating the
// window where two first logins interleave and the insert conflicts.
type raceStore struct {
	store.Store
}

func (s *raceStore) WithTx(ctx context.Context, fn func(store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&raceTx{storeTx: tx, tokens: &missOnceTokens{Tokens: tx.Tokens()}})
	})
}

// storeTx aliases store.Tx so it can be embedded in raceTx: embedding
// store.Tx directly would name the field Tx, which collides with the
// interface's Tx method.
type storeTx = store.Tx

type raceTx struct {
	storeTx
	tokens *missOnceTokens
}

func (tx *raceTx) Tokens() store.Tokens { return tx.tokens }

type missOnceTokens struct {
	store.Tokens
	missed bool
}

func (m *missOnceTokens) GetTokenByUserID(ctx context.Context, userID string) (domain.Token, error) {
	if !m.missed {
		m.missed = true
		return domain.Token{}, store.ErrNotFound
	}
	return m.Tokens.GetTokenByUserID(ctx, userID)
}

func TestIssueTokenConcurrentFirstLogin(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	_, err := users.Register(ctx, "race@example.com", "pw123456", "")
	require.NoError(t, err)

	winner := &service.TokenService{Store: st}
	tok, err := winner.IssueToken(ctx, "race@example.com", "pw123456")
	require.NoError(t, err)

	// The loser's read misses, its insert conflicts, and it comes back with
	// the winner's key instead of surfacing the conflict.
	loser := &service.TokenService{Store: &raceStore{Store: st}}
	again, err := loser.IssueToken(ctx, "race@example.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, tok.Key, again.Key)
}

func TestIssueTokenInactiveUser(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	tokens := &service.TokenService{Store: st}
	ctx := context.Background()

	u, err := users.Register(ctx, "gone@example.com", "pw123456", "")
	require.NoError(t, err)
	require.NoError(t, st.Users().SetActive(ctx, u.ID, false))

	_, err = tokens.IssueToken(ctx, "gone@example.com", "pw123456")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	tokens := &service.TokenService{Store: st}
	ctx := context.Background()

	u, err := users.Register(ctx, "b@example.com", "pw123456", "Bee")
	require.NoError(t, err)
	tok, err := tokens.IssueToken(ctx, "b@example.com", "pw123456")
	require.NoError(t, err)

	principal, err := tokens.Authenticate(ctx, tok.Key)
	require.NoError(t, err)
	require.Equal(t, u.ID, principal.UserID)
	require.Equal(t, "b@example.com", principal.Email)
	require.Equal(t, "Bee", principal.Name)

	t.Run("unknown key", func(t *testing.T) {
		_, err := tokens.Authenticate(ctx, "no-such-key")
		require.ErrorIs(t, err, httpx.ErrInvalidToken)
	})

	t.Run("deactivated user's token is dead", func(t *testing.T) {
		require.NoError(t, st.Users().SetActive(ctx, u.ID, false))
		_, err := tokens.Authenticate(ctx, tok.Key)
		require.ErrorIs(t, err, httpx.ErrInvalidToken)
	})
}
