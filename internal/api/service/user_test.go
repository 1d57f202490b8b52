package service_test

import (
	"context"
	"testing"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/stretchr/testify/require"
)

func TestRegisterNormalizesEmailDomain(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	cases := []struct {
		in   string
		want string
	}{
		{"test1@EXAMPLE.COM", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"Test3@example.COM", "Test3@example.com"},
	}

	for _, tc := range cases {
		u, err := users.Register(ctx, tc.in, "password123", "")
		require.NoError(t, err)
		require.Equal(t, tc.want, u.Email)
	}
}

func TestRegisterPasswordLength(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	_, err := users.Register(ctx, "short@example.com", "pw12345", "")
	requireFieldError(t, err, "password")

	// Exactly at the boundary succeeds.
	u, err := users.Register(ctx, "short@example.com", "pw123456", "")
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.False(t, u.IsStaff)
	require.False(t, u.IsSuperuser)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	_, err := users.Register(ctx, "dup@example.com", "password123", "First")
	require.NoError(t, err)

	// Same address with different domain case still collides.
	_, err = users.Register(ctx, "dup@EXAMPLE.com", "password123", "Second")
	requireFieldError(t, err, "email")
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	for _, email := range []string{"", "no-at-sign", "@nodomain", "nolocal@"} {
		_, err := users.Register(ctx, email, "password123", "")
		requireFieldError(t, err, "email")
	}
}

func TestUpdateProfile(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	tokens := &service.TokenService{Store: st}
	ctx := context.Background()

	u, err := users.Register(ctx, "me@example.com", "password123", "Old Name")
	require.NoError(t, err)

	t.Run("name only", func(t *testing.T) {
		got, err := users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{Name: ptr("New Name")})
		require.NoError(t, err)
		require.Equal(t, "New Name", got.Name)
		require.Equal(t, "me@example.com", got.Email)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{Password: ptr("short")})
		requireFieldError(t, err, "password")
	})

	t.Run("password change re-hashes", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{Password: ptr("newpassword456")})
		require.NoError(t, err)

		_, err = tokens.IssueToken(ctx, "me@example.com", "password123")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = tokens.IssueToken(ctx, "me@example.com", "newpassword456")
		require.NoError(t, err)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		got, err := users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{})
		require.NoError(t, err)
		require.Equal(t, "New Name", got.Name)
	})
}
