package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"test1@EXAMPLE.COM", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"Test4@example.COM", "Test4@example.com"},
		{"  padded@Example.Com  ", "padded@example.com"},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeEmail(tc.in))
		})
	}
}
