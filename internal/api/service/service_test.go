package service_test

import (
	"path/filepath"
	"testing"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/internal/api/store/drivers/sqlite"
	"github.com/ovenbird/recipebox/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, field)
}

func ptr[T any](v T) *T { return &v }
