package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRolesFromArrays(t *testing.T) {
	t.Run("no roles yields nil", func(t *testing.T) {
		roles, err := rolesFromArrays(nil, nil)
		require.NoError(t, err)
		require.Nil(t, roles)
	})

	t.Run("names keep punctuation intact", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		roles, err := rolesFromArrays(
			[]string{first.String(), second.String()},
			[]string{"admin", "auditor, read-only"},
		)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		require.Equal(t, first, roles[0].ID)
		require.Equal(t, "admin", roles[0].Name)
		require.Equal(t, second, roles[1].ID)
		require.Equal(t, "auditor, read-only", roles[1].Name)
	})

	t.Run("mismatched arrays are rejected", func(t *testing.T) {
		_, err := rolesFromArrays([]string{uuid.New().String()}, nil)
		require.Error(t, err)
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		_, err := rolesFromArrays([]string{"not-a-uuid"}, []string{"admin"})
		require.Error(t, err)
	})
}
