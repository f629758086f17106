package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/infrastructure/memory"
)

func TestRoleService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	admin := entity.Role{ID: uuid.New(), Name: "admin"}
	store.SeedRole(admin)

	svc := NewRoleService(store.Roles())

	t.Run("finds by name", func(t *testing.T) {
		got, err := svc.GetByName(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)
	})

	t.Run("finds by id", func(t *testing.T) {
		got, err := svc.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, "admin", got.Name)
	})

	t.Run("unknown role reports ErrRoleNotFound", func(t *testing.T) {
		_, err := svc.GetByName(ctx, "overlord")
		require.ErrorIs(t, err, ErrRoleNotFound)

		_, err = svc.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("lists the catalog", func(t *testing.T) {
		all, err := svc.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}
