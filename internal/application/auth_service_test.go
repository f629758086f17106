package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/infrastructure/memory"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewAuthService(store.Users())

	u := &entity.User{Name: "N", Login: "gatekeeper", Email: "g@x.io", Password: "open-sesame"}
	require.NoError(t, store.Users().Save(ctx, u))

	t.Run("accepts matching credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "gatekeeper", "open-sesame")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "gatekeeper", "guess")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown login", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "stranger", "open-sesame")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
