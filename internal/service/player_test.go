package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("new players start active", func(t *testing.T) {
		env := newTestEnv(t)

		player, err := env.players.CreatePlayer(ctx, "Anna Jensen", "anna@example.com", "20304050")
		require.NoError(t, err)

		assert.True(t, player.IsActive)
		require.NotNil(t, player.ActivatedAt)
		assert.True(t, player.ActivatedAt.Equal(env.clk.Now()))
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Bo Larsen", "bo@example.com")

		_, err := env.players.CreatePlayer(ctx, "Bo Again", "bo@example.com", "")
		require.ErrorIs(t, err, ErrPlayerExists)
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Carla Holm", "carla@example.com")

		deactivated, err := env.players.DeactivatePlayer(ctx, player.ID)
		require.NoError(t, err)
		assert.False(t, deactivated.IsActive)

		env.clk.Advance(48 * time.Hour)
		reactivated, err := env.players.ActivatePlayer(ctx, player.ID)
		require.NoError(t, err)
		assert.True(t, reactivated.IsActive)
		require.NotNil(t, reactivated.ActivatedAt)
		assert.True(t, reactivated.ActivatedAt.Equal(env.clk.Now()))
	})

	t.Run("resolve by email ignores case", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Dan Friis", "dan@example.com")

		resolved, err := env.players.ResolveByEmail(ctx, "DAN@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, player.ID, resolved.ID)

		_, err = env.players.ResolveByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("unknown player", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.players.GetPlayer(ctx, 9999)
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})
}
