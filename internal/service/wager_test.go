package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

func TestPurchaseBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path stores canonical numbers and fixed price", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Anna Jensen", "anna@example.com")
		env.fund(t, player.ID, "MP-1001", 100)

		board, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{16, 2, 9, 5, 11}, 0)
		require.NoError(t, err)

		assert.Equal(t, player.ID, board.PlayerID)
		assert.Equal(t, round.ID, board.RoundID)
		assert.Equal(t, []int{2, 5, 9, 11, 16}, board.Numbers)
		assert.Equal(t, 20, board.Price)
		assert.False(t, board.RepeatActive)

		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 80, balance)
	})

	t.Run("price doubles per extra number", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Bo Larsen", "bo@example.com")
		env.fund(t, player.ID, "MP-1002", 300)

		six, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5, 6}, 0)
		require.NoError(t, err)
		assert.Equal(t, 40, six.Price)

		eight, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{9, 10, 11, 12, 13, 14, 15, 16}, 0)
		require.NoError(t, err)
		assert.Equal(t, 160, eight.Price)
	})

	t.Run("repeat weeks are prepaid in full", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Carla Holm", "carla@example.com")
		env.fund(t, player.ID, "MP-1003", 60)

		board, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 3)
		require.NoError(t, err)

		assert.Equal(t, 60, board.Price)
		assert.Equal(t, 3, board.RepeatWeeksRemaining)
		assert.True(t, board.RepeatActive)

		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, balance)
	})

	t.Run("insufficient balance rejects atomically", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Dan Friis", "dan@example.com")
		env.fund(t, player.ID, "MP-1004", 40)

		_, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
		require.NoError(t, err)

		// 20 units left cannot pay for a 40 unit board.
		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5, 6}, 0)
		require.ErrorIs(t, err, ErrInsufficientBalance)

		// The exact remainder still goes through.
		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{6, 7, 8, 9, 10}, 0)
		require.NoError(t, err)

		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, balance)
	})

	t.Run("deadline boundary", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Else Dahl", "else@example.com")
		env.fund(t, player.ID, "MP-1005", 100)

		env.clk.Set(time.Date(2026, time.September, 5, 16, 59, 59, 0, env.loc))
		_, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
		require.NoError(t, err)

		env.clk.Set(time.Date(2026, time.September, 5, 17, 0, 0, 0, env.loc))
		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{6, 7, 8, 9, 10}, 0)
		require.ErrorIs(t, err, ErrDeadlinePassed)
	})

	t.Run("inactive round rejected", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 37, false)
		player := env.createPlayer(t, "Finn Berg", "finn@example.com")
		env.fund(t, player.ID, "MP-1006", 100)

		_, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
		require.ErrorIs(t, err, ErrRoundNotActive)
	})

	t.Run("closed round rejected", func(t *testing.T) {
		env := newTestEnv(t)
		closedAt := env.clk.Now()
		round := dao.Round{
			Year:           2026,
			WeekNumber:     35,
			WinningNumbers: dao.EncodeNumbers([]int{3, 7, 12}),
			ClosedAt:       &closedAt,
		}
		require.NoError(t, env.db.Create(&round).Error)

		player := env.createPlayer(t, "Eva Rask", "eva@example.com")
		env.fund(t, player.ID, "MP-1009", 100)

		_, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
		require.ErrorIs(t, err, ErrRoundClosed)
	})

	t.Run("unknown player fails inside the purchase transaction", func(t *testing.T) {
		env := newTestEnv(t)
		env.createRound(t, 2026, 36, true)

		// Straight through the dao, past the service's existence check.
		_, err := dao.NewBoardDAO(env.db).CreateWithBalanceCheck(ctx, dao.Board{
			PlayerID: 9999,
			RoundID:  1,
			Numbers:  dao.EncodeNumbers([]int{1, 2, 3, 4, 5}),
			Price:    20,
		})
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("inactive player rejected", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Gitte Skov", "gitte@example.com")
		env.fund(t, player.ID, "MP-1007", 100)

		_, err := env.players.DeactivatePlayer(ctx, player.ID)
		require.NoError(t, err)

		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
		require.ErrorIs(t, err, ErrPlayerInactive)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Hans Kjær", "hans@example.com")
		env.fund(t, player.ID, "MP-1008", 100)

		_, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4}, 0)
		require.ErrorIs(t, err, ErrInvalidNumberCount)

		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 17}, 0)
		require.ErrorIs(t, err, ErrNumberOutOfRange)

		_, err = env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, -1)
		require.ErrorIs(t, err, ErrInvalidRepeatWeeks)
	})
}

func TestStopRepeating(t *testing.T) {
	ctx := context.Background()

	t.Run("owner stops without refund", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		player := env.createPlayer(t, "Ida Møller", "ida@example.com")
		env.fund(t, player.ID, "MP-2001", 100)

		board, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 4)
		require.NoError(t, err)

		stopped, err := env.wagers.StopRepeating(ctx, player.ID, board.ID)
		require.NoError(t, err)
		assert.False(t, stopped.RepeatActive)
		assert.Equal(t, 0, stopped.RepeatWeeksRemaining)

		// The prepaid charge stays on the ledger.
		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 20, balance)
	})

	t.Run("other players cannot touch the board", func(t *testing.T) {
		env := newTestEnv(t)
		round := env.createRound(t, 2026, 36, true)
		owner := env.createPlayer(t, "Jens Toft", "jens@example.com")
		other := env.createPlayer(t, "Kira Lund", "kira@example.com")
		env.fund(t, owner.ID, "MP-2002", 100)

		board, err := env.wagers.PurchaseBoard(ctx, owner.ID, round.ID, []int{1, 2, 3, 4, 5}, 2)
		require.NoError(t, err)

		_, err = env.wagers.StopRepeating(ctx, other.ID, board.ID)
		require.ErrorIs(t, err, ErrNotBoardOwner)
	})

	t.Run("unknown board", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Lars Bruun", "lars@example.com")

		_, err := env.wagers.StopRepeating(ctx, player.ID, 9999)
		require.ErrorIs(t, err, ErrBoardNotFound)
	})
}

func TestListBoards(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	round := env.createRound(t, 2026, 36, true)
	player := env.createPlayer(t, "Mette Vang", "mette@example.com")
	env.fund(t, player.ID, "MP-3001", 100)

	first, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{1, 2, 3, 4, 5}, 0)
	require.NoError(t, err)
	second, err := env.wagers.PurchaseBoard(ctx, player.ID, round.ID, []int{6, 7, 8, 9, 10}, 0)
	require.NoError(t, err)

	byRound, err := env.wagers.ListBoardsForRound(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, byRound, 2)
	assert.Equal(t, first.ID, byRound[0].ID)

	byPlayer, err := env.wagers.ListBoardsForPlayer(ctx, player.ID)
	require.NoError(t, err)
	require.Len(t, byPlayer, 2)
	assert.Equal(t, second.ID, byPlayer[0].ID)

	_, err = env.wagers.ListBoardsForRound(ctx, 9999)
	require.ErrorIs(t, err, ErrRoundNotFound)

	_, err = env.wagers.ListBoardsForPlayer(ctx, 9999)
	require.ErrorIs(t, err, ErrPlayerNotFound)
}
