package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

func TestSubmitDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending transaction", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Anna Jensen", "anna@example.com")

		transaction, err := env.ledger.SubmitDeposit(ctx, player.ID, "  MP-7001  ", 100)
		require.NoError(t, err)

		assert.Equal(t, player.ID, transaction.PlayerID)
		assert.Equal(t, "MP-7001", transaction.ExternalReference)
		assert.Equal(t, 100, transaction.Amount)
		assert.Equal(t, domain.TransactionPending, transaction.Status)
		assert.Nil(t, transaction.ApprovedAt)

		// Pending money is not spendable.
		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, balance)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Bo Larsen", "bo@example.com")

		_, err := env.ledger.SubmitDeposit(ctx, player.ID, "MP-7002", 0)
		require.ErrorIs(t, err, ErrInvalidAmount)

		_, err = env.ledger.SubmitDeposit(ctx, player.ID, "MP-7003", -50)
		require.ErrorIs(t, err, ErrInvalidAmount)

		_, err = env.ledger.SubmitDeposit(ctx, player.ID, "   ", 100)
		require.ErrorIs(t, err, ErrEmptyReference)

		_, err = env.ledger.SubmitDeposit(ctx, 9999, "MP-7004", 100)
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("duplicate reference is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Carla Holm", "carla@example.com")

		_, err := env.ledger.SubmitDeposit(ctx, player.ID, "MP-7005", 100)
		require.NoError(t, err)

		_, err = env.ledger.SubmitDeposit(ctx, player.ID, "MP-7005", 100)
		require.ErrorIs(t, err, ErrDuplicateReference)
	})

	t.Run("schema enforces reference uniqueness", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Finn Berg", "finn@example.com")

		first := dao.Transaction{PlayerID: player.ID, ExternalReference: "MP-7006", Amount: 10, Status: "Pending"}
		require.NoError(t, env.db.Create(&first).Error)

		// Raw inserts racing past the duplicate count still hit the index.
		err := env.db.Create(&dao.Transaction{PlayerID: player.ID, ExternalReference: "MP-7006", Amount: 10, Status: "Pending"}).Error
		require.Error(t, err)

		// A soft-deleted transaction frees its reference for reuse.
		require.NoError(t, env.db.Delete(&first).Error)
		err = env.db.Create(&dao.Transaction{PlayerID: player.ID, ExternalReference: "MP-7006", Amount: 10, Status: "Pending"}).Error
		require.NoError(t, err)
	})
}

func TestSettleTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("approve credits the balance once", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Dan Friis", "dan@example.com")

		pending, err := env.ledger.SubmitDeposit(ctx, player.ID, "MP-8001", 100)
		require.NoError(t, err)

		approved, err := env.ledger.Approve(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionApproved, approved.Status)
		require.NotNil(t, approved.ApprovedAt)
		assert.True(t, approved.ApprovedAt.Equal(env.clk.Now()))

		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, balance)

		// Settled is settled; no second transition in either direction.
		_, err = env.ledger.Approve(ctx, pending.ID)
		require.ErrorIs(t, err, ErrTransactionNotPending)
		_, err = env.ledger.Reject(ctx, pending.ID, "changed my mind")
		require.ErrorIs(t, err, ErrTransactionNotPending)
	})

	t.Run("reject records the reason and credits nothing", func(t *testing.T) {
		env := newTestEnv(t)
		player := env.createPlayer(t, "Else Dahl", "else@example.com")

		pending, err := env.ledger.SubmitDeposit(ctx, player.ID, "MP-8002", 250)
		require.NoError(t, err)

		rejected, err := env.ledger.Reject(ctx, pending.ID, "no matching bank transfer")
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionRejected, rejected.Status)
		assert.Equal(t, "no matching bank transfer", rejected.RejectionReason)
		assert.Nil(t, rejected.ApprovedAt)

		balance, err := env.ledger.GetBalance(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, balance)

		_, err = env.ledger.Approve(ctx, pending.ID)
		require.ErrorIs(t, err, ErrTransactionNotPending)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.ledger.Approve(ctx, 9999)
		require.ErrorIs(t, err, ErrTransactionNotFound)
		_, err = env.ledger.Reject(ctx, 9999, "whatever")
		require.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	anna := env.createPlayer(t, "Anna Jensen", "anna@example.com")
	bo := env.createPlayer(t, "Bo Larsen", "bo@example.com")

	first, err := env.ledger.SubmitDeposit(ctx, anna.ID, "MP-9001", 100)
	require.NoError(t, err)
	second, err := env.ledger.SubmitDeposit(ctx, anna.ID, "MP-9002", 50)
	require.NoError(t, err)
	third, err := env.ledger.SubmitDeposit(ctx, bo.ID, "MP-9003", 75)
	require.NoError(t, err)

	_, err = env.ledger.Approve(ctx, first.ID)
	require.NoError(t, err)
	_, err = env.ledger.Reject(ctx, third.ID, "unreadable reference")
	require.NoError(t, err)

	t.Run("pending queue", func(t *testing.T) {
		pending, err := env.ledger.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, second.ID, pending[0].ID)
	})

	t.Run("history excludes pending by default", func(t *testing.T) {
		history, err := env.ledger.ListHistory(ctx, nil, nil)
		require.NoError(t, err)
		require.Len(t, history, 2)
		// Newest first.
		assert.Equal(t, third.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("history filtered by player", func(t *testing.T) {
		history, err := env.ledger.ListHistory(ctx, &anna.ID, nil)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, first.ID, history[0].ID)
	})

	t.Run("explicit status filter includes pending", func(t *testing.T) {
		status := domain.TransactionPending
		history, err := env.ledger.ListHistory(ctx, &anna.ID, &status)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, second.ID, history[0].ID)
	})
}
