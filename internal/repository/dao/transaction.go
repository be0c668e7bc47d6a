package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

// Create inserts a pending deposit. The external reference must be unique
// among non-deleted transactions; the in-transaction count gives the friendly
// error, the partial unique index closes the remaining race window.
func (d *TransactionDAO) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Transaction{}).
			Where("external_reference = ?", transaction.ExternalReference).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("tx.Count -> %w", err)
		}
		if count > 0 {
			return ErrDuplicateReference
		}

		if err := tx.Create(&transaction).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				(errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation) {
				return ErrDuplicateReference
			}

			return fmt.Errorf("tx.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

func (d *TransactionDAO) GetByID(ctx context.Context, id uint) (Transaction, error) {
	var transaction Transaction
	err := d.db.WithContext(ctx).First(&transaction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transaction{}, ErrTransactionNotFound
		}

		return Transaction{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return transaction, nil
}

// Approve moves a pending transaction to Approved. The guarded UPDATE makes
// the Pending check and the status write one atomic step.
func (d *TransactionDAO) Approve(ctx context.Context, id uint, now time.Time) (Transaction, error) {
	return d.settle(ctx, id, map[string]interface{}{
		"status":      "Approved",
		"approved_at": now,
	})
}

// Reject moves a pending transaction to Rejected, keeping approved_at null.
func (d *TransactionDAO) Reject(ctx context.Context, id uint, reason string) (Transaction, error) {
	return d.settle(ctx, id, map[string]interface{}{
		"status":           "Rejected",
		"rejection_reason": reason,
	})
}

func (d *TransactionDAO) settle(ctx context.Context, id uint, updates map[string]interface{}) (Transaction, error) {
	var transaction Transaction

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&transaction, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}

			return fmt.Errorf("tx.First -> %w", err)
		}

		update := tx.Model(&Transaction{}).
			Where("id = ? AND status = ?", id, "Pending").
			Updates(updates)
		if update.Error != nil {
			return fmt.Errorf("tx.Updates -> %w", update.Error)
		}
		if update.RowsAffected != 1 {
			return ErrTransactionNotPending
		}

		if err := tx.First(&transaction, id).Error; err != nil {
			return fmt.Errorf("tx.First after update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

func (d *TransactionDAO) ListPending(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	err := d.db.WithContext(ctx).
		Where("status = ?", "Pending").
		Order("created_at DESC, id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return transactions, nil
}

// ListHistory returns transactions newest-first. Without a status filter,
// pending ones are excluded.
func (d *TransactionDAO) ListHistory(ctx context.Context, playerID *uint, status *string) ([]Transaction, error) {
	query := d.db.WithContext(ctx).Model(&Transaction{})

	if playerID != nil {
		query = query.Where("player_id = ?", *playerID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	} else {
		query = query.Where("status <> ?", "Pending")
	}

	var transactions []Transaction
	if err := query.Order("created_at DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("query.Find -> %w", err)
	}

	return transactions, nil
}

// SumApprovedByPlayer backs the derived balance formula.
func (d *TransactionDAO) SumApprovedByPlayer(ctx context.Context, playerID uint) (int, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Transaction{}).
		Where("player_id = ? AND status = ?", playerID, "Approved").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("d.db.Scan -> %w", err)
	}

	return int(total), nil
}

// SumBoardSpendByPlayer sums non-deleted board prices for the player.
func (d *TransactionDAO) SumBoardSpendByPlayer(ctx context.Context, playerID uint) (int, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Board{}).
		Where("player_id = ?", playerID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("d.db.Scan -> %w", err)
	}

	return int(total), nil
}
