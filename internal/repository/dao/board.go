package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type BoardDAO struct {
	db *gorm.DB
}

func NewBoardDAO(db *gorm.DB) *BoardDAO {
	return &BoardDAO{
		db: db,
	}
}

// CreateWithBalanceCheck inserts the board only if the player's derived
// balance covers the charged amount, inside one transaction. The balance is
// never stored; it is recomputed under the player's row lock so that
// concurrent purchases for the same player serialize on the balance read.
func (d *BoardDAO) CreateWithBalanceCheck(ctx context.Context, board Board) (Board, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A no-op write takes the row lock on every dialect; a later
		// purchase in flight waits here and sees this board's spend.
		lock := tx.Model(&Player{}).
			Where("id = ?", board.PlayerID).
			UpdateColumn("updated_at", gorm.Expr("updated_at"))
		if lock.Error != nil {
			return fmt.Errorf("tx.UpdateColumn -> %w", lock.Error)
		}
		if lock.RowsAffected != 1 {
			return ErrPlayerNotFound
		}

		balance, err := playerBalance(tx, board.PlayerID)
		if err != nil {
			return err
		}

		if balance < board.Price {
			return ErrInsufficientFunds
		}

		if err := tx.Create(&board).Error; err != nil {
			return fmt.Errorf("tx.Create -> %w", err)
		}

		return nil
	})
	if err != nil {
		return Board{}, err
	}

	return board, nil
}

func (d *BoardDAO) GetByID(ctx context.Context, id uint) (Board, error) {
	var board Board
	err := d.db.WithContext(ctx).First(&board, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Board{}, ErrBoardNotFound
		}

		return Board{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return board, nil
}

func (d *BoardDAO) ListByRound(ctx context.Context, roundID uint) ([]Board, error) {
	var boards []Board
	err := d.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("created_at ASC, id ASC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return boards, nil
}

func (d *BoardDAO) ListByPlayer(ctx context.Context, playerID uint) ([]Board, error) {
	var boards []Board
	err := d.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC, id DESC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return boards, nil
}

// StopRepeating turns off future rollovers for the board. Already-prepaid
// weeks are not refunded.
func (d *BoardDAO) StopRepeating(ctx context.Context, id uint) (Board, error) {
	var board Board

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&board, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}

			return fmt.Errorf("tx.First -> %w", err)
		}

		err := tx.Model(&board).Updates(map[string]interface{}{
			"repeat_weeks_remaining": 0,
			"repeat_active":          false,
		}).Error
		if err != nil {
			return fmt.Errorf("tx.Updates -> %w", err)
		}

		board.RepeatWeeksRemaining = 0
		board.RepeatActive = false

		return nil
	})
	if err != nil {
		return Board{}, err
	}

	return board, nil
}

// playerBalance computes approved deposits minus non-deleted board spend.
func playerBalance(tx *gorm.DB, playerID uint) (int, error) {
	var approved int64
	err := tx.Model(&Transaction{}).
		Where("player_id = ? AND status = ?", playerID, "Approved").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&approved).Error
	if err != nil {
		return 0, fmt.Errorf("sum approved -> %w", err)
	}

	var spent int64
	err = tx.Model(&Board{}).
		Where("player_id = ?", playerID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&spent).Error
	if err != nil {
		return 0, fmt.Errorf("sum spent -> %w", err)
	}

	return int(approved - spent), nil
}
