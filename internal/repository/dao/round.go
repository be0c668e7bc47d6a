package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RoundDAO struct {
	db *gorm.DB
}

func NewRoundDAO(db *gorm.DB) *RoundDAO {
	return &RoundDAO{
		db: db,
	}
}

// ClosureResult carries everything the closure transaction decided,
// so callers can build a summary without re-querying.
type ClosureResult struct {
	Round          Round
	TotalBoards    int
	WinningBoards  int
	DigitalRevenue int
	NextRoundID    uint
	RolloverBoards int
}

// SeedResult reports what a seeding run did.
type SeedResult struct {
	Created   int
	Existing  int
	Activated bool
}

func (d *RoundDAO) GetActive(ctx context.Context) (Round, error) {
	var round Round
	err := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Round{}, ErrNoActiveRound
		}

		return Round{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return round, nil
}

func (d *RoundDAO) GetByID(ctx context.Context, id uint) (Round, error) {
	var round Round
	err := d.db.WithContext(ctx).First(&round, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Round{}, ErrRoundNotFound
		}

		return Round{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return round, nil
}

func (d *RoundDAO) ListAll(ctx context.Context) ([]Round, error) {
	var rounds []Round
	err := d.db.WithContext(ctx).
		Order("year DESC, week_number DESC").
		Find(&rounds).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return rounds, nil
}

// CloseRound performs the whole closing transition as one transaction:
// stamp winning numbers, deactivate, score the round's boards, activate the
// next round and spawn rollover boards on it. The precondition (active,
// numbers unset) is re-checked via the guarded UPDATE inside the same
// transaction, so a concurrent closure loses cleanly.
func (d *RoundDAO) CloseRound(ctx context.Context, roundID uint, winning []int, now time.Time) (ClosureResult, error) {
	var result ClosureResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round Round
		if err := tx.First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}

			return fmt.Errorf("tx.First -> %w", err)
		}

		if !round.IsActive {
			return ErrRoundNotActive
		}
		if len(DecodeNumbers(round.WinningNumbers)) > 0 {
			return ErrRoundClosed
		}

		update := tx.Model(&Round{}).
			Where("id = ? AND is_active = ? AND winning_numbers IS NULL", roundID, true).
			Updates(map[string]interface{}{
				"winning_numbers": EncodeNumbers(winning),
				"is_active":       false,
				"closed_at":       now,
			})
		if update.Error != nil {
			return fmt.Errorf("tx.Updates -> %w", update.Error)
		}
		if update.RowsAffected != 1 {
			return ErrRoundNotActive
		}

		round.WinningNumbers = EncodeNumbers(winning)
		round.IsActive = false
		round.ClosedAt = &now

		var boards []Board
		if err := tx.Where("round_id = ?", roundID).Find(&boards).Error; err != nil {
			return fmt.Errorf("tx.Find boards -> %w", err)
		}

		var winningIDs []uint
		for _, board := range boards {
			result.DigitalRevenue += board.Price
			if containsAll(DecodeNumbers(board.Numbers), winning) {
				winningIDs = append(winningIDs, board.ID)
			}
		}
		result.TotalBoards = len(boards)
		result.WinningBoards = len(winningIDs)

		if len(winningIDs) > 0 {
			err := tx.Model(&Board{}).
				Where("id IN ?", winningIDs).
				Update("is_winning", true).Error
			if err != nil {
				return fmt.Errorf("tx.Update is_winning -> %w", err)
			}
		}

		var next Round
		err := tx.Where("is_active = ?", false).
			Where("year > ? OR (year = ? AND week_number > ?)", round.Year, round.Year, round.WeekNumber).
			Order("year ASC, week_number ASC").
			First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Seed horizon exhausted; nothing to activate or roll into.
				result.Round = round
				return nil
			}

			return fmt.Errorf("tx.First next -> %w", err)
		}

		if err := tx.Model(&next).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("tx.Update is_active -> %w", err)
		}
		result.NextRoundID = next.ID

		for _, board := range boards {
			if !board.RepeatActive || board.RepeatWeeksRemaining <= 0 {
				continue
			}

			remaining := board.RepeatWeeksRemaining - 1
			rollover := Board{
				PlayerID:             board.PlayerID,
				RoundID:              next.ID,
				Numbers:              board.Numbers,
				Price:                0,
				RepeatWeeksRemaining: remaining,
				RepeatActive:         remaining > 0,
			}
			if err := tx.Create(&rollover).Error; err != nil {
				return fmt.Errorf("tx.Create rollover -> %w", err)
			}
			result.RolloverBoards++
		}

		result.Round = round

		return nil
	})
	if err != nil {
		return ClosureResult{}, err
	}

	return result, nil
}

// SeedRounds idempotently creates any missing (year, week) rows and, when no
// round is active at all, activates the first round at or after the current
// week. Runs at serializable isolation so two seeding instances racing at
// first boot cannot both activate a round.
func (d *RoundDAO) SeedRounds(ctx context.Context, rounds []Round, currentYear, currentWeek int) (SeedResult, error) {
	var result SeedResult

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []Round
		if err := tx.Select("year", "week_number").Find(&existing).Error; err != nil {
			return fmt.Errorf("tx.Find existing -> %w", err)
		}

		seen := make(map[[2]int]bool, len(existing))
		for _, r := range existing {
			seen[[2]int{r.Year, r.WeekNumber}] = true
		}

		var missing []Round
		for _, r := range rounds {
			if seen[[2]int{r.Year, r.WeekNumber}] {
				result.Existing++
				continue
			}
			missing = append(missing, r)
		}

		if len(missing) > 0 {
			if err := tx.CreateInBatches(missing, 100).Error; err != nil {
				return fmt.Errorf("tx.CreateInBatches -> %w", err)
			}
			result.Created = len(missing)
		}

		var activeCount int64
		if err := tx.Model(&Round{}).Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
			return fmt.Errorf("tx.Count active -> %w", err)
		}
		if activeCount > 0 {
			return nil
		}

		var current Round
		err := tx.Where("year > ? OR (year = ? AND week_number >= ?)", currentYear, currentYear, currentWeek).
			Order("year ASC, week_number ASC").
			First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}

			return fmt.Errorf("tx.First current -> %w", err)
		}

		if err := tx.Model(&current).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("tx.Update is_active -> %w", err)
		}
		result.Activated = true

		return nil
	}, opts)
	if err != nil {
		return SeedResult{}, err
	}

	return result, nil
}

func containsAll(numbers, winning []int) bool {
	for _, w := range winning {
		found := false
		for _, n := range numbers {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
