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

type PlayerDAO struct {
	db *gorm.DB
}

func NewPlayerDAO(db *gorm.DB) *PlayerDAO {
	return &PlayerDAO{
		db: db,
	}
}

func (d *PlayerDAO) Create(ctx context.Context, player Player) (Player, error) {
	err := d.db.WithContext(ctx).Create(&player).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			(errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation) {
			return Player{}, ErrPlayerExists
		}

		return Player{}, fmt.Errorf("d.db.Create -> %w", err)
	}

	return player, nil
}

func (d *PlayerDAO) GetByID(ctx context.Context, id uint) (Player, error) {
	var player Player
	err := d.db.WithContext(ctx).First(&player, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return player, nil
}

// FindByEmail resolves the auth identity's email to a player row.
// The match is case-insensitive.
func (d *PlayerDAO) FindByEmail(ctx context.Context, email string) (Player, error) {
	var player Player
	err := d.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return player, nil
}

func (d *PlayerDAO) List(ctx context.Context) ([]Player, error) {
	var players []Player
	err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return players, nil
}

func (d *PlayerDAO) Activate(ctx context.Context, id uint, now time.Time) (Player, error) {
	return d.setActive(ctx, id, true, &now)
}

func (d *PlayerDAO) Deactivate(ctx context.Context, id uint) (Player, error) {
	return d.setActive(ctx, id, false, nil)
}

func (d *PlayerDAO) setActive(ctx context.Context, id uint, active bool, activatedAt *time.Time) (Player, error) {
	player, err := d.GetByID(ctx, id)
	if err != nil {
		return Player{}, err
	}

	updates := map[string]interface{}{"is_active": active}
	if activatedAt != nil {
		updates["activated_at"] = *activatedAt
	}

	if err := d.db.WithContext(ctx).Model(&player).Updates(updates).Error; err != nil {
		return Player{}, fmt.Errorf("d.db.Updates -> %w", err)
	}

	player.IsActive = active
	if activatedAt != nil {
		player.ActivatedAt = activatedAt
	}

	return player, nil
}
