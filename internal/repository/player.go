package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

var (
	ErrPlayerNotFound = dao.ErrPlayerNotFound
	ErrPlayerExists   = dao.ErrPlayerExists
)

type PlayerDAO interface {
	Create(ctx context.Context, player dao.Player) (dao.Player, error)
	GetByID(ctx context.Context, id uint) (dao.Player, error)
	FindByEmail(ctx context.Context, email string) (dao.Player, error)
	List(ctx context.Context) ([]dao.Player, error)
	Activate(ctx context.Context, id uint, now time.Time) (dao.Player, error)
	Deactivate(ctx context.Context, id uint) (dao.Player, error)
}

type PlayerRepository struct {
	dao PlayerDAO
}

func NewPlayerRepository(dao PlayerDAO) *PlayerRepository {
	return &PlayerRepository{
		dao: dao,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := r.dao.Create(ctx, dao.Player{
		FullName:    player.FullName,
		Email:       player.Email,
		Phone:       player.Phone,
		IsActive:    player.IsActive,
		ActivatedAt: player.ActivatedAt,
	})
	if err != nil {
		return domain.Player{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id uint) (domain.Player, error) {
	player, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}

	return r.daoToDomain(player), nil
}

func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (domain.Player, error) {
	player, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Player{}, err
	}

	return r.daoToDomain(player), nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Player, len(players))
	for i, player := range players {
		result[i] = r.daoToDomain(player)
	}

	return result, nil
}

func (r *PlayerRepository) Activate(ctx context.Context, id uint, now time.Time) (domain.Player, error) {
	player, err := r.dao.Activate(ctx, id, now)
	if err != nil {
		return domain.Player{}, err
	}

	return r.daoToDomain(player), nil
}

func (r *PlayerRepository) Deactivate(ctx context.Context, id uint) (domain.Player, error) {
	player, err := r.dao.Deactivate(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}

	return r.daoToDomain(player), nil
}

func (r *PlayerRepository) daoToDomain(player dao.Player) domain.Player {
	return domain.Player{
		ID:          player.ID,
		FullName:    player.FullName,
		Email:       player.Email,
		Phone:       player.Phone,
		IsActive:    player.IsActive,
		ActivatedAt: player.ActivatedAt,
		CreatedAt:   player.CreatedAt,
	}
}
