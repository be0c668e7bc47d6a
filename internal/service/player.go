package service

import (
	"context"
	"fmt"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
)

var (
	ErrPlayerNotFound = repository.ErrPlayerNotFound
	ErrPlayerExists   = repository.ErrPlayerExists
)

type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	GetByID(ctx context.Context, id uint) (domain.Player, error)
	FindByEmail(ctx context.Context, email string) (domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	Activate(ctx context.Context, id uint, now time.Time) (domain.Player, error)
	Deactivate(ctx context.Context, id uint) (domain.Player, error)
}

type PlayerService struct {
	repo PlayerRepository
	clk  clock.Clock
}

func NewPlayerService(repo PlayerRepository, clk clock.Clock) *PlayerService {
	return &PlayerService{
		repo: repo,
		clk:  clk,
	}
}

// ResolveByEmail is the seam between the auth layer and the lottery: it maps
// an authenticated principal's email to the club's player record.
func (s *PlayerService) ResolveByEmail(ctx context.Context, email string) (domain.Player, error) {
	player, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (domain.Player, error) {
	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return players, nil
}

// CreatePlayer registers a club member. New players start active.
func (s *PlayerService) CreatePlayer(ctx context.Context, fullName, email, phone string) (domain.Player, error) {
	now := s.clk.Now()
	player, err := s.repo.Create(ctx, domain.Player{
		FullName:    fullName,
		Email:       email,
		Phone:       phone,
		IsActive:    true,
		ActivatedAt: &now,
	})
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

func (s *PlayerService) ActivatePlayer(ctx context.Context, id uint) (domain.Player, error) {
	player, err := s.repo.Activate(ctx, id, s.clk.Now())
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

func (s *PlayerService) DeactivatePlayer(ctx context.Context, id uint) (domain.Player, error) {
	player, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}
