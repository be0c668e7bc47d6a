package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

var (
	ErrRoundNotFound  = dao.ErrRoundNotFound
	ErrNoActiveRound  = dao.ErrNoActiveRound
	ErrRoundNotActive = dao.ErrRoundNotActive
	ErrRoundClosed    = dao.ErrRoundClosed
)

type RoundDAO interface {
	GetActive(ctx context.Context) (dao.Round, error)
	GetByID(ctx context.Context, id uint) (dao.Round, error)
	ListAll(ctx context.Context) ([]dao.Round, error)
	CloseRound(ctx context.Context, roundID uint, winning []int, now time.Time) (dao.ClosureResult, error)
	SeedRounds(ctx context.Context, rounds []dao.Round, currentYear, currentWeek int) (dao.SeedResult, error)
}

type RoundRepository struct {
	dao RoundDAO
}

func NewRoundRepository(dao RoundDAO) *RoundRepository {
	return &RoundRepository{
		dao: dao,
	}
}

// ClosureOutcome is the repository-level view of a completed closure.
type ClosureOutcome struct {
	Round          domain.Round
	TotalBoards    int
	WinningBoards  int
	DigitalRevenue int
	NextRoundID    uint
	RolloverBoards int
}

// SeedOutcome reports a seeding run.
type SeedOutcome struct {
	Created   int
	Existing  int
	Activated bool
}

func (r *RoundRepository) GetActive(ctx context.Context) (domain.Round, error) {
	round, err := r.dao.GetActive(ctx)
	if err != nil {
		return domain.Round{}, err
	}

	return r.daoToDomain(round), nil
}

func (r *RoundRepository) GetByID(ctx context.Context, id uint) (domain.Round, error) {
	round, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Round{}, err
	}

	return r.daoToDomain(round), nil
}

func (r *RoundRepository) ListAll(ctx context.Context) ([]domain.Round, error) {
	rounds, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	result := make([]domain.Round, len(rounds))
	for i, round := range rounds {
		result[i] = r.daoToDomain(round)
	}

	return result, nil
}

func (r *RoundRepository) CloseRound(ctx context.Context, roundID uint, winning []int, now time.Time) (ClosureOutcome, error) {
	result, err := r.dao.CloseRound(ctx, roundID, winning, now)
	if err != nil {
		return ClosureOutcome{}, err
	}

	return ClosureOutcome{
		Round:          r.daoToDomain(result.Round),
		TotalBoards:    result.TotalBoards,
		WinningBoards:  result.WinningBoards,
		DigitalRevenue: result.DigitalRevenue,
		NextRoundID:    result.NextRoundID,
		RolloverBoards: result.RolloverBoards,
	}, nil
}

func (r *RoundRepository) SeedRounds(ctx context.Context, weeks []domain.Round, currentYear, currentWeek int) (SeedOutcome, error) {
	rows := make([]dao.Round, len(weeks))
	for i, week := range weeks {
		rows[i] = dao.Round{
			Year:       week.Year,
			WeekNumber: week.WeekNumber,
		}
	}

	result, err := r.dao.SeedRounds(ctx, rows, currentYear, currentWeek)
	if err != nil {
		return SeedOutcome{}, err
	}

	return SeedOutcome{
		Created:   result.Created,
		Existing:  result.Existing,
		Activated: result.Activated,
	}, nil
}

func (r *RoundRepository) daoToDomain(round dao.Round) domain.Round {
	return domain.Round{
		ID:             round.ID,
		Year:           round.Year,
		WeekNumber:     round.WeekNumber,
		WinningNumbers: dao.DecodeNumbers(round.WinningNumbers),
		IsActive:       round.IsActive,
		CreatedAt:      round.CreatedAt,
		ClosedAt:       round.ClosedAt,
	}
}
