package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
)

var (
	ErrRoundNotFound     = repository.ErrRoundNotFound
	ErrNoActiveRound     = repository.ErrNoActiveRound
	ErrRoundNotActive    = repository.ErrRoundNotActive
	ErrRoundClosed       = repository.ErrRoundClosed
	ErrInvalidWinningSet = domain.ErrInvalidWinningSet
)

type RoundRepository interface {
	GetActive(ctx context.Context) (domain.Round, error)
	GetByID(ctx context.Context, id uint) (domain.Round, error)
	ListAll(ctx context.Context) ([]domain.Round, error)
	CloseRound(ctx context.Context, roundID uint, winning []int, now time.Time) (repository.ClosureOutcome, error)
	SeedRounds(ctx context.Context, weeks []domain.Round, currentYear, currentWeek int) (repository.SeedOutcome, error)
}

// RoundService owns the round lifecycle: the single active round, its
// closing transition and the activation of its successor.
type RoundService struct {
	repo RoundRepository
	clk  clock.Clock
}

func NewRoundService(repo RoundRepository, clk clock.Clock) *RoundService {
	return &RoundService{
		repo: repo,
		clk:  clk,
	}
}

// GetActiveRound returns the one active round. A missing active round means
// seeding never ran or data was tampered with; it is surfaced, not repaired.
func (s *RoundService) GetActiveRound(ctx context.Context) (domain.Round, error) {
	round, err := s.repo.GetActive(ctx)
	if err != nil {
		return domain.Round{}, err
	}

	return round, nil
}

func (s *RoundService) GetRoundHistory(ctx context.Context) ([]domain.Round, error) {
	rounds, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return rounds, nil
}

// CloseRound enters the week's three winning numbers, which ends the round:
// every board is scored by the contains-all-three rule, repeat boards roll
// into the next round and the next round becomes active, all in one database
// transaction. Closing an already-closed round fails; it never re-scores.
func (s *RoundService) CloseRound(ctx context.Context, roundID uint, numbers []int) (domain.ClosureSummary, error) {
	winning, err := domain.ValidateWinningNumbers(numbers)
	if err != nil {
		return domain.ClosureSummary{}, err
	}

	outcome, err := s.repo.CloseRound(ctx, roundID, winning, s.clk.Now())
	if err != nil {
		return domain.ClosureSummary{}, err
	}

	if outcome.NextRoundID == 0 {
		zap.L().Warn("no next round found to activate; seed horizon exhausted",
			zap.Uint("closed_round_id", roundID),
		)
	}

	prizePool := outcome.DigitalRevenue * domain.PrizePoolPercent / 100

	return domain.ClosureSummary{
		RoundID:        outcome.Round.ID,
		Year:           outcome.Round.Year,
		WeekNumber:     outcome.Round.WeekNumber,
		WinningNumbers: outcome.Round.WinningNumbers,
		TotalBoards:    outcome.TotalBoards,
		WinningBoards:  outcome.WinningBoards,
		DigitalRevenue: outcome.DigitalRevenue,
		PrizePool:      prizePool,
		ClubSupport:    outcome.DigitalRevenue - prizePool,
	}, nil
}
