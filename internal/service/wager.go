package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
)

var (
	ErrInvalidNumberCount  = domain.ErrInvalidNumberCount
	ErrNumberOutOfRange    = domain.ErrNumberOutOfRange
	ErrDuplicateNumbers    = domain.ErrDuplicateNumbers
	ErrInvalidRepeatWeeks  = errors.New("repeat weeks must not be negative")
	ErrPlayerInactive      = errors.New("player is not active")
	ErrDeadlinePassed      = errors.New("the purchase deadline for this round has passed")
	ErrInsufficientBalance = repository.ErrInsufficientBalance
	ErrBoardNotFound       = repository.ErrBoardNotFound
	ErrNotBoardOwner       = errors.New("board belongs to another player")
)

type BoardRepository interface {
	CreateWithBalanceCheck(ctx context.Context, board domain.Board) (domain.Board, error)
	GetByID(ctx context.Context, id uint) (domain.Board, error)
	ListByRound(ctx context.Context, roundID uint) ([]domain.Board, error)
	ListByPlayer(ctx context.Context, playerID uint) ([]domain.Board, error)
	StopRepeating(ctx context.Context, id uint) (domain.Board, error)
}

// Cutoff describes the weekly purchase deadline in the club's time zone.
type Cutoff struct {
	Location *time.Location
	Weekday  time.Weekday
	Hour     int
}

// WagerService validates and prices board purchases against the active
// round's cutoff and the player's derived balance.
type WagerService struct {
	boards  BoardRepository
	rounds  RoundRepository
	players PlayerRepository
	clk     clock.Clock
	cutoff  Cutoff
}

func NewWagerService(boards BoardRepository, rounds RoundRepository, players PlayerRepository, clk clock.Clock, cutoff Cutoff) *WagerService {
	return &WagerService{
		boards:  boards,
		rounds:  rounds,
		players: players,
		clk:     clk,
		cutoff:  cutoff,
	}
}

// PurchaseBoard buys a board for the given round. With repeatWeeks > 0 the
// player prepays the whole span (price × repeatWeeks) up front; the rollover
// boards created at each closure are free and skip these checks entirely.
func (s *WagerService) PurchaseBoard(ctx context.Context, playerID, roundID uint, numbers []int, repeatWeeks int) (domain.Board, error) {
	sorted, err := domain.ValidateBoardNumbers(numbers)
	if err != nil {
		return domain.Board{}, err
	}
	if repeatWeeks < 0 {
		return domain.Board{}, ErrInvalidRepeatWeeks
	}

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return domain.Board{}, err
	}
	if !player.IsActive {
		return domain.Board{}, ErrPlayerInactive
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return domain.Board{}, err
	}
	if round.IsClosed() {
		return domain.Board{}, ErrRoundClosed
	}
	if !round.IsActive {
		return domain.Board{}, ErrRoundNotActive
	}

	deadline := clock.PurchaseDeadline(round.Year, round.WeekNumber, s.cutoff.Weekday, s.cutoff.Hour, s.cutoff.Location)
	if !s.clk.Now().Before(deadline) {
		return domain.Board{}, ErrDeadlinePassed
	}

	price, err := domain.PriceForCount(len(sorted))
	if err != nil {
		return domain.Board{}, err
	}

	charged := price
	if repeatWeeks > 0 {
		charged = price * repeatWeeks
	}

	board, err := s.boards.CreateWithBalanceCheck(ctx, domain.Board{
		PlayerID:             playerID,
		RoundID:              roundID,
		Numbers:              sorted,
		Price:                charged,
		RepeatWeeksRemaining: repeatWeeks,
		RepeatActive:         repeatWeeks > 0,
	})
	if err != nil {
		return domain.Board{}, err
	}

	return board, nil
}

func (s *WagerService) ListBoardsForRound(ctx context.Context, roundID uint) ([]domain.Board, error) {
	if _, err := s.rounds.GetByID(ctx, roundID); err != nil {
		return nil, err
	}

	boards, err := s.boards.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("s.boards.ListByRound -> %w", err)
	}

	return boards, nil
}

func (s *WagerService) ListBoardsForPlayer(ctx context.Context, playerID uint) ([]domain.Board, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	boards, err := s.boards.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("s.boards.ListByPlayer -> %w", err)
	}

	return boards, nil
}

// StopRepeating disables further rollovers of an owned board. Remaining
// prepaid weeks are not refunded.
func (s *WagerService) StopRepeating(ctx context.Context, playerID, boardID uint) (domain.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return domain.Board{}, err
	}
	if board.PlayerID != playerID {
		return domain.Board{}, ErrNotBoardOwner
	}

	stopped, err := s.boards.StopRepeating(ctx, boardID)
	if err != nil {
		return domain.Board{}, err
	}

	return stopped, nil
}
