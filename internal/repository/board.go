package repository

import (
	"context"
	"fmt"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

var (
	ErrBoardNotFound       = dao.ErrBoardNotFound
	ErrInsufficientBalance = dao.ErrInsufficientFunds
)

type BoardDAO interface {
	CreateWithBalanceCheck(ctx context.Context, board dao.Board) (dao.Board, error)
	GetByID(ctx context.Context, id uint) (dao.Board, error)
	ListByRound(ctx context.Context, roundID uint) ([]dao.Board, error)
	ListByPlayer(ctx context.Context, playerID uint) ([]dao.Board, error)
	StopRepeating(ctx context.Context, id uint) (dao.Board, error)
}

type BoardRepository struct {
	dao BoardDAO
}

func NewBoardRepository(dao BoardDAO) *BoardRepository {
	return &BoardRepository{
		dao: dao,
	}
}

func (r *BoardRepository) CreateWithBalanceCheck(ctx context.Context, board domain.Board) (domain.Board, error) {
	created, err := r.dao.CreateWithBalanceCheck(ctx, r.domainToDao(board))
	if err != nil {
		return domain.Board{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uint) (domain.Board, error) {
	board, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Board{}, err
	}

	return r.daoToDomain(board), nil
}

func (r *BoardRepository) ListByRound(ctx context.Context, roundID uint) ([]domain.Board, error) {
	boards, err := r.dao.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByRound -> %w", err)
	}

	return r.daosToDomain(boards), nil
}

func (r *BoardRepository) ListByPlayer(ctx context.Context, playerID uint) ([]domain.Board, error) {
	boards, err := r.dao.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByPlayer -> %w", err)
	}

	return r.daosToDomain(boards), nil
}

func (r *BoardRepository) StopRepeating(ctx context.Context, id uint) (domain.Board, error) {
	board, err := r.dao.StopRepeating(ctx, id)
	if err != nil {
		return domain.Board{}, err
	}

	return r.daoToDomain(board), nil
}

func (r *BoardRepository) domainToDao(board domain.Board) dao.Board {
	return dao.Board{
		ID:                   board.ID,
		PlayerID:             board.PlayerID,
		RoundID:              board.RoundID,
		Numbers:              dao.EncodeNumbers(board.Numbers),
		Price:                board.Price,
		IsWinning:            board.IsWinning,
		RepeatWeeksRemaining: board.RepeatWeeksRemaining,
		RepeatActive:         board.RepeatActive,
		CreatedAt:            board.CreatedAt,
	}
}

func (r *BoardRepository) daoToDomain(board dao.Board) domain.Board {
	return domain.Board{
		ID:                   board.ID,
		PlayerID:             board.PlayerID,
		RoundID:              board.RoundID,
		Numbers:              dao.DecodeNumbers(board.Numbers),
		Price:                board.Price,
		IsWinning:            board.IsWinning,
		RepeatWeeksRemaining: board.RepeatWeeksRemaining,
		RepeatActive:         board.RepeatActive,
		CreatedAt:            board.CreatedAt,
	}
}

func (r *BoardRepository) daosToDomain(boards []dao.Board) []domain.Board {
	result := make([]domain.Board, len(boards))
	for i, board := range boards {
		result[i] = r.daoToDomain(board)
	}

	return result
}
