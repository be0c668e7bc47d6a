package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

var (
	ErrTransactionNotFound   = dao.ErrTransactionNotFound
	ErrTransactionNotPending = dao.ErrTransactionNotPending
	ErrDuplicateReference    = dao.ErrDuplicateReference
)

type TransactionDAO interface {
	Create(ctx context.Context, transaction dao.Transaction) (dao.Transaction, error)
	GetByID(ctx context.Context, id uint) (dao.Transaction, error)
	Approve(ctx context.Context, id uint, now time.Time) (dao.Transaction, error)
	Reject(ctx context.Context, id uint, reason string) (dao.Transaction, error)
	ListPending(ctx context.Context) ([]dao.Transaction, error)
	ListHistory(ctx context.Context, playerID *uint, status *string) ([]dao.Transaction, error)
	SumApprovedByPlayer(ctx context.Context, playerID uint) (int, error)
	SumBoardSpendByPlayer(ctx context.Context, playerID uint) (int, error)
}

type LedgerRepository struct {
	dao TransactionDAO
}

func NewLedgerRepository(dao TransactionDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

func (r *LedgerRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	created, err := r.dao.Create(ctx, dao.Transaction{
		PlayerID:          transaction.PlayerID,
		ExternalReference: transaction.ExternalReference,
		Amount:            transaction.Amount,
		Status:            string(domain.TransactionPending),
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *LedgerRepository) GetByID(ctx context.Context, id uint) (domain.Transaction, error) {
	transaction, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	return r.daoToDomain(transaction), nil
}

func (r *LedgerRepository) Approve(ctx context.Context, id uint, now time.Time) (domain.Transaction, error) {
	transaction, err := r.dao.Approve(ctx, id, now)
	if err != nil {
		return domain.Transaction{}, err
	}

	return r.daoToDomain(transaction), nil
}

func (r *LedgerRepository) Reject(ctx context.Context, id uint, reason string) (domain.Transaction, error) {
	transaction, err := r.dao.Reject(ctx, id, reason)
	if err != nil {
		return domain.Transaction{}, err
	}

	return r.daoToDomain(transaction), nil
}

func (r *LedgerRepository) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := r.dao.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPending -> %w", err)
	}

	return r.daosToDomain(transactions), nil
}

func (r *LedgerRepository) ListHistory(ctx context.Context, playerID *uint, status *domain.TransactionStatus) ([]domain.Transaction, error) {
	var rawStatus *string
	if status != nil {
		s := string(*status)
		rawStatus = &s
	}

	transactions, err := r.dao.ListHistory(ctx, playerID, rawStatus)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListHistory -> %w", err)
	}

	return r.daosToDomain(transactions), nil
}

// Balance recomputes approved deposits minus non-deleted board spend.
func (r *LedgerRepository) Balance(ctx context.Context, playerID uint) (int, error) {
	approved, err := r.dao.SumApprovedByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumApprovedByPlayer -> %w", err)
	}

	spent, err := r.dao.SumBoardSpendByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumBoardSpendByPlayer -> %w", err)
	}

	return approved - spent, nil
}

func (r *LedgerRepository) daoToDomain(transaction dao.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:                transaction.ID,
		PlayerID:          transaction.PlayerID,
		ExternalReference: transaction.ExternalReference,
		Amount:            transaction.Amount,
		Status:            domain.TransactionStatus(transaction.Status),
		CreatedAt:         transaction.CreatedAt,
		ApprovedAt:        transaction.ApprovedAt,
		RejectionReason:   transaction.RejectionReason,
	}
}

func (r *LedgerRepository) daosToDomain(transactions []dao.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, len(transactions))
	for i, transaction := range transactions {
		result[i] = r.daoToDomain(transaction)
	}

	return result
}
