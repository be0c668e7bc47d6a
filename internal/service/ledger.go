package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
)

var (
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrEmptyReference        = errors.New("external reference must not be empty")
	ErrDuplicateReference    = repository.ErrDuplicateReference
	ErrTransactionNotFound   = repository.ErrTransactionNotFound
	ErrTransactionNotPending = repository.ErrTransactionNotPending
)

type LedgerRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	Approve(ctx context.Context, id uint, now time.Time) (domain.Transaction, error)
	Reject(ctx context.Context, id uint, reason string) (domain.Transaction, error)
	ListPending(ctx context.Context) ([]domain.Transaction, error)
	ListHistory(ctx context.Context, playerID *uint, status *domain.TransactionStatus) ([]domain.Transaction, error)
	Balance(ctx context.Context, playerID uint) (int, error)
}

// LedgerService maintains the deposit ledger: Pending requests that an
// administrator approves or rejects exactly once. Balance is never stored;
// every read recomputes it from approved deposits and board spend.
type LedgerService struct {
	repo    LedgerRepository
	players PlayerRepository
	clk     clock.Clock
}

func NewLedgerService(repo LedgerRepository, players PlayerRepository, clk clock.Clock) *LedgerService {
	return &LedgerService{
		repo:    repo,
		players: players,
		clk:     clk,
	}
}

// SubmitDeposit records a manual payment claim. The external reference is
// the payment's reference number; its uniqueness doubles as the guard
// against duplicate client retries.
func (s *LedgerService) SubmitDeposit(ctx context.Context, playerID uint, externalReference string, amount int) (domain.Transaction, error) {
	if amount <= 0 {
		return domain.Transaction{}, ErrInvalidAmount
	}

	reference := strings.TrimSpace(externalReference)
	if reference == "" {
		return domain.Transaction{}, ErrEmptyReference
	}

	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Create(ctx, domain.Transaction{
		PlayerID:          playerID,
		ExternalReference: reference,
		Amount:            amount,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	return transaction, nil
}

func (s *LedgerService) Approve(ctx context.Context, transactionID uint) (domain.Transaction, error) {
	transaction, err := s.repo.Approve(ctx, transactionID, s.clk.Now())
	if err != nil {
		return domain.Transaction{}, err
	}

	return transaction, nil
}

func (s *LedgerService) Reject(ctx context.Context, transactionID uint, reason string) (domain.Transaction, error) {
	transaction, err := s.repo.Reject(ctx, transactionID, reason)
	if err != nil {
		return domain.Transaction{}, err
	}

	return transaction, nil
}

// GetBalance returns approved deposits minus all non-deleted board spend.
func (s *LedgerService) GetBalance(ctx context.Context, playerID uint) (int, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return 0, err
	}

	balance, err := s.repo.Balance(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Balance -> %w", err)
	}

	return balance, nil
}

func (s *LedgerService) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPending -> %w", err)
	}

	return transactions, nil
}

// ListHistory returns settled transactions newest-first; pass a status
// filter to include Pending explicitly.
func (s *LedgerService) ListHistory(ctx context.Context, playerID *uint, status *domain.TransactionStatus) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListHistory(ctx, playerID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListHistory -> %w", err)
	}

	return transactions, nil
}
