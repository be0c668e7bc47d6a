package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klublotto/klublotto-api/internal/api/handler/v1/request"
	"github.com/klublotto/klublotto-api/internal/api/handler/v1/response"
	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/service"
)

var errUnknownStatus = errors.New("unknown transaction status")

type LedgerService interface {
	SubmitDeposit(ctx context.Context, playerID uint, externalReference string, amount int) (domain.Transaction, error)
	Approve(ctx context.Context, transactionID uint) (domain.Transaction, error)
	Reject(ctx context.Context, transactionID uint, reason string) (domain.Transaction, error)
	GetBalance(ctx context.Context, playerID uint) (int, error)
	ListPending(ctx context.Context) ([]domain.Transaction, error)
	ListHistory(ctx context.Context, playerID *uint, status *domain.TransactionStatus) ([]domain.Transaction, error)
}

type LedgerHandler struct {
	svc      LedgerService
	resolver PlayerResolver
}

func NewLedgerHandler(svc LedgerService, resolver PlayerResolver) *LedgerHandler {
	return &LedgerHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleSubmitDeposit godoc
// @Summary      Submit a manual deposit for approval
// @Tags         transactions
// @Produce      json
// @Param        request   body      request.SubmitDepositRequest true "request body"
// @Success      201      {object}   domain.Transaction
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *LedgerHandler) HandleSubmitDeposit(ctx *gin.Context) {
	var req request.SubmitDepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, ok := resolveCaller(ctx, h.resolver)
	if !ok {
		return
	}

	transaction, err := h.svc.SubmitDeposit(ctx.Request.Context(), player.ID, req.ExternalReference, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrEmptyReference),
			errors.Is(err, service.ErrDuplicateReference):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrPlayerNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitDeposit -> h.svc.SubmitDeposit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// HandleListMyTransactions godoc
// @Summary      List the caller's settled transactions, newest first
// @Tags         transactions
// @Produce      json
// @Param        status   query      string false "filter by status (Pending, Approved, Rejected)"
// @Success      200      {array}    domain.Transaction
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *LedgerHandler) HandleListMyTransactions(ctx *gin.Context) {
	player, ok := resolveCaller(ctx, h.resolver)
	if !ok {
		return
	}

	var status *domain.TransactionStatus
	if raw := ctx.Query("status"); raw != "" {
		s := domain.TransactionStatus(raw)
		switch s {
		case domain.TransactionPending, domain.TransactionApproved, domain.TransactionRejected:
			status = &s
		default:
			response.RenderErr(ctx, response.ErrBadRequest(errUnknownStatus))
			return
		}
	}

	transactions, err := h.svc.ListHistory(ctx.Request.Context(), &player.ID, status)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyTransactions -> h.svc.ListHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// HandleListPending godoc
// @Summary      List all pending deposits awaiting review
// @Tags         transactions
// @Produce      json
// @Success      200      {array}    domain.Transaction
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /transactions/pending [get]
func (h *LedgerHandler) HandleListPending(ctx *gin.Context) {
	transactions, err := h.svc.ListPending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// HandleApproveTransaction godoc
// @Summary      Approve a pending deposit
// @Tags         transactions
// @Produce      json
// @Param        transactionID   path      int true "transaction ID"
// @Success      200      {object}   domain.Transaction
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /transactions/{transactionID}/approve [post]
func (h *LedgerHandler) HandleApproveTransaction(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "transactionID")
	if !ok {
		return
	}

	transaction, err := h.svc.Approve(ctx.Request.Context(), transactionID)
	if err != nil {
		h.renderSettleErr(ctx, "HandleApproveTransaction", err)
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}

// HandleRejectTransaction godoc
// @Summary      Reject a pending deposit
// @Tags         transactions
// @Produce      json
// @Param        transactionID   path      int true "transaction ID"
// @Param        request         body      request.RejectTransactionRequest false "request body"
// @Success      200      {object}   domain.Transaction
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /transactions/{transactionID}/reject [post]
func (h *LedgerHandler) HandleRejectTransaction(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "transactionID")
	if !ok {
		return
	}

	var req request.RejectTransactionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	transaction, err := h.svc.Reject(ctx.Request.Context(), transactionID, req.Reason)
	if err != nil {
		h.renderSettleErr(ctx, "HandleRejectTransaction", err)
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}

func (h *LedgerHandler) renderSettleErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrTransactionNotPending):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
