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

type WagerService interface {
	PurchaseBoard(ctx context.Context, playerID, roundID uint, numbers []int, repeatWeeks int) (domain.Board, error)
	ListBoardsForPlayer(ctx context.Context, playerID uint) ([]domain.Board, error)
	StopRepeating(ctx context.Context, playerID, boardID uint) (domain.Board, error)
}

type BoardHandler struct {
	svc      WagerService
	resolver PlayerResolver
}

func NewBoardHandler(svc WagerService, resolver PlayerResolver) *BoardHandler {
	return &BoardHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandlePurchaseBoard godoc
// @Summary      Purchase a board for a round
// @Tags         boards
// @Produce      json
// @Param        request   body      request.PurchaseBoardRequest true "request body"
// @Success      201      {object}   domain.Board
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /boards [post]
func (h *BoardHandler) HandlePurchaseBoard(ctx *gin.Context) {
	var req request.PurchaseBoardRequest
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

	board, err := h.svc.PurchaseBoard(ctx.Request.Context(), player.ID, req.RoundID, req.Numbers, req.RepeatWeeks)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidNumberCount),
			errors.Is(err, service.ErrNumberOutOfRange),
			errors.Is(err, service.ErrDuplicateNumbers),
			errors.Is(err, service.ErrInvalidRepeatWeeks):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrPlayerInactive):
			response.RenderErr(ctx, response.ErrForbidden(err))
		case errors.Is(err, service.ErrRoundNotFound), errors.Is(err, service.ErrPlayerNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrRoundNotActive),
			errors.Is(err, service.ErrRoundClosed),
			errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInsufficientBalance):
			response.RenderErr(ctx, response.ErrPaymentRequired(err))
		default:
			err = fmt.Errorf("v1.HandlePurchaseBoard -> h.svc.PurchaseBoard -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, board)
}

// HandleListMyBoards godoc
// @Summary      List the caller's boards, newest first
// @Tags         boards
// @Produce      json
// @Success      200      {array}    domain.Board
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /boards [get]
func (h *BoardHandler) HandleListMyBoards(ctx *gin.Context) {
	player, ok := resolveCaller(ctx, h.resolver)
	if !ok {
		return
	}

	boards, err := h.svc.ListBoardsForPlayer(ctx.Request.Context(), player.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyBoards -> h.svc.ListBoardsForPlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, boards)
}

// HandleStopRepeating godoc
// @Summary      Stop a board's weekly repeat (no refund)
// @Tags         boards
// @Produce      json
// @Param        boardID   path      int true "board ID"
// @Success      200      {object}   domain.Board
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /boards/{boardID}/stop-repeat [post]
func (h *BoardHandler) HandleStopRepeating(ctx *gin.Context) {
	boardID, ok := parseIDParam(ctx, "boardID")
	if !ok {
		return
	}

	player, ok := resolveCaller(ctx, h.resolver)
	if !ok {
		return
	}

	board, err := h.svc.StopRepeating(ctx.Request.Context(), player.ID, boardID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBoardNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotBoardOwner):
			response.RenderErr(ctx, response.ErrForbidden(err))
		default:
			err = fmt.Errorf("v1.HandleStopRepeating -> h.svc.StopRepeating -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, board)
}
