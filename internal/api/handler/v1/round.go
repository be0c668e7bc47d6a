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
	"github.com/klublotto/klublotto-api/internal/repository"
	"github.com/klublotto/klublotto-api/internal/service"
)

type RoundService interface {
	GetActiveRound(ctx context.Context) (domain.Round, error)
	GetRoundHistory(ctx context.Context) ([]domain.Round, error)
	CloseRound(ctx context.Context, roundID uint, numbers []int) (domain.ClosureSummary, error)
}

type RoundSeeder interface {
	SeedRounds(ctx context.Context) (repository.SeedOutcome, error)
}

type RoundBoardsLister interface {
	ListBoardsForRound(ctx context.Context, roundID uint) ([]domain.Board, error)
}

type RoundHandler struct {
	svc    RoundService
	seeder RoundSeeder
	boards RoundBoardsLister
}

func NewRoundHandler(svc RoundService, seeder RoundSeeder, boards RoundBoardsLister) *RoundHandler {
	return &RoundHandler{
		svc:    svc,
		seeder: seeder,
		boards: boards,
	}
}

// HandleGetActiveRound godoc
// @Summary      Get the currently active round
// @Tags         rounds
// @Produce      json
// @Success      200      {object}   domain.Round
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rounds/active [get]
func (h *RoundHandler) HandleGetActiveRound(ctx *gin.Context) {
	round, err := h.svc.GetActiveRound(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetActiveRound -> h.svc.GetActiveRound -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, round)
}

// HandleGetRoundHistory godoc
// @Summary      List all rounds, newest week first
// @Tags         rounds
// @Produce      json
// @Success      200      {array}    domain.Round
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rounds [get]
func (h *RoundHandler) HandleGetRoundHistory(ctx *gin.Context) {
	rounds, err := h.svc.GetRoundHistory(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRoundHistory -> h.svc.GetRoundHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rounds)
}

// HandleCloseRound godoc
// @Summary      Enter winning numbers and close the round
// @Tags         rounds
// @Produce      json
// @Param        roundID   path      int true "round ID"
// @Param        request   body      request.CloseRoundRequest true "request body"
// @Success      200      {object}   domain.ClosureSummary
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rounds/{roundID}/close [post]
func (h *RoundHandler) HandleCloseRound(ctx *gin.Context) {
	roundID, ok := parseIDParam(ctx, "roundID")
	if !ok {
		return
	}

	var req request.CloseRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary, err := h.svc.CloseRound(ctx.Request.Context(), roundID, req.WinningNumbers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWinningSet):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrRoundNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrRoundNotActive), errors.Is(err, service.ErrRoundClosed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCloseRound -> h.svc.CloseRound -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleSeedRounds godoc
// @Summary      Pre-generate future rounds (idempotent)
// @Tags         rounds
// @Produce      json
// @Success      200      {object}   response.SeedResponse
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rounds/seed [post]
func (h *RoundHandler) HandleSeedRounds(ctx *gin.Context) {
	outcome, err := h.seeder.SeedRounds(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSeedRounds -> h.seeder.SeedRounds -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SeedResponse{
		Created:   outcome.Created,
		Existing:  outcome.Existing,
		Activated: outcome.Activated,
	})
}

// HandleListRoundBoards godoc
// @Summary      List a round's boards, oldest first
// @Tags         rounds
// @Produce      json
// @Param        roundID   path      int true "round ID"
// @Success      200      {array}    domain.Board
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rounds/{roundID}/boards [get]
func (h *RoundHandler) HandleListRoundBoards(ctx *gin.Context) {
	roundID, ok := parseIDParam(ctx, "roundID")
	if !ok {
		return
	}

	boards, err := h.boards.ListBoardsForRound(ctx.Request.Context(), roundID)
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleListRoundBoards -> h.boards.ListBoardsForRound -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, boards)
}
