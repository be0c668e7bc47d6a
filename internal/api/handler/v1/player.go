package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klublotto/klublotto-api/internal/api/handler/v1/response"
	"github.com/klublotto/klublotto-api/internal/domain"
)

type PlayerService interface {
	PlayerResolver

	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

type BalanceReader interface {
	GetBalance(ctx context.Context, playerID uint) (int, error)
}

type PlayerHandler struct {
	svc     PlayerService
	balance BalanceReader
}

func NewPlayerHandler(svc PlayerService, balance BalanceReader) *PlayerHandler {
	return &PlayerHandler{
		svc:     svc,
		balance: balance,
	}
}

// HandleGetMe godoc
// @Summary      Get the caller's player record
// @Tags         players
// @Produce      json
// @Success      200      {object}   domain.Player
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /players/me [get]
func (h *PlayerHandler) HandleGetMe(ctx *gin.Context) {
	player, ok := resolveCaller(ctx, h.svc)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleGetMyBalance godoc
// @Summary      Get the caller's derived balance
// @Tags         players
// @Produce      json
// @Success      200      {object}   response.BalanceResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /players/me/balance [get]
func (h *PlayerHandler) HandleGetMyBalance(ctx *gin.Context) {
	player, ok := resolveCaller(ctx, h.svc)
	if !ok {
		return
	}

	balance, err := h.balance.GetBalance(ctx.Request.Context(), player.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyBalance -> h.balance.GetBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BalanceResponse{
		PlayerID: player.ID,
		Balance:  balance,
	})
}

// HandleListPlayers godoc
// @Summary      List all players
// @Tags         players
// @Produce      json
// @Success      200      {array}    domain.Player
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /players [get]
func (h *PlayerHandler) HandleListPlayers(ctx *gin.Context) {
	players, err := h.svc.ListPlayers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPlayers -> h.svc.ListPlayers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, players)
}

// HandleGetPriceTable godoc
// @Summary      Get the fixed board price table
// @Tags         players
// @Produce      json
// @Success      200      {object}   response.PriceTableResponse
// @Router       /prices [get]
func HandleGetPriceTable(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.PriceTableResponse{
		Prices: domain.BoardPrices,
	})
}
