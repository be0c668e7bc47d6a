package v1

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/klublotto/klublotto-api/internal/api/handler/v1/response"
	"github.com/klublotto/klublotto-api/internal/api/middleware"
	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/service"
)

var errPlayerNotResolved = errors.New("player not found for the current user")

type PlayerResolver interface {
	ResolveByEmail(ctx context.Context, email string) (domain.Player, error)
}

// resolveCaller maps the authenticated principal's email to the player row.
// On failure it renders the error and returns false.
func resolveCaller(ctx *gin.Context, resolver PlayerResolver) (domain.Player, bool) {
	player, err := resolver.ResolveByEmail(ctx.Request.Context(), middleware.CallerEmail(ctx))
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(errPlayerNotResolved))

			return domain.Player{}, false
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return domain.Player{}, false
	}

	return player, true
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid "+name)))

		return 0, false
	}

	return uint(id), true
}
