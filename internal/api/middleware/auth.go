package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/klublotto/klublotto-api/internal/api/handler/v1/response"
	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "userEmail"
	ContextKeyRole   = "userRole"
)

var (
	errMissingToken = errors.New("authorization token is missing")
	errAdminOnly    = errors.New("administrator access required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyEmail, claims.Email)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after VerifyJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextKeyRole) != domain.RoleAdmin {
			response.RenderErr(ctx, response.ErrForbidden(errAdminOnly))

			return
		}

		ctx.Next()
	}
}

// CallerEmail returns the authenticated principal's email from the context.
func CallerEmail(ctx *gin.Context) string {
	return ctx.GetString(ContextKeyEmail)
}
