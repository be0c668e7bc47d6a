package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"status_code"`
	ErrorMsg   string `json:"error"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error", zap.Int("status", err.StatusCode), zap.String("error", err.ErrorMsg))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrForbidden(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		ErrorMsg:   err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   err.Error(),
	}
}

// ErrConflict covers invalid-state transitions: closing a closed round,
// settling a settled transaction, purchasing after the cutoff.
func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		ErrorMsg:   err.Error(),
	}
}

// ErrPaymentRequired maps an insufficient derived balance.
func ErrPaymentRequired(err error) *Err {
	return &Err{
		StatusCode: http.StatusPaymentRequired,
		ErrorMsg:   err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   err.Error(),
	}
}
