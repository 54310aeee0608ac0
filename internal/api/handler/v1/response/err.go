package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	internal error
}

func (e *Err) Error() string {
	return e.Msg
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
	}
}

// ErrUnauthorized is deliberately fixed and generic: it must not leak
// whether the event exists or how the check failed.
func ErrUnauthorized() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "password required",
	}
}

func ErrNotFound(resource, by string, id interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        fmt.Sprintf("%v with %v (%v) is not found", resource, by, id),
	}
}

func ErrTooManyRequests(retryAfter time.Duration) *Err {
	return &Err{
		StatusCode: http.StatusTooManyRequests,
		Msg:        fmt.Sprintf("too many requests, retry in %v", retryAfter),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "something went wrong",
		internal:   err,
	}
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(err.internal))
	}
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
