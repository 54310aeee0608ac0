package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hidori-app/hidori-api/internal/api/handler/v1/response"
	"github.com/hidori-app/hidori-api/internal/pkg/ratelimit"
)

// RateLimit rejects requests over the limiter's fixed-window budget
// with a 429 and a Retry-After hint. One limiter per endpoint class.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		decision := limiter.Allow(clientKey(ctx))
		if !decision.Allowed {
			ctx.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			response.RenderErr(ctx, response.ErrTooManyRequests(decision.RetryAfter))

			return
		}

		ctx.Next()
	}
}

// clientKey identifies the caller best-effort: first forwarded hop,
// else the connection's client IP, else a constant placeholder.
func clientKey(ctx *gin.Context) string {
	if forwarded := ctx.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}

		return strings.TrimSpace(forwarded)
	}

	if ip := ctx.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}
