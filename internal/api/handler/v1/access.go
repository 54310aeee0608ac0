package v1

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hidori-app/hidori-api/internal/service"
)

const (
	headerEventPassword = "X-Event-Password"
	headerEditToken     = "X-Edit-Token"
	queryEventPassword  = "password"
)

// accessRequest collects the request's credential material. Password
// precedence: body field, then dedicated header, then query parameter.
func accessRequest(ctx *gin.Context, bodyPassword string) service.AccessRequest {
	password := bodyPassword
	if password == "" {
		password = ctx.GetHeader(headerEventPassword)
	}
	if password == "" {
		password = ctx.Query(queryEventPassword)
	}

	return service.AccessRequest{
		Password:    password,
		BearerToken: bearerToken(ctx),
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func editToken(ctx *gin.Context) string {
	return ctx.GetHeader(headerEditToken)
}
