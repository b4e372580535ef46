package utils

import (
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

// RoleMiddleware gates a route to the given roles. The subject id is made
// available to downstream handlers under the "userID" context value.
func RoleMiddleware(roles ...string) iris.Handler {
	return func(ctx iris.Context) {
		claims := jwt.Get(ctx).(*AccessToken)
		if !slices.Contains(roles, claims.Role) {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"error": "forbidden", "message": strings.Join(roles, " or ") + " access required"})
			return
		}
		ctx.Values().Set("userID", claims.ID)
		ctx.Next()
	}
}

// UserIDFromTokenMiddleware extracts user ID from JWT token and stores it in
// context, without any role check
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}
