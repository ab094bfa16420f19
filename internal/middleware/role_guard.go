package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles はcontextのロールがいずれかに一致するか確認する。
// 一致しなければ閉じる側に倒す（403）。
func RequireRoles(anyOf ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRoles := c.Get(CtxUserRolesKey)
			roles, ok := rawRoles.([]string)
			if !ok || len(roles) == 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, want := range anyOf {
				for _, have := range roles {
					if have == want {
						return next(c)
					}
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("insufficient role"))
		}
	}
}
