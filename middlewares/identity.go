package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// La identidad llega ya resuelta (el login vive fuera de este sistema).
// X-Usuario / X-Rol los fija quien sirve la página del panel.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			usuario := strings.TrimSpace(c.Request().Header.Get("X-Usuario"))
			rol := strings.ToLower(strings.TrimSpace(c.Request().Header.Get("X-Rol")))
			if usuario == "" || rol == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "identidad no resuelta"})
			}
			c.Set("usuario", usuario)
			c.Set("rol", rol)
			return next(c)
		}
	}
}

// Limita los roles permitidos, ej. RequireRole("admin") o RequireRole("admin", "preceptor").
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("rol").(string)
			if _, ok := allowed[strings.ToLower(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "no tienes permiso para esta acción"})
			}
			return next(c)
		}
	}
}
