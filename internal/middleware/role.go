package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole returns a middleware enforcing that the authenticated
// user's role id is at least min.  It replaces per-endpoint ad hoc
// role checks with a single ordered comparison: CUSTOMER (1) <
// MANAGER (2) < ADMIN (3).  It assumes JWTAuth has stored the role_id
// claim in the context; a missing or malformed claim is rejected with
// 401, an insufficient one with 403.
func RequireRole(min uint8) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            roleID, ok := roleFromContext(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            if roleID < min {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// roleFromContext normalizes the role_id claim, which may arrive as
// any numeric type depending on how the JWT was decoded.
func roleFromContext(c echo.Context) (uint8, bool) {
    switch t := c.Get("role_id").(type) {
    case uint8:
        return t, true
    case int:
        if t >= 0 && t <= 255 {
            return uint8(t), true
        }
    case int64:
        if t >= 0 && t <= 255 {
            return uint8(t), true
        }
    case float64:
        if t >= 0 && t <= 255 {
            return uint8(t), true
        }
    }
    return 0, false
}
