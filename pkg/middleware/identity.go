package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	UserHeader  = "X-User-Id"
	UserCookie  = "AGV_UID"
	DefaultUser = "U_DEV_DEFAULT"

	ctxUserKey = "uid"
)

// Identify resolves the caller from the X-User-Id header, the AGV_UID cookie
// or a ?uid= query (in that order) and stores it on the context. Without any
// of them the development user is assumed and remembered in the cookie.
func Identify() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := lookupUser(c)
			if uid == "" {
				uid = DefaultUser
				c.SetCookie(&http.Cookie{Name: UserCookie, Value: uid, Path: "/"})
			}
			c.Set(ctxUserKey, uid)
			return next(c)
		}
	}
}

// RequireUser rejects requests that carry no user id. When enabled is false
// it passes everything through and Identify supplies the development user.
func RequireUser(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			uid, _ := lookupUser(c)
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user id"})
			}
			c.Set(ctxUserKey, uid)
			return next(c)
		}
	}
}

// UserID returns the id stored by Identify or RequireUser.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ctxUserKey).(string)
	return uid
}

func lookupUser(c echo.Context) (string, string) {
	if v := strings.TrimSpace(c.Request().Header.Get(UserHeader)); v != "" {
		return v, "header"
	}
	if ck, err := c.Cookie(UserCookie); err == nil && strings.TrimSpace(ck.Value) != "" {
		return strings.TrimSpace(ck.Value), "cookie"
	}
	if q := strings.TrimSpace(c.QueryParam("uid")); q != "" {
		c.SetCookie(&http.Cookie{Name: UserCookie, Value: q, Path: "/"})
		return q, "query"
	}
	return "", ""
}
