package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrivision/pkg/auth/controller"
	"agrivision/pkg/middleware"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

// DevLogin pins the caller to ?uid= (or the development user) through the
// identity cookie.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = middleware.DefaultUser
	}
	c.SetCookie(&http.Cookie{Name: middleware.UserCookie, Value: uid, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"uid": middleware.UserID(c)})
}
