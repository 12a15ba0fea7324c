package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrivision/pkg/activity/controller"
	"agrivision/pkg/activity/service"
	"agrivision/pkg/middleware"
)

type ActivityCtrl struct{ svc service.ActivityService }

var _ controller.ActivityController = (*ActivityCtrl)(nil)

func New(svc service.ActivityService) *ActivityCtrl { return &ActivityCtrl{svc} }

func (h *ActivityCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
