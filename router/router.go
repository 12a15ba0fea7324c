package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	activityController "agrivision/pkg/activity/controller"
	authController "agrivision/pkg/auth/controller"
	fieldController "agrivision/pkg/field/controller"
	"agrivision/pkg/middleware"
	soilController "agrivision/pkg/soil/controller"
)

type Options struct {
	Log *zap.Logger
	// RequireUser turns off the development-user fallback.
	RequireUser bool
}

func New(
	e *echo.Echo,
	opts Options,
	fieldCtrl fieldController.FieldController,
	soilCtrl soilController.SoilController,
	activityCtrl activityController.ActivityController,
	authCtrl authController.AuthController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(opts.Log))

	e.GET("/health", healthCtrl.Health)
	e.GET("/devlogin", authCtrl.DevLogin)

	api := e.Group("", middleware.RequireUser(opts.RequireUser), middleware.Identify())
	api.GET("/whoami", authCtrl.WhoAmI)

	// static segments are registered before :id so echo prefers them
	api.GET("/fields", fieldCtrl.List)
	api.POST("/fields", fieldCtrl.Create)
	api.GET("/fields/summary", fieldCtrl.Summary)
	api.POST("/fields/area", fieldCtrl.Area)
	api.GET("/fields/:id", fieldCtrl.Get)
	api.PATCH("/fields/:id", fieldCtrl.Update)
	api.DELETE("/fields/:id", fieldCtrl.Delete)
	api.GET("/fields/:id/geojson", fieldCtrl.GeoJSON)

	api.POST("/soil/analyze", soilCtrl.Analyze)
	api.GET("/soil/analyses", soilCtrl.List)
	api.GET("/soil/analyses/:id", soilCtrl.Get)
	api.GET("/soil/analyses/:id/report", soilCtrl.Report)

	api.GET("/activities", activityCtrl.List)
	return e
}
