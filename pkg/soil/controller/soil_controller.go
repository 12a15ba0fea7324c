package controller

import "github.com/labstack/echo/v4"

type SoilController interface {
	Analyze(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Report(c echo.Context) error
}
