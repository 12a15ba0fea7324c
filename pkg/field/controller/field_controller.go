package controller

import "github.com/labstack/echo/v4"

type FieldController interface {
	Create(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	Summary(c echo.Context) error
	Area(c echo.Context) error
	GeoJSON(c echo.Context) error
}
