package controllerImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrivision/entities"
	"agrivision/pkg/field/controller"
	"agrivision/pkg/field/service"
	"agrivision/pkg/geo"
	"agrivision/pkg/middleware"
)

type FieldCtrl struct{ svc service.FieldService }

var _ controller.FieldController = (*FieldCtrl)(nil)

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type fieldResp struct {
	entities.Field
	AreaAcres float64 `json:"area_acres"`
}

func respond(f *entities.Field) fieldResp { return fieldResp{Field: *f, AreaAcres: f.AreaAcres()} }

// boundary accepts [[lat,lng],...], [{"lat":..,"lng":..},...] or a GeoJSON
// Polygon / Feature.
type boundary json.RawMessage

func (b boundary) polygon() (geo.FieldPolygon, error) {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '[':
		var pairs [][2]float64
		if err := json.Unmarshal(raw, &pairs); err == nil {
			return geo.FromPairs(pairs), nil
		}
		var pts geo.FieldPolygon
		if err := json.Unmarshal(raw, &pts); err != nil {
			return nil, fmt.Errorf("boundary: %w", err)
		}
		return pts, nil
	case '{':
		return geo.PolygonFromGeoJSON(raw)
	}
	return nil, errors.New("boundary: expected an array of points or a GeoJSON polygon")
}

type createReq struct {
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Crop     string          `json:"crop"`
	Boundary json.RawMessage `json:"boundary"`
}

type updateReq struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Crop     *string `json:"crop"`
}

type areaReq struct {
	Boundary json.RawMessage `json:"boundary"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	poly, err := boundary(req.Boundary).polygon()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	f, err := h.svc.CreateField(c.Request().Context(), middleware.UserID(c), service.FieldInput{
		Name: req.Name, Location: req.Location, Crop: req.Crop, Boundary: poly,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, respond(f))
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	f, err := h.svc.GetFieldByID(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, respond(f))
}

func (h *FieldCtrl) List(c echo.Context) error {
	fields, err := h.svc.ListFields(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	out := make([]fieldResp, 0, len(fields))
	for i := range fields {
		out = append(out, respond(&fields[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.UpdateField(c.Request().Context(), id, middleware.UserID(c), service.FieldUpdate{
		Name: req.Name, Location: req.Location, Crop: req.Crop,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, respond(f))
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	if err := h.svc.DeleteField(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FieldCtrl) Summary(c echo.Context) error {
	sum, err := h.svc.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// Area previews the area of a ring while it is being drawn.
func (h *FieldCtrl) Area(c echo.Context) error {
	var req areaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	poly, err := boundary(req.Boundary).polygon()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.svc.PreviewArea(poly))
}

func (h *FieldCtrl) GeoJSON(c echo.Context) error {
	id, ok := fieldID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	f, err := h.svc.GetFieldByID(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	doc, err := f.Boundary.Feature(strconv.FormatUint(uint64(f.FieldID), 10), map[string]interface{}{
		"name":          f.Name,
		"location":      f.Location,
		"crop":          f.Crop,
		"color":         f.Color,
		"area_hectares": f.AreaHectares,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Blob(http.StatusOK, "application/geo+json", doc)
}

func fieldID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrInvalidPolygon), errors.Is(err, service.ErrNameRequired):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
