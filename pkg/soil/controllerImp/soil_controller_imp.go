package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrivision/pkg/advisory"
	fieldsvc "agrivision/pkg/field/service"
	"agrivision/pkg/middleware"
	"agrivision/pkg/report"
	"agrivision/pkg/soil/controller"
	"agrivision/pkg/soil/service"
)

type SoilCtrl struct{ svc service.SoilService }

var _ controller.SoilController = (*SoilCtrl)(nil)

func New(svc service.SoilService) *SoilCtrl { return &SoilCtrl{svc} }

type analyzeReq struct {
	Nitrogen     *float64 `json:"nitrogen"`
	Phosphorus   *float64 `json:"phosphorus"`
	Potassium    *float64 `json:"potassium"`
	PH           *float64 `json:"ph"`
	TemperatureC *float64 `json:"temperature_c"`
	HumidityPct  *float64 `json:"humidity_pct"`
	RainfallMM   *float64 `json:"rainfall_mm"`

	FieldID   *uint  `json:"field_id"`
	Mode      string `json:"mode"`
	Note      string `json:"note"`
	Narrative bool   `json:"narrative"`
}

func (r analyzeReq) sample() (advisory.SoilSample, error) {
	required := []struct {
		name string
		v    *float64
	}{
		{"nitrogen", r.Nitrogen}, {"phosphorus", r.Phosphorus}, {"potassium", r.Potassium}, {"ph", r.PH},
		{"temperature_c", r.TemperatureC}, {"humidity_pct", r.HumidityPct}, {"rainfall_mm", r.RainfallMM},
	}
	for _, f := range required {
		if f.v == nil {
			return advisory.SoilSample{}, fmt.Errorf("missing %s", f.name)
		}
	}
	return advisory.SoilSample{
		Nitrogen: *r.Nitrogen, Phosphorus: *r.Phosphorus, Potassium: *r.Potassium, PH: *r.PH,
		TemperatureC: *r.TemperatureC, HumidityPct: *r.HumidityPct, RainfallMM: *r.RainfallMM,
	}, nil
}

func (h *SoilCtrl) Analyze(c echo.Context) error {
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := req.sample()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	a, err := h.svc.Analyze(c.Request().Context(), middleware.UserID(c), service.AnalyzeInput{
		Sample: s, FieldID: req.FieldID, Mode: req.Mode, Note: req.Note, Narrative: req.Narrative,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *SoilCtrl) List(c echo.Context) error {
	var fieldID *uint
	if v := c.QueryParam("field_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field_id"})
		}
		fid := uint(id)
		fieldID = &fid
	}
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c), fieldID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SoilCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad analysis id"})
	}
	a, err := h.svc.Get(c.Request().Context(), uint(id), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Report downloads an analysis as ?format=json|csv|xlsx|html|pdf.
func (h *SoilCtrl) Report(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad analysis id"})
	}
	format, err := report.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return fail(c, err)
	}
	doc, err := h.svc.Report(c.Request().Context(), uint(id), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, doc, format); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", report.Filename(doc, format)))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrAnalysisNotFound), errors.Is(err, fieldsvc.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidMode), errors.Is(err, report.ErrUnsupportedFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
