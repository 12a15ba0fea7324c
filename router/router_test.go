package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrivision/database"
	"agrivision/entities"
	actCtrlImp "agrivision/pkg/activity/controllerImp"
	actRepoImp "agrivision/pkg/activity/repositoryImp"
	actSvcImp "agrivision/pkg/activity/serviceImp"
	"agrivision/pkg/advisory"
	"agrivision/pkg/ai"
	authCtrlImp "agrivision/pkg/auth/controllerImp"
	fieldCtrlImp "agrivision/pkg/field/controllerImp"
	fieldRepoImp "agrivision/pkg/field/repositoryImp"
	fieldSvcImp "agrivision/pkg/field/serviceImp"
	healthCtrlImp "agrivision/pkg/health/controllerImp"
	"agrivision/pkg/middleware"
	soilCtrlImp "agrivision/pkg/soil/controllerImp"
	soilRepoImp "agrivision/pkg/soil/repositoryImp"
	soilSvcImp "agrivision/pkg/soil/serviceImp"
)

func newApp(t *testing.T, requireUser bool) *echo.Echo {
	t.Helper()
	log := zap.NewNop()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "agv.db"), log)
	require.NoError(t, err)

	act := actSvcImp.NewActivityService(actRepoImp.New(db), 5, log)
	fRepo := fieldRepoImp.New(db)
	fSvc := fieldSvcImp.NewFieldService(fRepo, act, log)
	sSvc := soilSvcImp.NewSoilService(advisory.Default(), ai.NewMock(), soilRepoImp.New(db), fRepo, act, log)

	return New(echo.New(), Options{Log: log, RequireUser: requireUser},
		fieldCtrlImp.New(fSvc),
		soilCtrlImp.New(sSvc),
		actCtrlImp.New(act),
		authCtrlImp.NewAuthController(),
		healthCtrlImp.NewHealthCtrl(db, false),
	)
}

func call(e *echo.Echo, method, path, uid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.Header.Set(middleware.UserHeader, uid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEndToEnd(t *testing.T) {
	e := newApp(t, false)

	rec := call(e, http.MethodPost, "/fields", "U1",
		`{"name":"North","crop":"Rice","boundary":[[13.75,100.5],[13.75,100.51],[13.76,100.51]]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var f struct {
		FieldID      uint    `json:"field_id"`
		AreaHectares float64 `json:"area_hectares"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Greater(t, f.AreaHectares, 0.0)

	rec = call(e, http.MethodGet, "/fields/summary", "U1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field_count":1`)

	body := `{"nitrogen":50,"phosphorus":50,"potassium":50,"ph":6.5,"temperature_c":25,"humidity_pct":70,"rainfall_mm":100,"field_id":` +
		jsonUint(f.FieldID) + `}`
	rec = call(e, http.MethodPost, "/soil/analyze", "U1", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a struct {
		AnalysisID uint `json:"analysis_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))

	rec = call(e, http.MethodGet, "/soil/analyses/"+jsonUint(a.AnalysisID)+"/report?format=csv", "U1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "North")

	assert.Equal(t, http.StatusNotFound, call(e, http.MethodGet, "/soil/analyses/"+jsonUint(a.AnalysisID), "U2", "").Code)

	rec = call(e, http.MethodGet, "/activities", "U1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var acts []struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acts))
	require.Len(t, acts, 2)
	assert.Equal(t, entities.ActivityQuickAnalysis, acts[0].Type)

	rec = call(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDevelopmentUserFallback(t *testing.T) {
	e := newApp(t, false)
	rec := call(e, http.MethodGet, "/whoami", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"`+middleware.DefaultUser+`"}`, rec.Body.String())
}

func TestRequireUser(t *testing.T) {
	e := newApp(t, true)
	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodGet, "/fields", "", "").Code)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/fields", "U1", "").Code)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/health", "", "").Code, "health stays public")
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
