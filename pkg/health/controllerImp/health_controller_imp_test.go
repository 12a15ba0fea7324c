package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrivision/database"
)

func get(t *testing.T, h *HealthCtrl) (int, healthResp) {
	t.Helper()
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var out healthResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestHealth_OK(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "agv.db"), zap.NewNop())
	require.NoError(t, err)

	code, out := get(t, NewHealthCtrl(db, true))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.OK)
	assert.Equal(t, check{OK: true}, out.Checks["database"])
	assert.Equal(t, check{OK: true, Source: "custom"}, out.Checks["advisory"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "agv.db"), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	code, out := get(t, NewHealthCtrl(db, false))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, out.OK)
	assert.Contains(t, out.Checks["database"].Err, "ping")
	assert.Equal(t, "default", out.Checks["advisory"].Source)

	code, out = get(t, NewHealthCtrl(nil, false))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "no database", out.Checks["database"].Err)
}
