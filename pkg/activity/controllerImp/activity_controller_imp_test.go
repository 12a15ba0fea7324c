package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agrivision/entities"
	"agrivision/pkg/middleware"
)

type MockService struct{ mock.Mock }

func (m *MockService) Record(ctx context.Context, uid, kind, description string) (*entities.Activity, error) {
	args := m.Called(ctx, uid, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *MockService) List(ctx context.Context, uid string) ([]entities.Activity, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]entities.Activity), args.Error(1)
}

func listRequest(t *testing.T, svc *MockService) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(middleware.Identify())
	e.GET("/activities", New(svc).List)
	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set(middleware.UserHeader, "U7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestActivityCtrl_List(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, "U7").Return([]entities.Activity{
		{ID: "b", Type: entities.ActivityQuickAnalysis, Description: "Fertility: Good"},
		{ID: "a", Type: entities.ActivityFieldSaved, Description: "North plot"},
	}, nil)

	rec := listRequest(t, svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []entities.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	svc.AssertExpectations(t)
}

func TestActivityCtrl_ListError(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, "U7").Return([]entities.Activity(nil), errors.New("db closed"))

	rec := listRequest(t, svc)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db closed")
}
