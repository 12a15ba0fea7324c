package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrivision/pkg/middleware"
)

func newServer() *echo.Echo {
	e := echo.New()
	h := NewAuthController()
	e.GET("/devlogin", h.DevLogin)
	e.GET("/whoami", h.WhoAmI, middleware.Identify())
	return e
}

func TestDevLogin_SetsCookie(t *testing.T) {
	e := newServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devlogin?uid=U42", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"U42"}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.UserCookie, cookies[0].Name)
	assert.Equal(t, "U42", cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"uid":"U42"}`, rec.Body.String())
}

func TestDevLogin_DefaultUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devlogin", nil))
	assert.JSONEq(t, `{"uid":"`+middleware.DefaultUser+`"}`, rec.Body.String())
}

func TestWhoAmI_Header(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.UserHeader, "U7")
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)
	assert.JSONEq(t, `{"uid":"U7"}`, rec.Body.String())
}
