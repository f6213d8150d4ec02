package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-archive/errors"
	"github.com/johnquangdev/meeting-archive/pkg/jwt"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.POST("/reload", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ContextKeySubject).(string))
	}, mw)

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	setup(req)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEchoAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Minute, "meeting-archive")
	admin, err := m.GenerateAccessToken("ops", jwt.RoleAdmin)
	require.NoError(t, err)
	reader, err := m.GenerateAccessToken("viewer", jwt.RoleReader)
	require.NoError(t, err)

	mw := EchoAuth(m, jwt.RoleAdmin)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"missing token", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"wrong role", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+reader) }, http.StatusForbidden},
		{"admin header", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+admin) }, http.StatusOK},
		{"admin cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: admin}) }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, mw, tt.setup)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "ops", rec.Body.String())
			}
		})
	}
}

func TestEchoAuth_CarriesAppError(t *testing.T) {
	m := jwt.NewManager("secret", time.Minute, "meeting-archive")
	expired, err := m.GenerateAccessTokenWithExpiry("ops", jwt.RoleAdmin, time.Millisecond)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/reload", nil), httptest.NewRecorder())
	c.Request().Header.Set("Authorization", "Bearer "+expired)

	err = EchoAuth(m)(func(echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_AUTH_TOKEN_EXPIRED, appErr.Code)
}

func TestEchoAuth_AnyRole(t *testing.T) {
	m := jwt.NewManager("secret", time.Minute, "meeting-archive")
	reader, err := m.GenerateAccessToken("viewer", jwt.RoleReader)
	require.NoError(t, err)

	rec := serve(t, EchoAuth(m), func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+reader) })
	assert.Equal(t, http.StatusOK, rec.Code)
}
