package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	"github.com/klinikita/pasien-admin/pkg/utils"
)

// Compile-time check kontrak UserFinder.
var _ UserFinder = (*mockUserFinder)(nil)

type mockUserFinder struct {
	FindByUsernameFunc func(username string) (*models.User, error)
}

func (m *mockUserFinder) FindByUsername(username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(username)
	}
	return nil, errors.New("FindByUsernameFunc not implemented in mock")
}

func newContext(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestAuthenticateNoCookie(t *testing.T) {
	c, _ := newContext(t, "")
	err := Authenticate(&mockUserFinder{})(okHandler)(c)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	c, _ := newContext(t, "token-palsu")
	err := Authenticate(&mockUserFinder{})(okHandler)(c)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	token, err := utils.GenerateToken("hantu", models.RoleDokter, utils.DefaultTokenTTL)
	assert.NoError(t, err)

	finder := &mockUserFinder{
		FindByUsernameFunc: func(string) (*models.User, error) { return nil, nil },
	}
	c, _ := newContext(t, token)
	err = Authenticate(finder)(okHandler)(c)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthenticateSetsCurrentUser(t *testing.T) {
	token, err := utils.GenerateToken("dokter", models.RoleDokter, utils.DefaultTokenTTL)
	assert.NoError(t, err)

	finder := &mockUserFinder{
		FindByUsernameFunc: func(username string) (*models.User, error) {
			assert.Equal(t, "dokter", username)
			return &models.User{ID: 2, Username: "dokter", Role: models.RoleDokter}, nil
		},
	}
	c, rec := newContext(t, token)
	err = Authenticate(finder)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	user := CurrentUser(c)
	assert.NotNil(t, user)
	assert.Equal(t, "dokter", user.Username)
}

func TestRequireRoleForbidden(t *testing.T) {
	c, _ := newContext(t, "")
	c.Set(ContextKeyUser, &models.User{Username: "dokter", Role: models.RoleDokter})

	err := RequireRole(models.RoleAdmin)(okHandler)(c)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRequireRoleAllowed(t *testing.T) {
	c, rec := newContext(t, "")
	c.Set(ContextKeyUser, &models.User{Username: "admin", Role: models.RoleAdmin})

	err := RequireRole(models.RoleAdmin, models.RoleDokter)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	c, _ := newContext(t, "")
	err := RequireRole(models.RoleDokter)(okHandler)(c)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
