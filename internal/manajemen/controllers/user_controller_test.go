package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	"github.com/klinikita/pasien-admin/internal/common/renderer"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	"github.com/klinikita/pasien-admin/internal/manajemen/services"
)

var _ UserProvider = (*mockUserProvider)(nil)

type mockUserProvider struct {
	AuthenticateFunc   func(username, password string) (*models.User, error)
	FindByUsernameFunc func(username string) (*models.User, error)
	ListDokterFunc     func() ([]models.User, error)
	CreateDokterFunc   func(username, password string) error
}

func (m *mockUserProvider) Authenticate(username, password string) (*models.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(username, password)
	}
	return nil, errors.New("AuthenticateFunc not implemented in mock")
}

func (m *mockUserProvider) FindByUsername(username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(username)
	}
	return nil, nil
}

func (m *mockUserProvider) ListDokter() ([]models.User, error) {
	if m.ListDokterFunc != nil {
		return m.ListDokterFunc()
	}
	return nil, nil
}

func (m *mockUserProvider) CreateDokter(username, password string) error {
	if m.CreateDokterFunc != nil {
		return m.CreateDokterFunc(username, password)
	}
	return nil
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := renderer.New()
	assert.NoError(t, err)
	e.Renderer = r
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	e := newEcho(t)
	uc := NewUserController(&mockUserProvider{
		AuthenticateFunc: func(username, password string) (*models.User, error) {
			assert.Equal(t, "dokter", username)
			assert.Equal(t, "dokter123", password)
			return &models.User{ID: 2, Username: "dokter", Role: models.RoleDokter}, nil
		},
	})

	c, rec := postForm(e, "/login", url.Values{"username": {"dokter"}, "password": {"dokter123"}})
	assert.NoError(t, uc.Login(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, middlewares.AccessTokenCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestLoginWrongPasswordRerendersWithoutCookie(t *testing.T) {
	e := newEcho(t)
	uc := NewUserController(&mockUserProvider{
		AuthenticateFunc: func(username, password string) (*models.User, error) {
			return nil, services.ErrInvalidCredentials
		},
	})

	c, rec := postForm(e, "/login", url.Values{"username": {"dokter"}, "password": {"salah"}})
	assert.NoError(t, uc.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Contains(t, rec.Body.String(), "Username atau password salah.")
}

func TestLogoutClearsCookie(t *testing.T) {
	e := newEcho(t)
	uc := NewUserController(&mockUserProvider{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, uc.Logout(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestCreateDokterValidation(t *testing.T) {
	e := newEcho(t)
	uc := NewUserController(&mockUserProvider{})

	c, rec := postForm(e, "/users/new", url.Values{
		"username":  {"ab"},
		"password":  {"12345"},
		"password2": {"beda"},
	})
	c.Set(middlewares.ContextKeyUser, &models.User{Username: "admin", Role: models.RoleAdmin})

	assert.NoError(t, uc.CreateDokter(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Minimal 3 karakter.")
	assert.Contains(t, body, "Minimal 6 karakter.")
	assert.Contains(t, body, "Konfirmasi password tidak sama.")
}

func TestCreateDokterDuplicateUsername(t *testing.T) {
	e := newEcho(t)
	uc := NewUserController(&mockUserProvider{
		FindByUsernameFunc: func(username string) (*models.User, error) {
			return &models.User{Username: username, Role: models.RoleDokter}, nil
		},
	})

	c, rec := postForm(e, "/users/new", url.Values{
		"username":  {"dokter"},
		"password":  {"rahasia1"},
		"password2": {"rahasia1"},
	})
	c.Set(middlewares.ContextKeyUser, &models.User{Username: "admin", Role: models.RoleAdmin})

	assert.NoError(t, uc.CreateDokter(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username sudah dipakai.")
}

func TestCreateDokterSuccess(t *testing.T) {
	e := newEcho(t)
	created := false
	uc := NewUserController(&mockUserProvider{
		FindByUsernameFunc: func(string) (*models.User, error) { return nil, nil },
		CreateDokterFunc: func(username, password string) error {
			created = true
			assert.Equal(t, "drbaru", username)
			return nil
		},
	})

	c, rec := postForm(e, "/users/new", url.Values{
		"username":  {"drbaru"},
		"password":  {"rahasia1"},
		"password2": {"rahasia1"},
	})
	c.Set(middlewares.ContextKeyUser, &models.User{Username: "admin", Role: models.RoleAdmin})

	assert.NoError(t, uc.CreateDokter(c))
	assert.True(t, created)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users?created=1", rec.Header().Get(echo.HeaderLocation))
}
