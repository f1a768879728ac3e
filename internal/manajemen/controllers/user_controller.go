package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	"github.com/klinikita/pasien-admin/internal/manajemen/services"
	"github.com/klinikita/pasien-admin/pkg/utils"
)

// UserProvider adalah kontrak service akun yang dibutuhkan controller ini;
// dipisah supaya alur login/akun bisa diuji tanpa database.
type UserProvider interface {
	Authenticate(username, password string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	ListDokter() ([]models.User, error)
	CreateDokter(username, password string) error
}

// Compile-time check: UserService memenuhi kontrak.
var _ UserProvider = (*services.UserService)(nil)

type UserController struct {
	Service UserProvider
}

func NewUserController(svc UserProvider) *UserController {
	return &UserController{Service: svc}
}

// Root menangani GET /: sudah login -> dashboard, belum -> login.
func (uc *UserController) Root(c echo.Context) error {
	cookie, err := c.Cookie(middlewares.AccessTokenCookie)
	if err == nil && cookie.Value != "" {
		if claims, err := utils.ValidateToken(cookie.Value); err == nil {
			if user, err := uc.Service.FindByUsername(claims.Username); err == nil && user != nil {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
		}
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm menangani GET /login.
func (uc *UserController) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{"Error": nil})
}

// Login menangani POST /login: verifikasi kredensial, set cookie sesi,
// redirect ke dashboard. Kredensial salah me-render ulang form tanpa cookie.
func (uc *UserController) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := uc.Service.Authenticate(username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Render(http.StatusBadRequest, "login.html", map[string]interface{}{
			"Error": "Username atau password salah.",
		})
	}
	if err != nil {
		return c.Render(http.StatusInternalServerError, "login.html", map[string]interface{}{
			"Error": "Gagal mengakses database. Coba lagi.",
		})
	}

	token, err := utils.GenerateToken(user.Username, user.Role, utils.DefaultTokenTTL)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middlewares.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout menghapus cookie sesi dan kembali ke halaman login.
func (uc *UserController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middlewares.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}

// ListDokter menangani GET /users (khusus admin).
func (uc *UserController) ListDokter(c echo.Context) error {
	doctors, err := uc.Service.ListDokter()
	if err != nil {
		// daftar kosong masih bisa dirender
		doctors = nil
	}
	return c.Render(http.StatusOK, "users_list.html", map[string]interface{}{
		"User":    middlewares.CurrentUser(c),
		"Doctors": doctors,
		"Created": c.QueryParam("created") == "1",
	})
}

// NewDokterForm menangani GET /users/new (khusus admin).
func (uc *UserController) NewDokterForm(c echo.Context) error {
	return uc.renderUserForm(c, map[string]string{"username": ""}, map[string]string{}, http.StatusOK)
}

// CreateDokter menangani POST /users/new (khusus admin). Validasi gagal
// me-render ulang form dengan input sebelumnya dan pesan per field.
func (uc *UserController) CreateDokter(c echo.Context) error {
	form := map[string]string{
		"username":  strings.TrimSpace(c.FormValue("username")),
		"password":  c.FormValue("password"),
		"password2": c.FormValue("password2"),
	}
	errs := map[string]string{}

	if form["username"] == "" {
		errs["username"] = "Username wajib diisi."
	} else if len(form["username"]) < 3 {
		errs["username"] = "Minimal 3 karakter."
	}
	if form["password"] == "" {
		errs["password"] = "Password wajib diisi."
	} else if len(form["password"]) < 6 {
		errs["password"] = "Minimal 6 karakter."
	}
	if form["password2"] != form["password"] {
		errs["password2"] = "Konfirmasi password tidak sama."
	}

	if len(errs) == 0 {
		existing, err := uc.Service.FindByUsername(form["username"])
		if err != nil {
			errs["__all__"] = "Gagal membuat akun. Coba lagi."
			return uc.renderUserForm(c, form, errs, http.StatusInternalServerError)
		}
		if existing != nil {
			errs["username"] = "Username sudah dipakai."
		}
	}

	if len(errs) > 0 {
		return uc.renderUserForm(c, form, errs, http.StatusBadRequest)
	}

	if err := uc.Service.CreateDokter(form["username"], form["password"]); err != nil {
		errs["__all__"] = "Gagal membuat akun. Coba lagi."
		return uc.renderUserForm(c, form, errs, http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/users?created=1")
}

func (uc *UserController) renderUserForm(c echo.Context, form, errs map[string]string, status int) error {
	return c.Render(status, "user_form.html", map[string]interface{}{
		"User":   middlewares.CurrentUser(c),
		"Form":   form,
		"Errors": errs,
	})
}
