package middlewares

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	"github.com/klinikita/pasien-admin/pkg/utils"
)

// AccessTokenCookie adalah nama cookie sesi yang di-set saat login.
const AccessTokenCookie = "access_token"

// Key context untuk user yang sudah terautentikasi.
const ContextKeyUser = "current_user"

// UserFinder menyelesaikan subject token menjadi User tersimpan.
// Dipisah sebagai kontrak kecil supaya middleware bisa diuji tanpa database.
type UserFinder interface {
	FindByUsername(username string) (*models.User, error)
}

// Authenticate mengekstrak token dari cookie, memvalidasinya, lalu memuat
// user dari store. Semua kegagalan (cookie absen, token rusak/kedaluwarsa,
// user sudah dihapus) berakhir sebagai ErrUnauthenticated; boundary HTTP yang
// memutuskan redirect ke /login atau JSON 401.
func Authenticate(finder UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return apperr.ErrUnauthenticated
			}

			claims, err := utils.ValidateToken(cookie.Value)
			if err != nil {
				return fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
			}

			user, err := finder.FindByUsername(claims.Username)
			if err != nil || user == nil {
				return apperr.ErrUnauthenticated
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RequireRole menolak request dengan ErrForbidden bila role user tidak ada
// dalam daftar yang diizinkan. Harus dipasang setelah Authenticate.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperr.ErrUnauthenticated
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return apperr.ErrForbidden
		}
	}
}

// CurrentUser mengambil user hasil Authenticate dari context request.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextKeyUser).(*models.User)
	return user
}
