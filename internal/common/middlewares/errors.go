package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
)

// wantsHTML menebak apakah client adalah browser dari header Accept.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(strings.ToLower(c.Request().Header.Get("Accept")), "text/html")
}

// HTTPErrorHandler memetakan taksonomi apperr ke respons HTTP:
//   - Unauthenticated: redirect ke /login untuk browser, JSON 401 untuk API;
//   - Forbidden/NotFound/PayloadTooLarge: status masing-masing;
//   - Storage dan error tak tertangani: 500 dengan pesan generik, detail
//     hanya di log server.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Terjadi kesalahan tak terduga di server."

		var httpErr *echo.HTTPError
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			if wantsHTML(c) {
				c.Redirect(http.StatusFound, "/login")
				return
			}
			status = http.StatusUnauthorized
			message = "Not authenticated"
		case errors.Is(err, apperr.ErrForbidden):
			status = http.StatusForbidden
			message = "Anda tidak memiliki hak akses."
		case errors.Is(err, apperr.ErrNotFound):
			status = http.StatusNotFound
			message = "Data tidak ditemukan."
		case errors.Is(err, apperr.ErrPayloadTooLarge):
			status = http.StatusRequestEntityTooLarge
			message = "Payload terlalu besar."
		case errors.Is(err, apperr.ErrStorage):
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("kegagalan penyimpanan")
			message = "Terjadi kesalahan pada penyimpanan data."
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
			if status == http.StatusUnauthorized && wantsHTML(c) {
				c.Redirect(http.StatusFound, "/login")
				return
			}
		default:
			// Catch-all: log detail, jangan bocorkan ke user.
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}

		if wantsHTML(c) {
			renderErr := c.Render(status, "error.html", map[string]interface{}{
				"StatusCode": status,
				"Message":    message,
			})
			if renderErr == nil {
				return
			}
			logger.Error().Err(renderErr).Msg("gagal render halaman error")
		}
		c.JSON(status, map[string]interface{}{"detail": message})
	}
}
