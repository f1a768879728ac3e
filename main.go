package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/klinikita/pasien-admin/config"
	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	"github.com/klinikita/pasien-admin/internal/common/renderer"
	"github.com/klinikita/pasien-admin/internal/routes"
	"github.com/klinikita/pasien-admin/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	db := mariadb.Connect()
	if err := mariadb.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Gagal menyiapkan skema database")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	r, err := renderer.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Gagal memuat template")
	}
	e.Renderer = r
	e.HTTPErrorHandler = middlewares.HTTPErrorHandler(log.Logger)

	userService := routes.Init(e, db)
	if err := userService.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Gagal seed akun awal")
	}

	log.Info().Str("port", cfg.Port).Msg("Server berjalan")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server berhenti")
	}
}
