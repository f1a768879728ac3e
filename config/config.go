package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// devJWTSecret hanya dipakai saat profil development; di profil lain
// JWT_SECRET wajib di-set dan startup gagal jika kosong.
const devJWTSecret = "CHANGE_ME_SUPER_SECRET"

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
}

var (
	cfg  *Config
	once sync.Once
)

// IsDevelopment menentukan apakah aplikasi berjalan sebagai development.
// APP_ENV kosong dianggap development supaya setup lokal tetap mudah.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "" || env == "development" || env == "dev"
}

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:     os.Getenv("APP_ENV"),
			Port:       os.Getenv("PORT"),
			DBUser:     os.Getenv("DB_USER"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBHost:     os.Getenv("DB_HOST"),
			DBPort:     os.Getenv("DB_PORT"),
			DBName:     os.Getenv("DB_NAME"),
			JWTSecret:  os.Getenv("JWT_SECRET"),
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if cfg.JWTSecret == "" {
			if !cfg.IsDevelopment() {
				log.Fatalf("JWT_SECRET wajib di-set pada APP_ENV=%s", cfg.AppEnv)
			}
			cfg.JWTSecret = devJWTSecret
		}
	})
	return cfg
}
