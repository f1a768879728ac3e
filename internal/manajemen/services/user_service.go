package services

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	"github.com/klinikita/pasien-admin/pkg/utils"
)

// ErrInvalidCredentials dikembalikan saat username tidak ada atau password
// salah; pemanggil tidak perlu tahu yang mana.
var ErrInvalidCredentials = errors.New("username atau password salah")

type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

// FindByUsername memuat satu user; (nil, nil) bila tidak ada.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(
		"SELECT id, username, password_hash, role, created_at FROM Users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &u, nil
}

// Authenticate memverifikasi pasangan username/password untuk login.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ListDokter mengembalikan seluruh akun role dokter, terbaru dulu.
func (s *UserService) ListDokter() ([]models.User, error) {
	rows, err := s.DB.Query(
		"SELECT id, username, password_hash, role, created_at FROM Users WHERE role = ? ORDER BY created_at DESC",
		models.RoleDokter,
	)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, apperr.Storage(err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DoctorUsernames mengembalikan username semua dokter, urut abjad.
// Dipakai untuk dropdown pilihan dokter pada form pasien.
func (s *UserService) DoctorUsernames() ([]string, error) {
	rows, err := s.DB.Query(
		"SELECT username FROM Users WHERE role = ? ORDER BY username ASC",
		models.RoleDokter,
	)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperr.Storage(err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateDokter membuat akun baru dengan role dokter.
func (s *UserService) CreateDokter(username, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(
		"INSERT INTO Users (username, password_hash, role) VALUES (?, ?, ?)",
		username, hash, models.RoleDokter,
	)
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Seed membuat akun demo admin/dokter bila belum ada. Dipanggil saat startup.
func (s *UserService) Seed() error {
	seeds := []struct {
		username, password, role string
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"dokter", "dokter123", models.RoleDokter},
	}
	for _, seed := range seeds {
		existing, err := s.FindByUsername(seed.username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		hash, err := utils.HashPassword(seed.password)
		if err != nil {
			return err
		}
		if _, err := s.DB.Exec(
			"INSERT INTO Users (username, password_hash, role) VALUES (?, ?, ?)",
			seed.username, hash, seed.role,
		); err != nil {
			return apperr.Storage(err)
		}
		log.Info().Str("username", seed.username).Str("role", seed.role).Msg("akun seed dibuat")
	}
	return nil
}
