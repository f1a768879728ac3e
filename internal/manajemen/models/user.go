package models

import "time"

// Role yang dikenal aplikasi.
const (
	RoleAdmin  = "admin"
	RoleDokter = "dokter"
)

// User mewakili akun staf dari tabel Users. Username unik dan tidak pernah
// berubah setelah dibuat; role juga tetap.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
