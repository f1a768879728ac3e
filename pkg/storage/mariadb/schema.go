package mariadb

import "database/sql"

// DDL idempoten; dijalankan setiap startup seperti halnya seed akun.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Pasien (
		id INT AUTO_INCREMENT PRIMARY KEY,
		nama VARCHAR(120) NOT NULL,
		tanggal_lahir DATE NULL,
		tanggal_kunjungan DATE NOT NULL,
		diagnosis TEXT NULL,
		tindakan TEXT NULL,
		dokter VARCHAR(120) NULL,
		INDEX idx_pasien_tanggal_kunjungan (tanggal_kunjungan)
	)`,
}

// Migrate memastikan seluruh tabel aplikasi ada.
func Migrate(db *sql.DB) error {
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
