package models

import "time"

// Pasien mewakili satu kunjungan klinik dari tabel Pasien.
// Diagnosis/Tindakan/Dokter nullable di skema tetapi wajib diisi lewat form.
type Pasien struct {
	ID               int        `json:"id" db:"id"`
	Nama             string     `json:"nama" db:"nama"`
	TanggalLahir     *time.Time `json:"tanggal_lahir" db:"tanggal_lahir"`
	TanggalKunjungan time.Time  `json:"tanggal_kunjungan" db:"tanggal_kunjungan"`
	Diagnosis        *string    `json:"diagnosis" db:"diagnosis"`
	Tindakan         *string    `json:"tindakan" db:"tindakan"`
	Dokter           *string    `json:"dokter" db:"dokter"`
}
