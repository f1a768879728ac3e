package services

import (
	"database/sql"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/pasien/filters"
	"github.com/klinikita/pasien-admin/internal/pasien/models"
)

const pasienColumns = "id, nama, tanggal_lahir, tanggal_kunjungan, diagnosis, tindakan, dokter"

type PasienService struct {
	DB *sql.DB
}

func NewPasienService(db *sql.DB) *PasienService {
	return &PasienService{DB: db}
}

func scanPasien(rows *sql.Rows) (models.Pasien, error) {
	var (
		p         models.Pasien
		lahir     sql.NullTime
		diagnosis sql.NullString
		tindakan  sql.NullString
		dokter    sql.NullString
	)
	err := rows.Scan(&p.ID, &p.Nama, &lahir, &p.TanggalKunjungan, &diagnosis, &tindakan, &dokter)
	if err != nil {
		return p, err
	}
	if lahir.Valid {
		t := lahir.Time
		p.TanggalLahir = &t
	}
	if diagnosis.Valid {
		p.Diagnosis = &diagnosis.String
	}
	if tindakan.Valid {
		p.Tindakan = &tindakan.String
	}
	if dokter.Valid {
		p.Dokter = &dokter.String
	}
	return p, nil
}

// List mengembalikan record yang lolos filter, kunjungan terbaru dulu.
// FilterSpec yang sama juga dipakai query agregasi dashboard dan export.
func (s *PasienService) List(spec filters.FilterSpec) ([]models.Pasien, error) {
	clause, args := spec.Where()
	rows, err := s.DB.Query(
		"SELECT "+pasienColumns+" FROM Pasien WHERE "+clause+" ORDER BY tanggal_kunjungan DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var result []models.Pasien
	for rows.Next() {
		p, err := scanPasien(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return result, nil
}

// CountAll menghitung seluruh record tanpa filter (angka total di dashboard).
func (s *PasienService) CountAll() (int, error) {
	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM Pasien").Scan(&total); err != nil {
		return 0, apperr.Storage(err)
	}
	return total, nil
}

// Get memuat satu record berdasarkan id.
func (s *PasienService) Get(id int) (*models.Pasien, error) {
	rows, err := s.DB.Query("SELECT "+pasienColumns+" FROM Pasien WHERE id = ?", id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, apperr.Storage(err)
		}
		return nil, apperr.ErrNotFound
	}
	p, err := scanPasien(rows)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &p, nil
}

// Create menyimpan record baru dan mengisi ID hasil insert.
func (s *PasienService) Create(p *models.Pasien) error {
	res, err := s.DB.Exec(
		"INSERT INTO Pasien (nama, tanggal_lahir, tanggal_kunjungan, diagnosis, tindakan, dokter) VALUES (?, ?, ?, ?, ?, ?)",
		p.Nama, p.TanggalLahir, p.TanggalKunjungan, p.Diagnosis, p.Tindakan, p.Dokter,
	)
	if err != nil {
		return apperr.Storage(err)
	}
	if id, err := res.LastInsertId(); err == nil {
		p.ID = int(id)
	}
	return nil
}

// Update menimpa seluruh field record; last-writer-wins tanpa penguncian.
// Keberadaan record diverifikasi pemanggil lewat Get.
func (s *PasienService) Update(p *models.Pasien) error {
	_, err := s.DB.Exec(
		"UPDATE Pasien SET nama = ?, tanggal_lahir = ?, tanggal_kunjungan = ?, diagnosis = ?, tindakan = ?, dokter = ? WHERE id = ?",
		p.Nama, p.TanggalLahir, p.TanggalKunjungan, p.Diagnosis, p.Tindakan, p.Dokter, p.ID,
	)
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Delete menghapus record secara permanen.
func (s *PasienService) Delete(id int) error {
	res, err := s.DB.Exec("DELETE FROM Pasien WHERE id = ?", id)
	if err != nil {
		return apperr.Storage(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
