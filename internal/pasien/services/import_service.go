package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/pasien/models"
)

// MaxImportItems adalah batas keras satu batch import.
const MaxImportItems = 500

// flexibleDateLayouts adalah format tanggal yang diterima jalur import.
// Sengaja lebih longgar dari parser filter: data eksternal datang dalam
// berbagai format, sedangkan form input selalu YYYY-MM-DD.
var flexibleDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"2 January 2006",
	"Jan 2, 2006",
}

// parseFlexibleDate mencoba seluruh layout yang dikenal. Berbeda dengan
// filters.ParseDate, kegagalan di sini adalah error (dilaporkan per item).
func parseFlexibleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format tanggal tidak valid: %s", raw)
}

type ImportService struct {
	DB *sql.DB
}

func NewImportService(db *sql.DB) *ImportService {
	return &ImportService{DB: db}
}

// buildRecord memvalidasi satu item dan mengubahnya menjadi record siap
// simpan. Murni, tanpa akses store.
func buildRecord(item models.ImportItem) (models.Pasien, error) {
	var p models.Pasien

	p.Nama = strings.TrimSpace(item.Nama)
	if p.Nama == "" || strings.TrimSpace(item.TanggalKunjungan) == "" {
		return p, fmt.Errorf("field minimal 'nama' dan 'tanggal_kunjungan/visit_date' wajib")
	}

	kunjungan, err := parseFlexibleDate(item.TanggalKunjungan)
	if err != nil {
		return p, err
	}
	p.TanggalKunjungan = kunjungan

	if strings.TrimSpace(item.TanggalLahir) != "" {
		lahir, err := parseFlexibleDate(item.TanggalLahir)
		if err != nil {
			return p, err
		}
		p.TanggalLahir = &lahir
	}

	if v := strings.TrimSpace(item.Diagnosis); v != "" {
		p.Diagnosis = &v
	}
	if v := strings.TrimSpace(item.Tindakan); v != "" {
		p.Tindakan = &v
	}
	if v := strings.TrimSpace(item.Dokter); v != "" {
		p.Dokter = &v
	}
	return p, nil
}

// stageItems men-decode dan memvalidasi seluruh batch secara independen per
// indeks, memisahkan record siap simpan dari daftar error. Item yang bukan
// objek JSON valid gagal sendiri tanpa menghentikan sisanya. Murni, tanpa
// store.
func stageItems(raws []json.RawMessage) ([]models.Pasien, []models.ImportError) {
	staged := make([]models.Pasien, 0, len(raws))
	importErrors := []models.ImportError{}

	for idx, raw := range raws {
		var item models.ImportItem
		if err := json.Unmarshal(raw, &item); err != nil {
			importErrors = append(importErrors, models.ImportError{
				Index:  idx,
				Raw:    raw,
				Reason: "item harus berupa objek JSON dengan field string",
			})
			continue
		}
		record, err := buildRecord(item)
		if err != nil {
			importErrors = append(importErrors, models.ImportError{
				Index:  idx,
				Item:   item,
				Reason: err.Error(),
			})
			continue
		}
		staged = append(staged, record)
	}
	return staged, importErrors
}

// Import memproses satu batch. Validasi per item independen (item rusak
// tidak menghentikan item berikutnya); item valid di-stage dalam satu
// transaksi dan di-commit sekali di akhir. Kegagalan store saat commit
// membatalkan seluruh batch dan dilaporkan sebagai satu error fatal.
func (s *ImportService) Import(raws []json.RawMessage) (models.ImportReport, error) {
	report := models.ImportReport{
		BatchID: uuid.NewString(),
		Errors:  []models.ImportError{},
	}

	if len(raws) > MaxImportItems {
		return report, fmt.Errorf("%w: maksimal %d item per import", apperr.ErrPayloadTooLarge, MaxImportItems)
	}

	staged, importErrors := stageItems(raws)
	report.Errors = importErrors

	tx, err := s.DB.Begin()
	if err != nil {
		return report, apperr.Storage(err)
	}
	// Rollback aman dipanggil setelah Commit; menjamin pelepasan di semua jalur.
	defer tx.Rollback()

	for _, record := range staged {
		if _, err := tx.Exec(
			"INSERT INTO Pasien (nama, tanggal_lahir, tanggal_kunjungan, diagnosis, tindakan, dokter) VALUES (?, ?, ?, ?, ?, ?)",
			record.Nama, record.TanggalLahir, record.TanggalKunjungan, record.Diagnosis, record.Tindakan, record.Dokter,
		); err != nil {
			return report, apperr.Storage(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return report, apperr.Storage(err)
	}

	report.Created = len(staged)
	log.Info().
		Str("batch_id", report.BatchID).
		Int("created", report.Created).
		Int("failed", report.Failed()).
		Msg("import pasien selesai")
	return report, nil
}
