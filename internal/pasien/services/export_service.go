package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klinikita/pasien-admin/internal/pasien/filters"
	"github.com/klinikita/pasien-admin/internal/pasien/models"
)

// ExportSheetName adalah nama sheet tetap pada file export.
const ExportSheetName = "Pasien"

var exportHeader = []interface{}{
	"ID", "Nama", "Tanggal Lahir", "Tanggal Kunjungan", "Diagnosis", "Tindakan", "Dokter",
}

type ExportService struct {
	Pasien *PasienService
}

func NewExportService(pasien *PasienService) *ExportService {
	return &ExportService{Pasien: pasien}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteXLSX menulis records ke workbook xlsx dengan urutan kolom tetap.
func WriteXLSX(records []models.Pasien) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), ExportSheetName)
	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, r := range records {
		lahir := ""
		if r.TanggalLahir != nil {
			lahir = r.TanggalLahir.Format(filters.FormDateLayout)
		}
		row := []interface{}{
			r.ID,
			r.Nama,
			lahir,
			r.TanggalKunjungan.Format(filters.FormDateLayout),
			derefOrEmpty(r.Diagnosis),
			derefOrEmpty(r.Tindakan),
			derefOrEmpty(r.Dokter),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export mengambil record sesuai filter yang sama dengan dashboard lalu
// menyerialisasikannya ke xlsx.
func (s *ExportService) Export(spec filters.FilterSpec) ([]byte, error) {
	records, err := s.Pasien.List(spec)
	if err != nil {
		return nil, err
	}
	return WriteXLSX(records)
}
