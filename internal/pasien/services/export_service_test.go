package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/klinikita/pasien-admin/internal/pasien/models"
)

func strPtr(s string) *string { return &s }

func TestWriteXLSXHeaderAndRows(t *testing.T) {
	lahir := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	records := []models.Pasien{
		{
			ID:               1,
			Nama:             "Budi Santoso",
			TanggalLahir:     &lahir,
			TanggalKunjungan: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Diagnosis:        strPtr("ISPA"),
			Tindakan:         strPtr("Nebulisasi"),
			Dokter:           strPtr("dokter"),
		},
		{
			ID:               2,
			Nama:             "Ani",
			TanggalKunjungan: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	content, err := WriteXLSX(records)
	assert.NoError(t, err)
	assert.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	assert.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ExportSheetName, f.GetSheetName(0))

	rows, err := f.GetRows(ExportSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nama", "Tanggal Lahir", "Tanggal Kunjungan", "Diagnosis", "Tindakan", "Dokter"}, rows[0])
	assert.Equal(t, "Budi Santoso", rows[1][1])
	assert.Equal(t, "1990-05-20", rows[1][2])
	assert.Equal(t, "2024-01-11", rows[2][3])
}

func TestWriteXLSXEmpty(t *testing.T) {
	content, err := WriteXLSX(nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
