package models

import "encoding/json"

// ImportItem adalah satu record kiriman caller pada bulk import. Field alias
// (nama/name, tanggal_kunjungan/visit_date) diselesaikan sekali di boundary
// JSON; setelah unmarshal seluruh kode hilir hanya melihat field kanonik.
type ImportItem struct {
	Nama             string `json:"nama"`
	TanggalKunjungan string `json:"tanggal_kunjungan"`
	TanggalLahir     string `json:"tanggal_lahir,omitempty"`
	Diagnosis        string `json:"diagnosis,omitempty"`
	Tindakan         string `json:"tindakan,omitempty"`
	Dokter           string `json:"dokter,omitempty"`
}

func (it *ImportItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nama             string `json:"nama"`
		Name             string `json:"name"`
		TanggalKunjungan string `json:"tanggal_kunjungan"`
		VisitDate        string `json:"visit_date"`
		TanggalLahir     string `json:"tanggal_lahir"`
		Diagnosis        string `json:"diagnosis"`
		Tindakan         string `json:"tindakan"`
		Dokter           string `json:"dokter"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.Nama = raw.Nama
	if it.Nama == "" {
		it.Nama = raw.Name
	}
	it.TanggalKunjungan = raw.TanggalKunjungan
	if it.TanggalKunjungan == "" {
		it.TanggalKunjungan = raw.VisitDate
	}
	it.TanggalLahir = raw.TanggalLahir
	it.Diagnosis = raw.Diagnosis
	it.Tindakan = raw.Tindakan
	it.Dokter = raw.Dokter
	return nil
}

// ImportError mencatat satu item yang gagal validasi beserta indeksnya
// (0-based) dan alasan yang bisa dibaca manusia. Untuk item yang tidak bisa
// di-decode sama sekali, Raw menggemakan payload aslinya supaya caller tetap
// tahu elemen mana yang ditolak.
type ImportError struct {
	Index  int             `json:"index"`
	Item   ImportItem      `json:"item"`
	Raw    json.RawMessage `json:"raw,omitempty"`
	Reason string          `json:"error"`
}

// ImportReport merangkum hasil satu batch import: jumlah record yang dibuat
// dan daftar error per indeks, terurut.
type ImportReport struct {
	BatchID string        `json:"batch_id"`
	Created int           `json:"created"`
	Errors  []ImportError `json:"errors"`
}

// Failed mengembalikan jumlah item yang gagal.
func (r ImportReport) Failed() int { return len(r.Errors) }

// FullSuccess bernilai true bila ada record dibuat dan tidak ada error.
func (r ImportReport) FullSuccess() bool { return r.Created > 0 && len(r.Errors) == 0 }
