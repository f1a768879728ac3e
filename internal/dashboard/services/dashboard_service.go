package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/pasien/filters"
)

// TopN adalah jumlah kategori yang ditampilkan sebelum sisanya digabung.
const TopN = 8

// OtherLabel adalah label bucket gabungan kategori di luar top-N.
const OtherLabel = "Lainnya"

// DayCount adalah jumlah kunjungan pada satu tanggal.
type DayCount struct {
	Tanggal time.Time `json:"tanggal"`
	Count   int       `json:"count"`
}

// CategoryCount adalah satu pasangan label/jumlah pada bucket agregasi.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Kolom kategori yang boleh diagregasi; mencegah nama kolom liar masuk SQL.
var categoryFields = map[string]bool{
	"diagnosis": true,
	"tindakan":  true,
}

type DashboardService struct {
	DB *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// CountByDay menghitung kunjungan per tanggal, urut naik. Tanggal tanpa
// kunjungan tidak dimunculkan (tidak ada zero-fill).
func (s *DashboardService) CountByDay(spec filters.FilterSpec) ([]DayCount, error) {
	clause, args := spec.Where()
	rows, err := s.DB.Query(
		"SELECT tanggal_kunjungan, COUNT(id) FROM Pasien WHERE "+clause+
			" GROUP BY tanggal_kunjungan ORDER BY tanggal_kunjungan ASC",
		args...,
	)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var result []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Tanggal, &dc.Count); err != nil {
			return nil, apperr.Storage(err)
		}
		result = append(result, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return result, nil
}

// TopCategories mengelompokkan record per nilai field (diagnosis/tindakan),
// mengecualikan NULL dan string kosong. Urutan: count turun, lalu label naik
// supaya hasil seri tetap deterministik. Kategori di luar n teratas digabung
// menjadi satu bucket "Lainnya".
func (s *DashboardService) TopCategories(spec filters.FilterSpec, field string, n int) ([]CategoryCount, error) {
	if !categoryFields[field] {
		return nil, fmt.Errorf("field agregasi tidak dikenal: %s", field)
	}

	clause, args := spec.Where()
	query := fmt.Sprintf(
		"SELECT %s, COUNT(id) FROM Pasien WHERE %s AND %s IS NOT NULL AND %s != '' GROUP BY %s ORDER BY COUNT(id) DESC, %s ASC",
		field, clause, field, field, field, field,
	)
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var all []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Label, &cc.Count); err != nil {
			return nil, apperr.Storage(err)
		}
		all = append(all, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return collapseTop(all, n), nil
}

// collapseTop memotong daftar terurut menjadi n entri teratas plus satu
// bucket "Lainnya" berisi jumlah sisanya; bucket sisa hanya muncul bila
// jumlahnya positif.
func collapseTop(sorted []CategoryCount, n int) []CategoryCount {
	if n <= 0 || len(sorted) <= n {
		return sorted
	}
	top := make([]CategoryCount, n, n+1)
	copy(top, sorted[:n])

	rest := 0
	for _, cc := range sorted[n:] {
		rest += cc.Count
	}
	if rest > 0 {
		top = append(top, CategoryCount{Label: OtherLabel, Count: rest})
	}
	return top
}

// TopCategoriesOrEmpty menurunkan kegagalan agregasi menjadi hasil kosong
// supaya dashboard tetap ter-render walau satu chart gagal.
func (s *DashboardService) TopCategoriesOrEmpty(spec filters.FilterSpec, field string, n int) []CategoryCount {
	result, err := s.TopCategories(spec, field, n)
	if err != nil {
		log.Warn().Err(err).Str("field", field).Msg("agregasi kategori gagal, chart dikosongkan")
		return []CategoryCount{}
	}
	return result
}

// CountByDayOrEmpty: padanan TopCategoriesOrEmpty untuk kunjungan per hari.
func (s *DashboardService) CountByDayOrEmpty(spec filters.FilterSpec) []DayCount {
	result, err := s.CountByDay(spec)
	if err != nil {
		log.Warn().Err(err).Msg("agregasi kunjungan harian gagal, chart dikosongkan")
		return []DayCount{}
	}
	return result
}
