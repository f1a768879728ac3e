// Package filters menormalkan input filter mentah (nama + rentang tanggal)
// menjadi satu FilterSpec yang dipakai ulang oleh listing, dashboard, dan
// export dalam satu request. Input filter tidak pernah menghasilkan error:
// tanggal yang rusak diabaikan, bukan ditolak.
package filters

import (
	"strings"
	"time"
)

// FormDateLayout adalah format tanggal dari <input type="date">.
const FormDateLayout = "2006-01-02"

// DateRange adalah rentang tanggal efektif, inklusif di kedua ujung.
// Setelah Normalize selalu berlaku Start <= End bila keduanya terisi.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDate membaca tanggal format YYYY-MM-DD dari query string.
// String kosong atau rusak menghasilkan nil, tidak pernah error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(FormDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// Normalize membentuk rentang efektif dari dua bound mentah:
//   - kedua bound diparse longgar lewat ParseDate;
//   - hanya start terisi -> end otomatis hari ini;
//   - start > end -> ditukar;
//   - bound yang kosong membiarkan sisi itu tanpa batas.
func Normalize(rawStart, rawEnd string) DateRange {
	start := ParseDate(rawStart)
	end := ParseDate(rawEnd)

	if start != nil && end == nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = &today
	}
	if start != nil && end != nil && start.After(*end) {
		start, end = end, start
	}
	return DateRange{Start: start, End: end}
}

// FilterSpec menggabungkan filter substring nama (case-insensitive) dan
// rentang tanggal kunjungan menjadi satu predicate yang bisa dipakai ulang.
type FilterSpec struct {
	Nama  string
	Range DateRange
}

// Build membuat FilterSpec; nama dipangkas dan hanya dipakai bila tidak kosong.
func Build(nama string, r DateRange) FilterSpec {
	return FilterSpec{Nama: strings.TrimSpace(nama), Range: r}
}

// Where menghasilkan klausa WHERE beserta argumennya untuk tabel Pasien.
// Setiap pemanggilan mengembalikan slice baru sehingga spec yang sama aman
// dipakai berulang pada query yang berbeda tanpa saling mengotori.
func (f FilterSpec) Where() (string, []interface{}) {
	clause := "1=1"
	args := make([]interface{}, 0, 3)

	if f.Nama != "" {
		clause += " AND LOWER(nama) LIKE ?"
		args = append(args, "%"+strings.ToLower(f.Nama)+"%")
	}
	if f.Range.Start != nil {
		clause += " AND tanggal_kunjungan >= ?"
		args = append(args, f.Range.Start.Format(FormDateLayout))
	}
	if f.Range.End != nil {
		clause += " AND tanggal_kunjungan <= ?"
		args = append(args, f.Range.End.Format(FormDateLayout))
	}
	return clause, args
}
