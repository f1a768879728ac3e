package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateValid(t *testing.T) {
	got := ParseDate("2024-01-10")
	assert.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseDateNeverErrors(t *testing.T) {
	for _, raw := range []string{"", "  ", "10-01-2024", "2024/01/10", "besok", "2024-13-40", "2024-1-1"} {
		assert.Nil(t, ParseDate(raw), "input %q harus menghasilkan nil", raw)
	}
}

func TestNormalizeSwapsReversedBounds(t *testing.T) {
	r := Normalize("2024-03-31", "2024-03-01")
	assert.NotNil(t, r.Start)
	assert.NotNil(t, r.End)
	assert.Equal(t, "2024-03-01", r.Start.Format(FormDateLayout))
	assert.Equal(t, "2024-03-31", r.End.Format(FormDateLayout))
	assert.False(t, r.Start.After(*r.End))
}

func TestNormalizeStartOnlyDefaultsEndToToday(t *testing.T) {
	r := Normalize("2024-01-01", "")
	assert.NotNil(t, r.End)
	assert.Equal(t, time.Now().Format(FormDateLayout), r.End.Format(FormDateLayout))
}

func TestNormalizeEndOnlyIsPureUpperBound(t *testing.T) {
	r := Normalize("", "2024-06-30")
	assert.Nil(t, r.Start)
	assert.NotNil(t, r.End)
}

func TestNormalizeEmptyAndMalformed(t *testing.T) {
	r := Normalize("", "")
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)

	// Tanggal rusak diabaikan seperti kosong.
	r = Normalize("bukan-tanggal", "2024-06-30")
	assert.Nil(t, r.Start)
	assert.NotNil(t, r.End)
}

func TestFilterSpecWhereComposesAND(t *testing.T) {
	spec := Build("  Budi ", Normalize("2024-01-01", "2024-01-31"))
	clause, args := spec.Where()

	assert.Equal(t, "1=1 AND LOWER(nama) LIKE ? AND tanggal_kunjungan >= ? AND tanggal_kunjungan <= ?", clause)
	assert.Equal(t, []interface{}{"%budi%", "2024-01-01", "2024-01-31"}, args)
}

func TestFilterSpecWhereEmpty(t *testing.T) {
	clause, args := Build("", DateRange{}).Where()
	assert.Equal(t, "1=1", clause)
	assert.Empty(t, args)
}

func TestFilterSpecWhereIsPure(t *testing.T) {
	spec := Build("ani", Normalize("2024-01-01", "2024-12-31"))

	c1, a1 := spec.Where()
	a1 = append(a1, "mutasi")
	c2, a2 := spec.Where()

	assert.Equal(t, c1, c2)
	assert.Len(t, a2, 3, "pemanggilan kedua tidak boleh melihat mutasi pada hasil pertama")
}
