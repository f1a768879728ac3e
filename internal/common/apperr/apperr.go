// Package apperr mendefinisikan taksonomi error aplikasi. Handler dan service
// mengembalikan sentinel di sini (dibungkus dengan %w bila perlu) dan boundary
// HTTP yang memetakan ke status code / redirect.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated: cookie tidak ada, token tidak valid/kedaluwarsa,
	// atau subject token sudah tidak terdaftar.
	ErrUnauthenticated = errors.New("tidak terautentikasi")

	// ErrForbidden: identitas valid tetapi role tidak mencukupi.
	ErrForbidden = errors.New("akses ditolak")

	// ErrNotFound: record yang dirujuk tidak ada.
	ErrNotFound = errors.New("data tidak ditemukan")

	// ErrPayloadTooLarge: batch import melebihi batas maksimum.
	ErrPayloadTooLarge = errors.New("payload terlalu besar")

	// ErrStorage: lapisan persistensi gagal saat read/write/commit.
	ErrStorage = errors.New("kegagalan penyimpanan")
)

// Storage membungkus error database dengan sentinel ErrStorage sehingga
// pemanggil cukup mengecek errors.Is(err, ErrStorage).
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// ValidationError memuat pesan per field untuk di-render ulang di samping
// input yang salah. Key "__all__" dipakai untuk error lintas-field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validasi gagal pada %d field", len(e.Fields))
}

// NewValidation membuat ValidationError dari map field->pesan.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
