package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/klinikita/pasien-admin/config"
)

// DefaultTokenTTL adalah masa berlaku token sesi (8 jam).
const DefaultTokenTTL = 8 * time.Hour

// Claims membawa identitas user yang sedang login.
type Claims struct {
	Username string `json:"sub_username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken membuat token JWT HS256 untuk username/role dengan masa
// berlaku ttl. Gunakan DefaultTokenTTL untuk sesi login biasa.
func GenerateToken(username, role string, ttl time.Duration) (string, error) {
	jwtKey := []byte(config.LoadConfig().JWTSecret)
	if len(jwtKey) == 0 {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken memvalidasi token dan mengembalikan klaimnya. Token yang
// kedaluwarsa, rusak, atau bertanda tangan salah semuanya gagal dengan error;
// pemanggil tidak bisa (dan tidak perlu) membedakannya.
func ValidateToken(tokenString string) (*Claims, error) {
	jwtKey := []byte(config.LoadConfig().JWTSecret)
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Pastikan metode signing benar
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
