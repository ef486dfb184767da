package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims はアクセストークンに載せる認証情報。
// is_witness はコストカタログ区分の選択に使われる。
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsWitness bool   `json:"is_witness"`
	jwt.RegisteredClaims
}

// DefaultTokenTTL はアクセストークンの既定の有効期間
const DefaultTokenTTL = 24 * time.Hour

const minSecretLen = 32

var ErrInvalidToken = errors.New("invalid token")

// CreateToken は HS256 署名付きのアクセストークンを生成する
func CreateToken(userID, role string, isWitness bool, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		IsWitness: isWitness,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken はトークンを検証しクレームを返す。
// 署名方式は HS256 に固定する（alg none / RS256 への差し替えを拒否）。
func VerifyToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SecretBytes は文字列から署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
