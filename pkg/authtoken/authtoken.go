// Package authtoken issues and verifies the HS256 JWTs used for vendor
// dashboard sessions.
package authtoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for expired, malformed or forged tokens.
var ErrInvalidToken = errors.New("authtoken: invalid token")

// VendorClaims are the claims carried by a vendor session token.
type VendorClaims struct {
	VendorID int64 `json:"vendorId"`
	jwt.RegisteredClaims
}

// Generate signs a vendor session token valid for ttl.
func Generate(secret string, vendorID int64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := VendorClaims{
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(vendorID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("authtoken: failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiry and returns the claims.
func Parse(secret, tokenString string) (*VendorClaims, error) {
	claims := &VendorClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
