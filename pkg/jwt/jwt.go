package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt lee el claim "exp" del bearer token emitido por INFOCGAN sin validar la firma
// (el secreto pertenece al servidor remoto). ok es false si el token no trae expiración.
func ExpiresAt(tokenString string) (exp time.Time, ok bool, err error) {
	if tokenString == "" {
		return time.Time{}, false, fmt.Errorf("jwt: token vacío")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// Expired indica si el token vence antes de now+skew. Un token opaco (no JWT) o sin "exp"
// se considera vigente; el servidor responderá 401 cuando deje de serlo.
func Expired(tokenString string, now time.Time, skew time.Duration) bool {
	if tokenString == "" {
		return true
	}
	exp, ok, err := ExpiresAt(tokenString)
	if err != nil || !ok {
		return false
	}
	return !now.Add(skew).Before(exp)
}
