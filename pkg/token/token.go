package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos por la plataforma. El discriminador evita que un
// token de un uso se acepte en otro contexto.
const (
	TypeBearer  = "bearer"
	TypeSession = "session"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "job_seeker" | "employer" | "admin"
	Type   string `json:"type"` // "bearer" | "session"
}

// Sign genera un token firmado (HS256) con expiración now+ttl. El token es
// inmutable tras la emisión: cualquier alteración invalida la firma.
func Sign(secret, userID, role, tokenType, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
		Type:   tokenType,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify valida firma y expiración y devuelve los claims, o nil si el token es
// inválido, expirado, alterado o firmado con otro secreto. Nunca retorna error:
// la ausencia de claims válidos es el único resultado negativo.
func Verify(secret, tokenString string) *Claims {
	if secret == "" || tokenString == "" {
		return nil
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil
	}
	return claims
}
