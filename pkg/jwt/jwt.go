package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultExpMinutes vigencia si la configuración no trae una válida.
const defaultExpMinutes = 60

// Claims claims de sesión de ventas-pro: identifican al usuario, la empresa
// (tenant) sobre la que opera toda la API y su rol para el RBAC del
// middleware, sin volver a consultar la base por request.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // entity.RoleAdmin | entity.RoleEmployee
}

// Generate emite un token HS256 con los claims de sesión. userID y companyID
// son obligatorios; el rol lo valida la capa de auth antes de llegar aquí.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if userID == "" || companyID == "" {
		return "", fmt.Errorf("jwt: claims de sesión incompletos")
	}
	if expMinutes <= 0 {
		expMinutes = defaultExpMinutes
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma, vigencia y algoritmo (solo HS256) y devuelve los claims
// de sesión. Un token firmado con otro método o con otro secret falla aquí.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("jwt: claims inválidos")
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
