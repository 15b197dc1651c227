package jwt_test

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventas-pro/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "admin", "ventas-pro", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, companyID, role, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "company-1", companyID)
	assert.Equal(t, "admin", role)
}

func TestGenerate_ClaimsIncompletos(t *testing.T) {
	_, err := jwt.Generate(secret, "", "company-1", "admin", "ventas-pro", 60)
	assert.Error(t, err, "sin user id")

	_, err = jwt.Generate(secret, "user-1", "", "admin", "ventas-pro", 60)
	assert.Error(t, err, "sin company id")

	_, err = jwt.Generate("", "user-1", "company-1", "admin", "ventas-pro", 60)
	assert.Error(t, err, "sin secret")
}

func TestParse_PayloadManipulado(t *testing.T) {
	// Alterar el payload invalida la firma aunque el base64 siga siendo válido.
	token, err := jwt.Generate(secret, "user-1", "company-1", "employee", "ventas-pro", 60)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	manipulado := parts[0] + "." + string(payload) + "." + parts[2]

	_, _, _, err = jwt.Parse(secret, manipulado)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "admin", "ventas-pro", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	claims := jwtlib.MapClaims{
		"user_id":    "user-1",
		"company_id": "company-1",
		"role":       "admin",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
}

func TestParse_AlgoritmoNoneRechazado(t *testing.T) {
	// Un token sin firma nunca pasa, solo se acepta HS256.
	claims := jwtlib.MapClaims{
		"user_id":    "user-1",
		"company_id": "company-1",
		"role":       "admin",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_VigenciaPorDefecto(t *testing.T) {
	// Una expiración no positiva cae al default en vez de emitir un token ya vencido.
	token, err := jwt.Generate(secret, "user-1", "company-1", "admin", "ventas-pro", 0)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.NoError(t, err)
}
