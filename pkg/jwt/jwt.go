package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AudienceAuthenticated es el "aud"/"role" que el servicio de auth pone en tokens de usuarios con sesión.
const AudienceAuthenticated = "authenticated"

// Claims refleja el access token emitido por el servicio de auth del backend.
// El rol de la aplicación viaja en los metadatos (app_metadata o user_metadata), no en "role",
// que siempre es el rol de base de datos ("authenticated").
type Claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
}

// AppRole devuelve el rol de la aplicación. Es "admin" si app_metadata.role o
// user_metadata.role lo dicen; si no, el de user_metadata y luego el de app_metadata.
func (c *Claims) AppRole() string {
	app, _ := c.AppMetadata["role"].(string)
	user, _ := c.UserMetadata["role"].(string)
	switch {
	case app == "admin" || user == "admin":
		return "admin"
	case user != "":
		return user
	}
	return app
}

// FullName devuelve user_metadata.full_name si existe.
func (c *Claims) FullName() string {
	s, _ := c.UserMetadata["full_name"].(string)
	return s
}

// Generate firma un access token con la misma forma que los del backend.
// Se usa en pruebas y herramientas locales; en producción los tokens los emite el servicio de auth.
func Generate(secret, userID, email, appRole, fullName, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{AudienceAuthenticated},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
		Role:  AudienceAuthenticated,
		UserMetadata: map[string]any{
			"role":      appRole,
			"full_name": fullName,
		},
		AppMetadata: map[string]any{"provider": "email"},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma HS256 y expiración del token y devuelve sus claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("jwt: token sin subject")
	}
	return claims, nil
}
