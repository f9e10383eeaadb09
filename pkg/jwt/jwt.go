package jwt

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// Kind tipo de cookie firmada. Cada tipo usa su propia llave derivada, así un
// token de pestaña nunca valida como token de dispositivo.
type Kind string

const (
	KindDevice Kind = "device"
	KindTab    Kind = "tab"
)

const issuer = "medicare-console"

// Claims claims estándar más el tipo de cookie.
type Claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

// Signer firma y valida los tokens de las cookies de la consola.
type Signer struct {
	keys map[Kind][]byte
}

// NewSigner deriva con HKDF-SHA256 una llave HMAC por tipo a partir de secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	s := &Signer{keys: make(map[Kind][]byte, 2)}
	for _, k := range []Kind{KindDevice, KindTab} {
		key := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("console-cookie:"+string(k))), key); err != nil {
			return nil, fmt.Errorf("jwt: derivar llave %s: %w", k, err)
		}
		s.keys[k] = key
	}
	return s, nil
}

// Generate firma un token para id. ttl <= 0 omite la expiración (cookie de sesión del navegador).
func (s *Signer) Generate(kind Kind, id string, ttl time.Duration) (string, error) {
	key, ok := s.keys[kind]
	if !ok {
		return "", fmt.Errorf("jwt: tipo desconocido %q", kind)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  id,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Kind: kind,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// Parse valida el token y devuelve el id.
// Retorna error si el token es inválido, expirado, de otro tipo o tiene firma incorrecta.
func (s *Signer) Parse(kind Kind, tokenString string) (string, error) {
	key, ok := s.keys[kind]
	if !ok {
		return "", fmt.Errorf("jwt: tipo desconocido %q", kind)
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return "", fmt.Errorf("claims inválidos")
	}
	return claims.Subject, nil
}
