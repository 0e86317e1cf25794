package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken se devuelve para cualquier token malformado, expirado o con firma incorrecta.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más el id del usuario.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// Issuer firma y verifica tokens HS256. Verificar no requiere acceso a la base de datos.
type Issuer struct {
	secret      []byte
	issuer      string
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewIssuer construye el emisor. ttl <= 0 se interpreta como 24h.
func NewIssuer(secret, issuer string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// WithClock reemplaza el reloj usado para emitir y validar (tests).
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// WithRememberTTL fija la vigencia de los tokens de sesiones persistentes ("recordarme").
// Debe cubrir el Max-Age de la cookie que los transporta.
func (i *Issuer) WithRememberTTL(d time.Duration) *Issuer {
	cp := *i
	cp.rememberTTL = d
	return &cp
}

// Generate genera un token firmado para userID con la vigencia por defecto.
func (i *Issuer) Generate(userID string) (string, error) {
	return i.generate(userID, i.ttl)
}

// GeneratePersistent genera un token para una sesión persistente: vence al mayor
// entre la vigencia por defecto y la de "recordarme".
func (i *Issuer) GeneratePersistent(userID string) (string, error) {
	ttl := i.ttl
	if i.rememberTTL > ttl {
		ttl = i.rememberTTL
	}
	return i.generate(userID, ttl)
}

func (i *Issuer) generate(userID string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse valida el token y devuelve sus claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithIssuer(i.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
