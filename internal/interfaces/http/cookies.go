package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/pkg/config"
)

// TokenCookie escribe y borra la cookie HttpOnly que transporta el token de sesión.
type TokenCookie struct {
	name     string
	secure   bool
	sameSite string
	domain   string
	remember time.Duration
}

// NewTokenCookie construye la cookie a partir de la configuración.
func NewTokenCookie(cfg config.CookieConfig) TokenCookie {
	name := cfg.Name
	if name == "" {
		name = "token"
	}
	return TokenCookie{name: name, secure: cfg.Secure, sameSite: cfg.SameSite, domain: cfg.Domain, remember: cfg.Remember}
}

// Name nombre de la cookie.
func (tc TokenCookie) Name() string { return tc.name }

// Set sin rememberMe es cookie de sesión; con rememberMe dura tc.remember.
func (tc TokenCookie) Set(c *fiber.Ctx, res *dto.AuthResult) {
	ck := tc.base()
	ck.Value = res.Token
	if res.Persistent {
		ck.MaxAge = int(tc.remember / time.Second)
		ck.Expires = time.Now().Add(tc.remember)
	} else {
		ck.SessionOnly = true
	}
	c.Cookie(ck)
}

// Clear sobrescribe la cookie con una expirada.
func (tc TokenCookie) Clear(c *fiber.Ctx) {
	ck := tc.base()
	ck.Value = ""
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	c.Cookie(ck)
}

func (tc TokenCookie) base() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     tc.name,
		Path:     "/",
		Domain:   tc.domain,
		HTTPOnly: true,
		Secure:   tc.secure,
		SameSite: tc.sameSite,
	}
}
