// Package google verifica los ID tokens emitidos por Google Identity Services.
package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/jhoicas/scoreking-api/internal/application/ports"
)

var _ ports.IdentityVerifier = (*Verifier)(nil)

// ValidateFunc firma de idtoken.Validate; se sustituye en tests.
type ValidateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Verifier valida firma, expiración y audiencia del ID token contra las claves públicas de Google.
type Verifier struct {
	clientID string
	validate ValidateFunc
}

// NewVerifier construye el verificador para el client ID de la app.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// WithValidator reemplaza la validación (tests).
func (v *Verifier) WithValidator(fn ValidateFunc) *Verifier {
	cp := *v
	cp.validate = fn
	return &cp
}

// Verify devuelve los claims de identidad. No decide si el email está verificado: eso lo hace el caso de uso.
func (v *Verifier) Verify(ctx context.Context, credential string) (*ports.FederatedIdentity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("google: GOOGLE_CLIENT_ID no configurado")
	}
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("google: credencial vacía")
	}
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google: validar id token: %w", err)
	}
	return &ports.FederatedIdentity{
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		GivenName:     claimString(payload.Claims, "given_name"),
		FamilyName:    claimString(payload.Claims, "family_name"),
		Subject:       payload.Subject,
	}, nil
}

func claimString(claims map[string]interface{}, name string) string {
	s, _ := claims[name].(string)
	return s
}

// claimBool acepta bool o "true" (Google ha emitido ambos formatos).
func claimBool(claims map[string]interface{}, name string) bool {
	switch v := claims[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}
