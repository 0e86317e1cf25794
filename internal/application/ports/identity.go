package ports

import "context"

// FederatedIdentity claims ya verificados de un proveedor de identidad.
type FederatedIdentity struct {
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	Subject       string
}

// IdentityVerifier verifica un ID token contra las claves públicas del proveedor
// y el client ID configurado como audiencia.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*FederatedIdentity, error)
}
