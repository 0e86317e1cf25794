package google_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/jhoicas/scoreking-api/internal/infrastructure/google"
)

func TestVerify(t *testing.T) {
	var gotAudience string
	v := google.NewVerifier("client-123.apps.googleusercontent.com").WithValidator(
		func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			return &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
				"email":          "carla@gmail.com",
				"email_verified": "true",
				"given_name":     "Carla",
				"family_name":    "Díaz",
			}}, nil
		})

	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "client-123.apps.googleusercontent.com", gotAudience)
	assert.Equal(t, "carla@gmail.com", id.Email)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "Carla", id.GivenName)
	assert.Equal(t, "Díaz", id.FamilyName)
	assert.Equal(t, "sub-1", id.Subject)
}

func TestVerify_Errores(t *testing.T) {
	ok := func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{}}, nil
	}
	fail := func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: audience provided does not match aud claim")
	}

	_, err := google.NewVerifier("").WithValidator(ok).Verify(context.Background(), "id-token")
	assert.Error(t, err, "sin client id")

	_, err = google.NewVerifier("cid").WithValidator(ok).Verify(context.Background(), "  ")
	assert.Error(t, err, "credencial vacía")

	_, err = google.NewVerifier("cid").WithValidator(fail).Verify(context.Background(), "id-token")
	assert.ErrorContains(t, err, "audience")
}

func TestVerify_EmailNoVerificado(t *testing.T) {
	v := google.NewVerifier("cid").WithValidator(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{"email": "x@gmail.com", "email_verified": false}}, nil
	})
	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.False(t, id.EmailVerified)
}
