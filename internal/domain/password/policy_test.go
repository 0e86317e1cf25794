package password_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
)

func TestValidateNewPassword_Valida(t *testing.T) {
	for _, pw := range []string{"Str0ng!Pass", "Zz9#zzzzzz", "Contraseña1!", "ABCDEFGHI9-"} {
		assert.NoError(t, password.ValidateNewPassword(pw, "Alice", "Smith"), pw)
	}
}

func TestValidateNewPassword_CadaReglaSeReporta(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		rule string
	}{
		{"corta", "Ab1!abc", password.RuleMinLength},
		{"nueve caracteres", "Ab1!abcde", password.RuleMinLength},
		{"sin mayúscula", "abcdefgh1!", password.RuleUppercase},
		{"sin número", "Abcdefghi!", password.RuleDigit},
		{"sin símbolo", "Abcdefghi1", password.RuleSymbol},
		{"contiene nombre", "xxALICE1!yy", password.RuleName},
		{"contiene apellido", "Q1!smithzzz", password.RuleName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := password.ValidateNewPassword(tc.pw, "Alice", "Smith")
			require.Error(t, err)

			var v *password.PolicyViolation
			require.True(t, errors.As(err, &v))
			assert.Equal(t, tc.rule, v.Rule)
			assert.NotEmpty(t, v.Reason)
			assert.True(t, errors.Is(err, domain.ErrWeakPassword))
		})
	}
}

func TestValidateNewPassword_PrimeraReglaGana(t *testing.T) {
	// corta y sin mayúscula: se reporta la longitud
	err := password.ValidateNewPassword("abc", "", "")
	var v *password.PolicyViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, password.RuleMinLength, v.Rule)
}

func TestValidateNewPassword_NombreUnicodeSinDistinguirMayusculas(t *testing.T) {
	err := password.ValidateNewPassword("ÓSCAR-Pass1", "óscar", "Pérez")
	var v *password.PolicyViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, password.RuleName, v.Rule)
}

func TestValidateNewPassword_NombresVaciosSeIgnoran(t *testing.T) {
	assert.NoError(t, password.ValidateNewPassword("Str0ng!Pass", "", "  "))
}
