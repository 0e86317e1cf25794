package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost factor de bcrypt usado en todas las escrituras de contraseña.
const Cost = 10

// Hash genera el hash bcrypt (con sal) de plain.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &PolicyViolation{Rule: RuleMinLength, Reason: "la contraseña no puede superar 72 bytes"}
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Matches compara en tiempo constante plain contra el hash almacenado.
// Un hash vacío (cuenta federada) nunca coincide.
func Matches(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
