// Package password contiene la política de contraseñas aplicada en registro,
// cambio de contraseña y recuperación.
package password

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/jhoicas/scoreking-api/internal/domain"
)

// MinLength longitud mínima en caracteres.
const MinLength = 10

// Reglas de la política, en el orden en que se evalúan.
const (
	RuleMinLength = "min_length"
	RuleUppercase = "uppercase"
	RuleDigit     = "digit"
	RuleSymbol    = "symbol"
	RuleName      = "contains_name"
)

// PolicyViolation describe la primera regla incumplida.
type PolicyViolation struct {
	Rule   string
	Reason string
}

func (v *PolicyViolation) Error() string { return v.Reason }

// Is permite errors.Is(err, domain.ErrWeakPassword).
func (v *PolicyViolation) Is(target error) bool { return target == domain.ErrWeakPassword }

// ValidateNewPassword comprueba candidate contra la política. No tiene efectos secundarios.
// Los nombres vacíos no participan en la regla de nombre.
func ValidateNewPassword(candidate, firstName, lastName string) error {
	if utf8.RuneCountInString(candidate) < MinLength {
		return &PolicyViolation{
			Rule:   RuleMinLength,
			Reason: fmt.Sprintf("la contraseña debe tener al menos %d caracteres", MinLength),
		}
	}

	var upper, digit, symbol bool
	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			symbol = true
		}
	}
	if !upper {
		return &PolicyViolation{Rule: RuleUppercase, Reason: "la contraseña debe contener al menos una letra mayúscula"}
	}
	if !digit {
		return &PolicyViolation{Rule: RuleDigit, Reason: "la contraseña debe contener al menos un número"}
	}
	if !symbol {
		return &PolicyViolation{Rule: RuleSymbol, Reason: "la contraseña debe contener al menos un símbolo"}
	}

	// cases.Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	folded := fold.String(candidate)
	for _, name := range []string{firstName, lastName} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(folded, fold.String(name)) {
			return &PolicyViolation{Rule: RuleName, Reason: "la contraseña no puede contener tu nombre o apellido"}
		}
	}
	return nil
}
