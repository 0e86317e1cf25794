package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
)

// validationError errores por campo de una entrada mal formada.
type validationError struct {
	fields []dto.FieldError
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Validator envuelve go-playground/validator con los nombres JSON de los campos y la regla "date".
type Validator struct {
	v *validator.Validate
}

// NewValidator registra las reglas propias.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := auth.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Struct valida in y devuelve *validationError si algún campo no cumple.
func (val *Validator) Struct(in any) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &validationError{fields: make([]dto.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.fields = append(out.fields, dto.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// bind parsea el cuerpo JSON y lo valida.
func (val *Validator) bind(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return &validationError{fields: []dto.FieldError{{Field: "body", Message: "cuerpo inválido"}}}
	}
	return val.Struct(in)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("debe tener exactamente %s caracteres", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "eqfield":
		return "las contraseñas no coinciden"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "numeric":
		return "debe contener solo dígitos"
	case "date":
		return "debe ser una fecha YYYY-MM-DD"
	}
	return "valor inválido"
}
