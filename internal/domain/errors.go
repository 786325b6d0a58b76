package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrValidation           = errors.New("validación fallida")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrForbidden            = errors.New("acceso denegado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrSessionNotInProgress = errors.New("la sesión no está en curso")
)

// FieldError describe un campo rechazado y el motivo legible.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lista estructurada de errores de validación.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationErrors no vacío.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrValidation).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add agrega un error de campo.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Prefixed devuelve una copia con cada campo prefijado (ej. "reservoirs[2].").
func (v ValidationErrors) Prefixed(prefix string) ValidationErrors {
	out := make(ValidationErrors, len(v))
	for i, fe := range v {
		out[i] = FieldError{Field: prefix + fe.Field, Message: fe.Message}
	}
	return out
}

// Err devuelve nil si no hay errores; evita el clásico nil-interface no nulo.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsClientError indica si err proviene de una entrada o estado inválido (no de infraestructura).
func IsClientError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidInput, ErrValidation, ErrConflict, ErrForbidden, ErrUnauthorized, ErrSessionNotInProgress} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
