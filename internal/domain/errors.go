package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInternal     = errors.New("error interno")
)

// internalMessage es lo único que ve el cliente ante un error no clasificado.
const internalMessage = "error inesperado, revise los logs del servidor"

// Kind clasifica un error para la capa HTTP.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindDuplicateKey
	KindInvalidInput
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindDuplicateKey:
		return "DUPLICATE"
	case KindInvalidInput:
		return "VALIDATION"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Error es un error clasificado. Message es seguro para devolver al cliente.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrNotFound) sobre un *Error del mismo tipo.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDuplicate:
		return e.Kind == KindDuplicateKey
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

// NotFound construye un error de recurso inexistente con el término buscado en el mensaje.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// DuplicateKey lleva el detalle reportado por la base de datos tal cual.
func DuplicateKey(detail string) *Error {
	return &Error{Kind: KindDuplicateKey, Message: detail}
}

// InvalidInput construye un error de validación.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Internal oculta la causa; el error completo debe registrarse antes de devolverlo.
func Internal() *Error {
	return &Error{Kind: KindInternal, Message: internalMessage}
}

// UniqueViolationError lo produce la capa de persistencia ante una violación de
// constraint único (SQLSTATE 23505).
type UniqueViolationError struct {
	Constraint string
	Detail     string
}

func (e *UniqueViolationError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("violación de unicidad (%s): %s", e.Constraint, e.Detail)
	}
	return "violación de unicidad: " + e.Detail
}

// Is hace que errors.Is(err, ErrDuplicate) también reconozca la violación cruda.
func (e *UniqueViolationError) Is(target error) bool {
	return target == ErrDuplicate
}

// KindOf devuelve la clasificación de err; KindInternal si no está clasificado.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindDuplicateKey
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	}
	return KindInternal
}
