package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEmailNotConfirmed  = errors.New("email no confirmado")
	ErrCooldown           = errors.New("operación en enfriamiento")
	ErrBusy               = errors.New("acción en curso")
	ErrConfirmationClosed = errors.New("confirmación cerrada")
	ErrBackend            = errors.New("error del backend")
)

// Error lleva el mensaje que ve el usuario (portugués) y conserva el error de dominio para errors.Is.
type Error struct {
	Kind    error
	Message string
	Cause   error // error del backend que originó el fallo, si lo hay
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrInvalidInput) y errors.As sobre la causa.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// NewError construye un error de dominio con mensaje para el usuario.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Validation atajo para errores de validación (antes de cualquier llamada al backend).
func Validation(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

// Wrap asocia la causa del backend a un error de dominio.
func Wrap(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// CooldownError rechazo durante el enfriamiento de altas de usuario.
type CooldownError struct {
	Remaining time.Duration
}

// Seconds segundos restantes redondeados hacia arriba (cuenta regresiva).
func (e *CooldownError) Seconds() int {
	secs := int(e.Remaining / time.Second)
	if e.Remaining%time.Second > 0 {
		secs++
	}
	return secs
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("Aguarde %d segundos antes de criar outro usuário.", e.Seconds())
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldown }
