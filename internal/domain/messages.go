package domain

import (
	"errors"
	"strings"
)

// Patrones conocidos en mensajes del backend y su versión amigable.
var friendlyPatterns = []struct {
	substr  string
	message string
}{
	{"duplicate key", "Este registro já existe."},
	{"already registered", "Este email já está registrado."},
	{"permission denied", "Você não tem permissão para realizar esta operação."},
	{"row-level security", "Você não tem permissão para realizar esta operação."},
	{"weak password", "A senha deve ter no mínimo 6 caracteres."},
	{"password should be at least", "A senha deve ter no mínimo 6 caracteres."},
	{"invalid email", "Por favor, insira um email válido."},
	{"unable to validate email", "Por favor, insira um email válido."},
	{"email not confirmed", "Email ainda não confirmado. Tente novamente em instantes."},
	{"invalid login credentials", "Email ou senha inválidos."},
	{"rate limit", "Muitas tentativas. Aguarde alguns segundos e tente novamente."},
}

// FriendlyMessage traduce un error a un mensaje para el usuario.
// Los *Error de dominio ya traen su mensaje; los del backend se buscan por subcadena
// (sin distinguir mayúsculas) y si no hay coincidencia se usa el mensaje tal cual,
// o fallback si viene vacío.
func FriendlyMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, p := range friendlyPatterns {
		if strings.Contains(lower, p.substr) {
			return p.message
		}
	}
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// ContextMessage como FriendlyMessage pero con un texto propio para duplicados y permisos,
// que dependen de la pantalla (ej. "Este email já está registrado." en usuarios).
func ContextMessage(err error, duplicate, forbidden, fallback string) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	lower := strings.ToLower(err.Error())
	switch {
	case duplicate != "" && strings.Contains(lower, "duplicate key"):
		return duplicate
	case forbidden != "" && (strings.Contains(lower, "permission denied") || strings.Contains(lower, "row-level security")):
		return forbidden
	}
	return FriendlyMessage(err, fallback)
}

// Classify asigna un error de dominio a un error del backend según su mensaje.
func Classify(err error) error {
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "duplicate key"), strings.Contains(lower, "already registered"):
		return ErrDuplicate
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "row-level security"):
		return ErrForbidden
	case strings.Contains(lower, "weak password"), strings.Contains(lower, "password should be at least"),
		strings.Contains(lower, "invalid email"), strings.Contains(lower, "unable to validate email"):
		return ErrInvalidInput
	case strings.Contains(lower, "email not confirmed"):
		return ErrEmailNotConfirmed
	case strings.Contains(lower, "invalid login credentials"), strings.Contains(lower, "jwt expired"):
		return ErrUnauthorized
	}
	return ErrBackend
}

// ContextError envuelve un error del backend con el mensaje de ContextMessage.
// Los errores de dominio se devuelven sin cambios.
func ContextError(err error, duplicate, forbidden, fallback string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return Wrap(Classify(err), ContextMessage(err, duplicate, forbidden, fallback), err)
}
