package entity

import (
	"strings"
	"time"
)

// Role nivel de autorización de la aplicación.
type Role string

// Roles válidos.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole valida un rol recibido de un formulario.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// RoleFromClaim resuelve el rol desde metadatos de sesión: cualquier valor distinto de "admin" es usuario.
func RoleFromClaim(s string) Role {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleUser
}

// IsAdmin informa si el rol habilita administración de usuarios y borrados privilegiados.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Label etiqueta para mostrar.
func (r Role) Label() string {
	if r == RoleAdmin {
		return "Administrador"
	}
	return "Usuário"
}

// Profile registro de aplicación asociado a una identidad autenticada (mismo ID).
type Profile struct {
	ID        string
	Email     string
	FullName  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName nombre completo o, si falta, la parte local del email.
func (p *Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if i := strings.Index(p.Email, "@"); i > 0 {
		return p.Email[:i]
	}
	return p.Email
}
