package dto

import "time"

// CreateUserRequest alta de usuario por un administrador.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // user | admin, por defecto user
}

// UpdateProfileRequest edición de perfil. Role solo lo aplica un administrador.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

// ResetPasswordRequest cambio de contraseña propio o, para administradores, de otro usuario.
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserResponse salida de un perfil.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	RoleLabel   string    `json:"role_label"`
	CreatedAt   time.Time `json:"created_at"`
}

// CooldownResponse estado del enfriamiento de altas del llamador.
type CooldownResponse struct {
	Active           bool `json:"active"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest renovación de sesión.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse tokens del backend más el usuario con metadatos sincronizados.
type SessionResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresAt    time.Time       `json:"expires_at"`
	User         SessionUserInfo `json:"user"`
}

// SessionUserInfo usuario de la sesión.
type SessionUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}
