package dto

import "time"

// ConfirmationView estado renderizable de un diálogo de confirmación.
type ConfirmationView struct {
	ID             string     `json:"id,omitempty"`
	Open           bool       `json:"open"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Kind           string     `json:"kind"`
	Icon           string     `json:"icon"`
	ButtonStyle    string     `json:"button_style"`
	ConfirmLabel   string     `json:"confirm_label"`
	CancelLabel    string     `json:"cancel_label"`
	Busy           bool       `json:"busy"`
	ConfirmEnabled bool       `json:"confirm_enabled"`
	CancelEnabled  bool       `json:"cancel_enabled"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// ConfirmationResult resultado de ejecutar la acción confirmada.
type ConfirmationResult struct {
	Message string           `json:"message"`
	View    ConfirmationView `json:"confirmation"`
}
