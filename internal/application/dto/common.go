package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RetryAfter segundos restantes de enfriamiento (solo en COOLDOWN).
	RetryAfter int `json:"retry_after,omitempty"`
}

// MessageResponse mensaje de éxito transitorio.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListQuery filtro de texto local sobre los campos mostrados.
type ListQuery struct {
	Search string `query:"q"`
}
