package usecase

import (
	"sync"
	"time"
)

// Cooldown ventana de espera por clave (usuario) tras cada intento que llegó al backend.
// Se adelanta al rate limit de altas del servicio de auth.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	until  map[string]time.Time
	now    func() time.Time
}

// NewCooldown crea un cooldown con la ventana dada.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window, until: map[string]time.Time{}, now: time.Now}
}

// Remaining tiempo que falta para que key pueda volver a intentar (0 si puede).
func (c *Cooldown) Remaining(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.until[key]
	if !ok {
		return 0
	}
	left := until.Sub(c.now())
	if left <= 0 {
		delete(c.until, key)
		return 0
	}
	return left
}

// Start abre la ventana para key desde ahora.
func (c *Cooldown) Start(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until[key] = c.now().Add(c.window)
}
